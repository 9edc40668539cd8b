package core

import "fmt"

// Frame is a minimal column-major numeric data frame: ordered, named
// columns of equal length. It backs both predictor inputs and class
// probability tables.
type Frame struct {
	names []string
	cols  [][]float64
}

// NewFrame builds a frame from parallel name/column slices. Names must be
// unique and all columns must share one length.
func NewFrame(names []string, cols [][]float64) (Frame, error) {
	if len(names) != len(cols) {
		return Frame{}, fmt.Errorf("frame: %d names for %d columns", len(names), len(cols))
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return Frame{}, fmt.Errorf("frame: duplicate column %q", n)
		}
		seen[n] = struct{}{}
	}
	rows := -1
	for i, c := range cols {
		if rows == -1 {
			rows = len(c)
			continue
		}
		if len(c) != rows {
			return Frame{}, fmt.Errorf("frame: column %q has %d rows, want %d", names[i], len(c), rows)
		}
	}
	return Frame{names: names, cols: cols}, nil
}

// Rows returns the number of rows (zero for an empty frame).
func (f Frame) Rows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0])
}

// NumCols returns the number of columns.
func (f Frame) NumCols() int { return len(f.cols) }

// Names returns a copy of the ordered column names.
func (f Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Col returns the column at index i. The returned slice is shared; callers
// must not mutate it.
func (f Frame) Col(i int) []float64 { return f.cols[i] }

// Column returns the named column, reporting whether it exists.
func (f Frame) Column(name string) ([]float64, bool) {
	for i, n := range f.names {
		if n == name {
			return f.cols[i], true
		}
	}
	return nil, false
}

// Row gathers row i across all columns into a fresh slice.
func (f Frame) Row(i int) []float64 {
	out := make([]float64, len(f.cols))
	for j, c := range f.cols {
		out[j] = c[i]
	}
	return out
}

// Factor is a categorical vector: integer codes into an ordered level set.
// Levels are kept in first-appearance order so predictions stay aligned to
// the training categories.
type Factor struct {
	Codes  []int
	Levels []string
}

// NewFactor encodes a label vector, assigning level codes in order of first
// appearance.
func NewFactor(labels []string) Factor {
	idx := make(map[string]int)
	var levels []string
	codes := make([]int, len(labels))
	for i, l := range labels {
		code, ok := idx[l]
		if !ok {
			code = len(levels)
			idx[l] = code
			levels = append(levels, l)
		}
		codes[i] = code
	}
	return Factor{Codes: codes, Levels: levels}
}

// Len returns the number of observations.
func (f Factor) Len() int { return len(f.Codes) }

// Label returns the string label of observation i.
func (f Factor) Label(i int) (string, error) {
	c := f.Codes[i]
	if c < 0 || c >= len(f.Levels) {
		return "", fmt.Errorf("factor: code %d out of range for %d levels", c, len(f.Levels))
	}
	return f.Levels[c], nil
}

// Labels decodes the whole vector back to string labels.
func (f Factor) Labels() ([]string, error) {
	out := make([]string, len(f.Codes))
	for i := range f.Codes {
		l, err := f.Label(i)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// TrainingSet carries the protected data slots of a fit call. Exactly one
// outcome field is populated depending on the mode: Classes for
// classification, Numeric for regression. Weights are optional case
// weights; when present their length must match the predictor rows.
type TrainingSet struct {
	Predictors Frame
	Classes    *Factor
	Numeric    []float64
	Weights    []float64
}

// Rows returns the number of training observations.
func (t TrainingSet) Rows() int { return t.Predictors.Rows() }
