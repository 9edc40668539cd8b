package testutil

import (
	"fmt"

	"github.com/hupe1980/fitmesh/core"
)

// TrainingSetBuilder provides a fluent helper for constructing training sets
// in tests. Example:
//
//	ts := NewTrainingSetBuilder().
//	    Column("x1", 1, 2, 3).
//	    Column("x2", 4, 5, 6).
//	    Classes("a", "b", "a").
//	    Build()
//
// Chain only the parts you need; Build panics on malformed data so test
// setup mistakes fail loudly.
type TrainingSetBuilder struct {
	names   []string
	cols    [][]float64
	classes []string
	numeric []float64
	weights []float64
}

// NewTrainingSetBuilder creates an empty builder.
func NewTrainingSetBuilder() *TrainingSetBuilder { return &TrainingSetBuilder{} }

// Column appends a named predictor column (chainable).
func (b *TrainingSetBuilder) Column(name string, values ...float64) *TrainingSetBuilder {
	b.names = append(b.names, name)
	b.cols = append(b.cols, values)
	return b
}

// Classes sets a categorical outcome (chainable).
func (b *TrainingSetBuilder) Classes(labels ...string) *TrainingSetBuilder {
	b.classes = labels
	return b
}

// Numeric sets a numeric outcome (chainable).
func (b *TrainingSetBuilder) Numeric(values ...float64) *TrainingSetBuilder {
	b.numeric = values
	return b
}

// Weights sets case weights (chainable).
func (b *TrainingSetBuilder) Weights(values ...float64) *TrainingSetBuilder {
	b.weights = values
	return b
}

// Build assembles the training set.
func (b *TrainingSetBuilder) Build() core.TrainingSet {
	frame, err := core.NewFrame(b.names, b.cols)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad frame: %v", err))
	}
	ts := core.TrainingSet{Predictors: frame, Numeric: b.numeric, Weights: b.weights}
	if b.classes != nil {
		f := core.NewFactor(b.classes)
		ts.Classes = &f
	}
	return ts
}

// Frame builds just the predictor frame, for prediction inputs.
func (b *TrainingSetBuilder) Frame() core.Frame {
	frame, err := core.NewFrame(b.names, b.cols)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad frame: %v", err))
	}
	return frame
}

// TwoClassTraining returns a small, well-separated two-class dataset: class
// "low" clusters near the origin, class "high" near (10, 10).
func TwoClassTraining() core.TrainingSet {
	return NewTrainingSetBuilder().
		Column("x1", 0.0, 0.5, 1.0, 0.2, 9.5, 10.0, 10.5, 9.8).
		Column("x2", 0.1, 0.4, 0.9, 0.3, 9.6, 10.1, 10.4, 9.9).
		Classes("low", "low", "low", "low", "high", "high", "high", "high").
		Build()
}

// TwoClassNewData returns prediction input matching TwoClassTraining: the
// first two rows belong near "low", the last two near "high".
func TwoClassNewData() core.Frame {
	return NewTrainingSetBuilder().
		Column("x1", 0.3, 0.7, 9.7, 10.2).
		Column("x2", 0.2, 0.6, 9.8, 10.3).
		Frame()
}

// LinearTraining returns a dataset following y = 2*x1 + 3*x2 + 1 exactly.
func LinearTraining() core.TrainingSet {
	x1 := []float64{0, 1, 2, 3, 4, 5}
	x2 := []float64{1, 0, 2, 1, 3, 2}
	y := make([]float64, len(x1))
	for i := range x1 {
		y[i] = 2*x1[i] + 3*x2[i] + 1
	}
	return NewTrainingSetBuilder().
		Column("x1", x1...).
		Column("x2", x2...).
		Numeric(y...).
		Build()
}
