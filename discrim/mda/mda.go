// Package mda implements the built-in mixture discriminant engine: each
// class is represented by a small set of subclass centroids, class scores
// derive from the distance to the nearest subclass, and posteriors come from
// a softmax over those scores.
//
// The estimation is deliberately lightweight: deterministic centroid
// refinement with a fixed iteration count, no covariance modelling. The
// engine exists to give the descriptor contract a live, testable target;
// heavier back ends register alongside it under their own engine names.
package mda

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
)

const (
	// DefaultSubclasses is used when the subclasses argument is absent.
	DefaultSubclasses = 2
	// DefaultIterations bounds the centroid refinement loop.
	DefaultIterations = 4
)

// ErrNoClasses is returned when the training set lacks a categorical outcome.
var ErrNoClasses = errors.New("mda: training set has no categorical outcome")

// Model is the fitted mixture object: per-class subclass centroids in
// predictor space, plus the training levels for prediction alignment.
type Model struct {
	Levels     []string
	Columns    []string
	Subclasses int
	Centroids  []Centroid
}

// Centroid is one subclass center belonging to a class.
type Centroid struct {
	Class int
	Point []float64
}

// FitMixture fits subclass centroids per class. Recognized args: subclasses
// (centroids per class), iterations (refinement passes). Case weights bias
// the centroid means when present.
func FitMixture(ctx context.Context, training core.TrainingSet, args engine.Args) (any, error) {
	if training.Classes == nil {
		return nil, ErrNoClasses
	}
	if training.Rows() == 0 {
		return nil, errors.New("mda: empty training set")
	}

	k := args.Int("subclasses", DefaultSubclasses)
	if k < 1 {
		return nil, fmt.Errorf("mda: subclasses must be positive, got %d", k)
	}
	iters := args.Int("iterations", DefaultIterations)

	classes := training.Classes
	weights := training.Weights

	model := &Model{
		Levels:     append([]string(nil), classes.Levels...),
		Columns:    training.Predictors.Names(),
		Subclasses: k,
	}

	for class := range classes.Levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var members []int
		for i, code := range classes.Codes {
			if code == class {
				members = append(members, i)
			}
		}
		if len(members) == 0 {
			return nil, fmt.Errorf("mda: class %q has no training rows", classes.Levels[class])
		}

		// Cannot support more subclasses than members.
		kc := k
		if kc > len(members) {
			kc = len(members)
		}

		centroids := refineCentroids(training, members, kc, iters, weights)
		for _, c := range centroids {
			model.Centroids = append(model.Centroids, Centroid{Class: class, Point: c})
		}
	}
	return model, nil
}

// refineCentroids seeds centroids at evenly spaced member rows and runs a
// fixed number of assign/recompute passes. Everything is deterministic so
// repeated fits of the same data agree.
func refineCentroids(training core.TrainingSet, members []int, k, iters int, weights []float64) [][]float64 {
	dims := training.Predictors.NumCols()
	centroids := make([][]float64, k)
	for j := 0; j < k; j++ {
		row := members[j*len(members)/k]
		centroids[j] = training.Predictors.Row(row)
	}

	assign := make([]int, len(members))
	for it := 0; it < iters; it++ {
		for mi, row := range members {
			point := training.Predictors.Row(row)
			best, bestDist := 0, math.Inf(1)
			for j, c := range centroids {
				if d := sqDist(point, c); d < bestDist {
					best, bestDist = j, d
				}
			}
			assign[mi] = best
		}

		sums := make([][]float64, k)
		counts := make([]float64, k)
		for j := range sums {
			sums[j] = make([]float64, dims)
		}
		for mi, row := range members {
			w := 1.0
			if weights != nil {
				w = weights[row]
			}
			point := training.Predictors.Row(row)
			j := assign[mi]
			for d := range point {
				sums[j][d] += w * point[d]
			}
			counts[j] += w
		}
		for j := range centroids {
			if counts[j] == 0 {
				continue // empty subclass keeps its previous center
			}
			for d := range centroids[j] {
				centroids[j][d] = sums[j][d] / counts[j]
			}
		}
	}
	return centroids
}

// PredictClass assigns each row to the class of its nearest subclass centroid.
func PredictClass(ctx context.Context, fitted any, newData core.Frame, _ engine.Args) (any, error) {
	model, err := assertModel(fitted)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := model.checkColumns(newData); err != nil {
		return nil, err
	}

	codes := make([]int, newData.Rows())
	for i := 0; i < newData.Rows(); i++ {
		point := newData.Row(i)
		best, bestDist := 0, math.Inf(1)
		for _, c := range model.Centroids {
			if d := sqDist(point, c.Point); d < bestDist {
				best, bestDist = c.Class, d
			}
		}
		codes[i] = best
	}
	return core.Factor{Codes: codes, Levels: append([]string(nil), model.Levels...)}, nil
}

// PredictPosterior returns per-class probabilities: a softmax over the
// negative squared distance to each class's nearest subclass centroid. One
// column per training level, rows matching the input.
func PredictPosterior(ctx context.Context, fitted any, newData core.Frame, _ engine.Args) (any, error) {
	model, err := assertModel(fitted)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := model.checkColumns(newData); err != nil {
		return nil, err
	}

	nLevels := len(model.Levels)
	cols := make([][]float64, nLevels)
	for c := range cols {
		cols[c] = make([]float64, newData.Rows())
	}

	for i := 0; i < newData.Rows(); i++ {
		point := newData.Row(i)
		scores := make([]float64, nLevels)
		for c := range scores {
			scores[c] = math.Inf(1)
		}
		for _, c := range model.Centroids {
			if d := sqDist(point, c.Point); d < scores[c.Class] {
				scores[c.Class] = d
			}
		}

		// Softmax over negative distances, shifted by the minimum for
		// numeric stability.
		minScore := math.Inf(1)
		for _, s := range scores {
			if s < minScore {
				minScore = s
			}
		}
		var total float64
		probs := make([]float64, nLevels)
		for c, s := range scores {
			p := math.Exp(-(s - minScore))
			probs[c] = p
			total += p
		}
		for c := range probs {
			cols[c][i] = probs[c] / total
		}
	}

	return core.NewFrame(append([]string(nil), model.Levels...), cols)
}

// checkColumns verifies that new data matches the training predictor layout
// before any distance computation touches the rows.
func (m *Model) checkColumns(newData core.Frame) error {
	if newData.NumCols() != len(m.Columns) {
		return fmt.Errorf("mda: new data has %d columns, model was trained on %d", newData.NumCols(), len(m.Columns))
	}
	for i, name := range newData.Names() {
		if name != m.Columns[i] {
			return fmt.Errorf("mda: new data column %d is %q, model was trained on %q", i, name, m.Columns[i])
		}
	}
	return nil
}

func assertModel(fitted any) (*Model, error) {
	model, ok := fitted.(*Model)
	if !ok {
		return nil, fmt.Errorf("mda: fitted object is %T, want *mda.Model", fitted)
	}
	return model, nil
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
