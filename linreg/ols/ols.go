// Package ols implements the built-in ordinary least squares engine via the
// normal equations, with optional case weights.
package ols

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
)

// ErrNoNumeric is returned when the training set lacks a numeric outcome.
var ErrNoNumeric = errors.New("ols: training set has no numeric outcome")

// ErrSingular is returned when the normal equations have no unique solution.
var ErrSingular = errors.New("ols: singular design matrix")

// Model is the fitted linear model.
type Model struct {
	Columns      []string
	Coefficients []float64
	Intercept    float64
	HasIntercept bool
}

// Fit solves the (weighted) normal equations. Recognized args:
// fit_intercept (default true).
func Fit(ctx context.Context, training core.TrainingSet, args engine.Args) (any, error) {
	if training.Numeric == nil {
		return nil, ErrNoNumeric
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := training.Rows()
	if len(training.Numeric) != n {
		return nil, fmt.Errorf("ols: %d outcomes for %d rows", len(training.Numeric), n)
	}

	withIntercept := args.Bool("fit_intercept", true)
	p := training.Predictors.NumCols()
	dims := p
	if withIntercept {
		dims++
	}
	if n < dims {
		return nil, fmt.Errorf("ols: %d rows cannot identify %d coefficients", n, dims)
	}

	// Build X'WX and X'Wy directly; the design matrix never materializes.
	xtx := make([][]float64, dims)
	for i := range xtx {
		xtx[i] = make([]float64, dims)
	}
	xty := make([]float64, dims)

	row := make([]float64, dims)
	for i := 0; i < n; i++ {
		x := training.Predictors.Row(i)
		copy(row, x)
		if withIntercept {
			row[dims-1] = 1
		}
		w := 1.0
		if training.Weights != nil {
			w = training.Weights[i]
		}
		for a := 0; a < dims; a++ {
			for b := 0; b < dims; b++ {
				xtx[a][b] += w * row[a] * row[b]
			}
			xty[a] += w * row[a] * training.Numeric[i]
		}
	}

	beta, err := solve(xtx, xty)
	if err != nil {
		return nil, err
	}

	model := &Model{
		Columns:      training.Predictors.Names(),
		HasIntercept: withIntercept,
	}
	if withIntercept {
		model.Coefficients = beta[:p]
		model.Intercept = beta[p]
	} else {
		model.Coefficients = beta
	}
	return model, nil
}

// Predict returns fitted values for new data as an unnamed numeric vector.
func Predict(ctx context.Context, fitted any, newData core.Frame, _ engine.Args) (any, error) {
	model, ok := fitted.(*Model)
	if !ok {
		return nil, fmt.Errorf("ols: fitted object is %T, want *ols.Model", fitted)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if newData.NumCols() != len(model.Coefficients) {
		return nil, fmt.Errorf("ols: new data has %d columns, model has %d coefficients", newData.NumCols(), len(model.Coefficients))
	}

	out := make([]float64, newData.Rows())
	for i := range out {
		x := newData.Row(i)
		y := model.Intercept
		for j, c := range model.Coefficients {
			y += c * x[j]
		}
		out[i] = y
	}
	return out, nil
}

// solve performs Gaussian elimination with partial pivoting on a copy of the
// inputs.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range m {
		m[i] = append(append([]float64(nil), a[i]...), b[i])
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if abs(m[r][col]) > abs(m[pivot][col]) {
				pivot = r
			}
		}
		if abs(m[pivot][col]) < 1e-12 {
			return nil, ErrSingular
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = m[i][n] / m[i][i]
	}
	return out, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
