package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
	"github.com/hupe1980/fitmesh/registry"
	"github.com/hupe1980/fitmesh/spec"
)

// ShapeError reports an engine output that violates the dispatch contract
// for its prediction kind.
type ShapeError struct {
	Kind core.PredKind
	Want string
	Got  string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("prediction %q: shape violation: want %s, got %s", e.Kind, e.Want, e.Got)
}

// Numeric returns numeric predictions: an unnamed vector with one entry per
// input row.
func Numeric(ctx context.Context, fitted *spec.Fitted, newData core.Frame) ([]float64, error) {
	raw, pc, err := dispatch(ctx, fitted, core.PredNumeric, newData)
	if err != nil {
		return nil, err
	}
	vec, ok := raw.([]float64)
	if !ok {
		return nil, &ShapeError{Kind: core.PredNumeric, Want: "[]float64", Got: fmt.Sprintf("%T", raw)}
	}
	if len(vec) != pc.Rows {
		return nil, &ShapeError{Kind: core.PredNumeric, Want: fmt.Sprintf("%d rows", pc.Rows), Got: fmt.Sprintf("%d rows", len(vec))}
	}
	return vec, nil
}

// Class returns class predictions: a categorical vector whose levels are
// aligned to the training categories.
func Class(ctx context.Context, fitted *spec.Fitted, newData core.Frame) (core.Factor, error) {
	raw, pc, err := dispatch(ctx, fitted, core.PredClass, newData)
	if err != nil {
		return core.Factor{}, err
	}
	factor, ok := raw.(core.Factor)
	if !ok {
		return core.Factor{}, &ShapeError{Kind: core.PredClass, Want: "core.Factor", Got: fmt.Sprintf("%T", raw)}
	}
	if factor.Len() != pc.Rows {
		return core.Factor{}, &ShapeError{Kind: core.PredClass, Want: fmt.Sprintf("%d rows", pc.Rows), Got: fmt.Sprintf("%d rows", factor.Len())}
	}
	if !sameStrings(factor.Levels, pc.Levels) {
		return core.Factor{}, &ShapeError{
			Kind: core.PredClass,
			Want: fmt.Sprintf("levels %v", pc.Levels),
			Got:  fmt.Sprintf("levels %v", factor.Levels),
		}
	}
	return factor, nil
}

// Prob returns class probability predictions: a table with one column per
// training category and one row per input row.
func Prob(ctx context.Context, fitted *spec.Fitted, newData core.Frame) (core.Frame, error) {
	raw, pc, err := dispatch(ctx, fitted, core.PredClassProb, newData)
	if err != nil {
		return core.Frame{}, err
	}
	table, ok := raw.(core.Frame)
	if !ok {
		return core.Frame{}, &ShapeError{Kind: core.PredClassProb, Want: "core.Frame", Got: fmt.Sprintf("%T", raw)}
	}
	if table.Rows() != pc.Rows {
		return core.Frame{}, &ShapeError{Kind: core.PredClassProb, Want: fmt.Sprintf("%d rows", pc.Rows), Got: fmt.Sprintf("%d rows", table.Rows())}
	}
	if !sameStrings(table.Names(), pc.Levels) {
		return core.Frame{}, &ShapeError{
			Kind: core.PredClassProb,
			Want: fmt.Sprintf("one column per category %v", pc.Levels),
			Got:  fmt.Sprintf("columns %v", table.Names()),
		}
	}
	return table, nil
}

// dispatch runs the shared pipeline: sub-descriptor selection, pre-transform,
// default evaluation, engine invocation, post-transform.
func dispatch(ctx context.Context, fitted *spec.Fitted, kind core.PredKind, newData core.Frame) (any, engine.PredContext, error) {
	start := time.Now()
	logger := fitted.Logger()
	pc := engine.PredContext{Levels: fitted.Levels(), Rows: newData.Rows()}

	ps := fitted.Method().Pred(kind)
	if ps == nil {
		return nil, pc, fmt.Errorf("model %q: engine %q: kind %q: %w",
			fitted.Model(), fitted.Engine(), kind, registry.ErrUnsupportedPrediction)
	}

	input := newData
	if ps.Pre != nil {
		adapted, err := ps.Pre(input, pc)
		if err != nil {
			return nil, pc, fmt.Errorf("model %q: engine %q: pre-transform: %w", fitted.Model(), fitted.Engine(), err)
		}
		input = adapted
	}

	args := make(engine.Args, len(ps.Defaults))
	for name, expr := range ps.Defaults {
		v, err := expr.Eval()
		if err != nil {
			return nil, pc, fmt.Errorf("model %q: engine %q: evaluate argument %q: %w", fitted.Model(), fitted.Engine(), name, err)
		}
		args[name] = v
	}

	raw, err := ps.Fn(ctx, fitted.Object(), input, args)
	if err != nil {
		return nil, pc, fmt.Errorf("model %q: engine %q: %s prediction: %w", fitted.Model(), fitted.Engine(), kind, err)
	}

	if ps.Post != nil {
		raw, err = ps.Post(raw, pc)
		if err != nil {
			return nil, pc, fmt.Errorf("model %q: engine %q: post-transform: %w", fitted.Model(), fitted.Engine(), err)
		}
	}

	logger.Debug("prediction dispatched",
		"model", fitted.Model(),
		"engine", fitted.Engine(),
		"kind", string(kind),
		"rows", pc.Rows,
		"elapsed", time.Since(start))
	return raw, pc, nil
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
