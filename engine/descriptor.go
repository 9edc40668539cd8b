package engine

import (
	"context"

	"github.com/hupe1980/fitmesh/core"
)

// Interface names the data-passing convention a fit function expects.
type Interface string

const (
	// InterfaceDataSet passes predictors and outcome as a core.TrainingSet.
	InterfaceDataSet Interface = "dataset"
	// InterfaceMatrix passes predictors as a bare numeric matrix. Reserved
	// for engines that cannot accept named columns.
	InterfaceMatrix Interface = "matrix"
)

// Args is the evaluated argument set handed to an engine function, keyed by
// the engine's native argument names.
type Args map[string]any

// Int reads an integer argument, tolerating the numeric types deferred
// expression evaluation may produce.
func (a Args) Int(name string, def int) int {
	v, ok := a[name]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return def
}

// Float reads a float argument with the same tolerance as Int.
func (a Args) Float(name string, def float64) float64 {
	v, ok := a[name]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	return def
}

// Bool reads a boolean argument.
func (a Args) Bool(name string, def bool) bool {
	if v, ok := a[name].(bool); ok {
		return v
	}
	return def
}

// FuncRef is the symbolic reference to an engine function. It is what call
// expressions render and what manifests use to bind Go handlers.
type FuncRef struct {
	Pkg  string
	Name string
}

// String returns the pkg.Name form.
func (r FuncRef) String() string { return r.Pkg + "." + r.Name }

// FitFunc is the signature every fit target implements. The training set
// carries the protected data slots; args carries the evaluated native
// arguments.
type FitFunc func(ctx context.Context, training core.TrainingSet, args Args) (any, error)

// PredFunc is the signature every prediction target implements. fitted is
// the opaque object a FitFunc returned.
type PredFunc func(ctx context.Context, fitted any, newData core.Frame, args Args) (any, error)

// PredContext carries fit-time facts a transform hook may need.
type PredContext struct {
	// Levels are the training categories, in training order. Empty for
	// regression fits.
	Levels []string
	// Rows is the number of rows in the prediction input.
	Rows int
}

// PreTransform adapts prediction input before the engine function runs.
type PreTransform func(newData core.Frame, pc PredContext) (core.Frame, error)

// PostTransform normalizes raw engine output into the dispatch contract
// shape for its prediction kind.
type PostTransform func(raw any, pc PredContext) (any, error)

// FitSpec describes how to call an engine's fit function.
type FitSpec struct {
	// Interface is the data-passing convention of Fn.
	Interface Interface
	// Protected lists argument names the user may never override. They
	// appear as placeholders in rendered call expressions and are bound by
	// the dispatcher at fit time.
	Protected []string
	// Ref is the symbolic target used for rendering and manifest binding.
	Ref FuncRef
	// Fn is the live fit target.
	Fn FitFunc
	// Defaults are deferred, user-overridable native arguments applied only
	// when the user did not supply the corresponding canonical argument.
	Defaults map[string]core.Expr
}

// PredSpec describes how to call one of an engine's prediction functions.
type PredSpec struct {
	Ref      FuncRef
	Fn       PredFunc
	Defaults map[string]core.Expr
	Pre      PreTransform
	Post     PostTransform
}

// Descriptor bundles everything fitmesh needs to drive one engine for one
// model: the fit spec plus up to three prediction specs. Nil prediction
// specs mean the engine does not support that kind.
type Descriptor struct {
	// RequiredPackages names the packages an implementation pulls in; kept
	// for inspection output so users can see what a fit will load.
	RequiredPackages []string

	Fit       FitSpec
	Numeric   *PredSpec
	Class     *PredSpec
	ClassProb *PredSpec
}

// Pred returns the sub-descriptor for a prediction kind, nil when the
// engine does not support it.
func (d *Descriptor) Pred(kind core.PredKind) *PredSpec {
	switch kind {
	case core.PredNumeric:
		return d.Numeric
	case core.PredClass:
		return d.Class
	case core.PredClassProb:
		return d.ClassProb
	default:
		return nil
	}
}

// IsProtected reports whether name is one of the fit spec's protected
// arguments.
func (s FitSpec) IsProtected(name string) bool {
	for _, p := range s.Protected {
		if p == name {
			return true
		}
	}
	return false
}
