package linreg

import (
	"fmt"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
	"github.com/hupe1980/fitmesh/linreg/ols"
	"github.com/hupe1980/fitmesh/logging"
	"github.com/hupe1980/fitmesh/registry"
	"github.com/hupe1980/fitmesh/spec"
)

const (
	// ModelLinear is the registered name of the linear regression model.
	ModelLinear = "linear_reg"
	// EngineOLS is the built-in ordinary least squares engine.
	EngineOLS = "ols"
)

// Register adds the linear regression model to a registry.
func Register(r *registry.Registry) error {
	if err := r.AddModel(ModelLinear); err != nil {
		return err
	}
	if err := r.AddMode(ModelLinear, core.ModeRegression); err != nil {
		return err
	}
	if err := r.AddEngine(ModelLinear, EngineOLS, core.ModeRegression); err != nil {
		return err
	}
	if err := r.SetArgKey(ModelLinear, "intercept", EngineOLS, "fit_intercept"); err != nil {
		return err
	}

	desc := &engine.Descriptor{
		RequiredPackages: []string{"github.com/hupe1980/fitmesh/linreg/ols"},
		Fit: engine.FitSpec{
			Interface: engine.InterfaceDataSet,
			Protected: []string{"data", "outcome", "weights"},
			Ref:       engine.FuncRef{Pkg: "ols", Name: "Fit"},
			Fn:        ols.Fit,
			Defaults: map[string]core.Expr{
				"fit_intercept": core.Lit(true),
			},
		},
		Numeric: &engine.PredSpec{
			Ref: engine.FuncRef{Pkg: "ols", Name: "Predict"},
			Fn:  ols.Predict,
		},
	}
	if err := r.SetDescriptor(ModelLinear, EngineOLS, desc); err != nil {
		return err
	}
	return nil
}

// LinearOptions configures the Linear constructor.
type LinearOptions struct {
	// Intercept is the canonical intercept argument, deferred. Nil leaves
	// the engine default in place.
	Intercept core.Expr
	// Engine selects the back end; defaults to EngineOLS.
	Engine string
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Linear constructs a regression specification for a linear model.
func Linear(reg *registry.Registry, optFns ...func(*LinearOptions)) (*spec.Spec, error) {
	opts := LinearOptions{Engine: EngineOLS}
	for _, fn := range optFns {
		fn(&opts)
	}

	s, err := spec.New(reg, ModelLinear, core.ModeRegression, func(o *spec.Options) {
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}
	if opts.Intercept != nil {
		s.SetArg("intercept", opts.Intercept)
	}
	if err := s.SetEngine(opts.Engine); err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	return s, nil
}
