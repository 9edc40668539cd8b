package discrim

import (
	"fmt"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/discrim/mda"
	"github.com/hupe1980/fitmesh/engine"
	"github.com/hupe1980/fitmesh/logging"
	"github.com/hupe1980/fitmesh/registry"
	"github.com/hupe1980/fitmesh/spec"
)

const (
	// ModelMixture is the registered name of the mixture discriminant
	// analysis model.
	ModelMixture = "discrim_mixture"
	// EngineMDA is the built-in mixture engine.
	EngineMDA = "mda"
)

// Register adds the discrim model family to a registry.
func Register(r *registry.Registry) error {
	if err := r.AddModel(ModelMixture); err != nil {
		return err
	}
	if err := r.AddMode(ModelMixture, core.ModeClassification); err != nil {
		return err
	}
	if err := r.AddEngine(ModelMixture, EngineMDA, core.ModeClassification); err != nil {
		return err
	}
	if err := r.SetArgKey(ModelMixture, "sub_classes", EngineMDA, "subclasses"); err != nil {
		return err
	}

	desc := &engine.Descriptor{
		RequiredPackages: []string{"github.com/hupe1980/fitmesh/discrim/mda"},
		Fit: engine.FitSpec{
			Interface: engine.InterfaceDataSet,
			Protected: []string{"data", "classes", "weights"},
			Ref:       engine.FuncRef{Pkg: "mda", Name: "FitMixture"},
			Fn:        mda.FitMixture,
			Defaults: map[string]core.Expr{
				"iterations": core.Lit(mda.DefaultIterations),
			},
		},
		Class: &engine.PredSpec{
			Ref: engine.FuncRef{Pkg: "mda", Name: "PredictClass"},
			Fn:  mda.PredictClass,
		},
		ClassProb: &engine.PredSpec{
			Ref: engine.FuncRef{Pkg: "mda", Name: "PredictPosterior"},
			Fn:  mda.PredictPosterior,
		},
	}
	if err := r.SetDescriptor(ModelMixture, EngineMDA, desc); err != nil {
		return err
	}
	return nil
}

// MixtureOptions configures the Mixture constructor.
type MixtureOptions struct {
	// SubClasses is the canonical sub_classes argument, deferred. Nil leaves
	// the engine default in place.
	SubClasses core.Expr
	// Engine selects the back end; defaults to EngineMDA.
	Engine string
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Mixture constructs a classification specification for mixture discriminant
// analysis. The sole built-in engine is selected unless overridden.
func Mixture(reg *registry.Registry, optFns ...func(*MixtureOptions)) (*spec.Spec, error) {
	opts := MixtureOptions{Engine: EngineMDA}
	for _, fn := range optFns {
		fn(&opts)
	}

	s, err := spec.New(reg, ModelMixture, core.ModeClassification, func(o *spec.Options) {
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}
	if opts.SubClasses != nil {
		s.SetArg("sub_classes", opts.SubClasses)
	}
	if err := s.SetEngine(opts.Engine); err != nil {
		return nil, fmt.Errorf("mixture: %w", err)
	}
	return s, nil
}
