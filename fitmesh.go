// Package fitmesh provides a high-level façade over the model registration
// and dispatch machinery (registry, specs, manifests & logging) enabling
// declarative model definitions with pluggable engines. Most applications
// interact with this package by:
//  1. Creating a FitMesh via New() (the built-in model families are
//     registered unless disabled)
//  2. Building a specification with NewSpec (or loading one from an HCL file)
//  3. Fitting it and dispatching predictions via the predict package
//
// The façade delegates table management to registry.Registry while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; larger deployments typically load additional
// engines from manifest files and supply a structured logger.
package fitmesh

import (
	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/discrim"
	"github.com/hupe1980/fitmesh/discrim/mda"
	"github.com/hupe1980/fitmesh/linreg"
	"github.com/hupe1980/fitmesh/linreg/ols"
	"github.com/hupe1980/fitmesh/logging"
	"github.com/hupe1980/fitmesh/manifest"
	"github.com/hupe1980/fitmesh/modelstore"
	"github.com/hupe1980/fitmesh/registry"
	"github.com/hupe1980/fitmesh/spec"
)

// Options configures the FitMesh instance.
type Options struct {
	// Registry holds the registration tables. A fresh one is created when
	// nil.
	Registry *registry.Registry

	// SkipBuiltins leaves the registry empty instead of registering the
	// built-in model families (discrim, linreg).
	SkipBuiltins bool

	// Store keeps fitted models (defaults to an in-memory implementation)
	Store modelstore.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// FitMesh is the high-level façade aggregating the registry, fitted model
// store and loaders.
type FitMesh struct {
	opts  Options
	reg   *registry.Registry
	store modelstore.Store
}

// New creates a new FitMesh instance with optional overrides. The built-in
// model families are registered unless SkipBuiltins is set.
func New(optFns ...func(o *Options)) (*FitMesh, error) {
	opts := Options{
		Store:  modelstore.NewInMemoryStore(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.New()
	}

	if !opts.SkipBuiltins {
		if err := discrim.Register(reg); err != nil {
			return nil, err
		}
		if err := linreg.Register(reg); err != nil {
			return nil, err
		}
	}

	return &FitMesh{opts: opts, reg: reg, store: opts.Store}, nil
}

// Registry exposes the underlying registration tables.
func (m *FitMesh) Registry() *registry.Registry { return m.reg }

// Store exposes the fitted model store.
func (m *FitMesh) Store() modelstore.Store { return m.store }

// NewSpec builds a model specification against the mesh's registry.
func (m *FitMesh) NewSpec(model string, mode core.Mode, optFns ...func(*spec.Options)) (*spec.Spec, error) {
	fns := append([]func(*spec.Options){func(o *spec.Options) {
		o.Logger = m.opts.Logger
	}}, optFns...)
	return spec.New(m.reg, model, mode, fns...)
}

// NewLoader builds a manifest loader targeting the mesh's registry. The
// built-in engine functions are pre-bound so manifests can reference them.
func (m *FitMesh) NewLoader() *manifest.Loader {
	l := manifest.NewLoader(m.reg, func(o *manifest.LoaderOptions) {
		o.Logger = m.opts.Logger
	})
	l.BindFit("mda.FitMixture", mda.FitMixture)
	l.BindPred("mda.PredictClass", mda.PredictClass)
	l.BindPred("mda.PredictPosterior", mda.PredictPosterior)
	l.BindFit("ols.Fit", ols.Fit)
	l.BindPred("ols.Predict", ols.Predict)
	return l
}

// LoadSpec reads an HCL spec file and builds the specification it describes.
func (m *FitMesh) LoadSpec(path string) (*spec.Spec, error) {
	return manifest.LoadSpec(m.reg, path, func(o *spec.Options) {
		o.Logger = m.opts.Logger
	})
}

// Validate checks the registration tables for structural gaps.
func (m *FitMesh) Validate() error { return m.reg.Validate() }
