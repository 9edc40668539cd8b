package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
	"github.com/hupe1980/fitmesh/logging"
	"github.com/hupe1980/fitmesh/registry"
)

var (
	// ErrUnboundFunc is returned when a manifest names a fit or predict
	// function that has no Go binding on the loader.
	ErrUnboundFunc = errors.New("manifest function has no Go binding")
	// ErrBadFuncRef is returned for a function reference that is not in
	// pkg.Name form.
	ErrBadFuncRef = errors.New("function reference must be pkg.Name")
)

// fileRoot decodes the top-level blocks of a manifest file.
type fileRoot struct {
	Models []*modelBlock `hcl:"model,block"`
}

type modelBlock struct {
	Name    string         `hcl:"name,label"`
	Modes   []string       `hcl:"modes"`
	Engines []*engineBlock `hcl:"engine,block"`
	Args    []*argBlock    `hcl:"arg,block"`
}

type engineBlock struct {
	Name     string       `hcl:"name,label"`
	Mode     string       `hcl:"mode"`
	Packages []string     `hcl:"packages,optional"`
	Fit      *fitBlock    `hcl:"fit,block"`
	Predicts []*predBlock `hcl:"predict,block"`
}

type fitBlock struct {
	Func      string         `hcl:"func"`
	Interface string         `hcl:"interface,optional"`
	Protected []string       `hcl:"protected,optional"`
	Defaults  *defaultsBlock `hcl:"defaults,block"`
}

type predBlock struct {
	Kind     string         `hcl:"kind,label"`
	Func     string         `hcl:"func"`
	Defaults *defaultsBlock `hcl:"defaults,block"`
}

// defaultsBlock keeps its attributes as raw HCL so default values stay
// deferred until fit time.
type defaultsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// argBlock maps one canonical argument name to per-engine native names. The
// attribute names are engine names; the values are the native names.
type argBlock struct {
	Canonical string   `hcl:"canonical,label"`
	Body      hcl.Body `hcl:",remain"`
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Loader parses manifest files and applies their registrations to a registry.
// Fit and predict functions are bound by their pkg.Name reference before
// loading; a manifest referencing an unbound name fails to load.
type Loader struct {
	reg       *registry.Registry
	fitFuncs  map[string]engine.FitFunc
	predFuncs map[string]engine.PredFunc
	logger    logging.Logger
}

// NewLoader constructs a Loader targeting the given registry.
func NewLoader(reg *registry.Registry, optFns ...func(*LoaderOptions)) *Loader {
	opts := LoaderOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Loader{
		reg:       reg,
		fitFuncs:  make(map[string]engine.FitFunc),
		predFuncs: make(map[string]engine.PredFunc),
		logger:    opts.Logger,
	}
}

// BindFit registers the Go fit function behind a pkg.Name reference.
func (l *Loader) BindFit(ref string, fn engine.FitFunc) {
	l.fitFuncs[ref] = fn
}

// BindPred registers the Go prediction function behind a pkg.Name reference.
func (l *Loader) BindPred(ref string, fn engine.PredFunc) {
	l.predFuncs[ref] = fn
}

// LoadBytes applies one manifest held in memory. filename is used for
// diagnostics only.
func (l *Loader) LoadBytes(src []byte, filename string) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("parse manifest %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return fmt.Errorf("decode manifest %s: %w", filename, diags)
	}

	for _, model := range root.Models {
		if err := l.applyModel(model, src); err != nil {
			return fmt.Errorf("manifest %s: %w", filename, err)
		}
	}

	l.logger.Debug("manifest loaded", "file", filename, "models", len(root.Models))
	return nil
}

// Load applies the manifest at path.
func (l *Loader) Load(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	return l.LoadBytes(src, path)
}

// LoadDir walks dir and applies every .hcl file found, in lexical order.
func (l *Loader) LoadDir(dir string) error {
	return filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(p) != ".hcl" {
			return nil
		}
		return l.Load(p)
	})
}

// applyModel registers one model block: modes first, then engines and their
// descriptors, then argument keys (which require the engines to exist).
func (l *Loader) applyModel(block *modelBlock, src []byte) error {
	if err := l.reg.AddModel(block.Name); err != nil {
		return err
	}
	for _, mode := range block.Modes {
		if err := l.reg.AddMode(block.Name, core.Mode(mode)); err != nil {
			return err
		}
	}

	for _, eng := range block.Engines {
		if err := l.reg.AddEngine(block.Name, eng.Name, core.Mode(eng.Mode)); err != nil {
			return err
		}
		desc, err := l.buildDescriptor(block.Name, eng, src)
		if err != nil {
			return err
		}
		if err := l.reg.SetDescriptor(block.Name, eng.Name, desc); err != nil {
			return err
		}
	}

	for _, arg := range block.Args {
		if err := l.applyArgKey(block.Name, arg); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) buildDescriptor(model string, eng *engineBlock, src []byte) (*engine.Descriptor, error) {
	if eng.Fit == nil {
		return nil, fmt.Errorf("model %q: engine %q: missing fit block", model, eng.Name)
	}

	fitRef, err := parseFuncRef(eng.Fit.Func)
	if err != nil {
		return nil, fmt.Errorf("model %q: engine %q: %w", model, eng.Name, err)
	}
	fitFn, ok := l.fitFuncs[eng.Fit.Func]
	if !ok {
		return nil, fmt.Errorf("model %q: engine %q: fit %q: %w", model, eng.Name, eng.Fit.Func, ErrUnboundFunc)
	}

	iface := engine.Interface(eng.Fit.Interface)
	if iface == "" {
		iface = engine.InterfaceDataSet
	}
	if iface != engine.InterfaceDataSet && iface != engine.InterfaceMatrix {
		return nil, fmt.Errorf("model %q: engine %q: unknown interface %q", model, eng.Name, eng.Fit.Interface)
	}

	defaults, err := deferredDefaults(eng.Fit.Defaults, src)
	if err != nil {
		return nil, fmt.Errorf("model %q: engine %q: %w", model, eng.Name, err)
	}

	desc := &engine.Descriptor{
		RequiredPackages: eng.Packages,
		Fit: engine.FitSpec{
			Interface: iface,
			Protected: eng.Fit.Protected,
			Ref:       fitRef,
			Fn:        fitFn,
			Defaults:  defaults,
		},
	}

	for _, pred := range eng.Predicts {
		kind := core.PredKind(pred.Kind)
		if !core.KnownPredKind(kind) {
			return nil, fmt.Errorf("model %q: engine %q: unknown prediction kind %q", model, eng.Name, pred.Kind)
		}
		if desc.Pred(kind) != nil {
			return nil, fmt.Errorf("model %q: engine %q: prediction kind %q: %w", model, eng.Name, pred.Kind, registry.ErrDuplicate)
		}
		ref, err := parseFuncRef(pred.Func)
		if err != nil {
			return nil, fmt.Errorf("model %q: engine %q: predict %q: %w", model, eng.Name, pred.Kind, err)
		}
		fn, ok := l.predFuncs[pred.Func]
		if !ok {
			return nil, fmt.Errorf("model %q: engine %q: predict %q: %q: %w", model, eng.Name, pred.Kind, pred.Func, ErrUnboundFunc)
		}
		predDefaults, err := deferredDefaults(pred.Defaults, src)
		if err != nil {
			return nil, fmt.Errorf("model %q: engine %q: predict %q: %w", model, eng.Name, pred.Kind, err)
		}
		ps := &engine.PredSpec{Ref: ref, Fn: fn, Defaults: predDefaults}
		switch kind {
		case core.PredNumeric:
			desc.Numeric = ps
		case core.PredClass:
			desc.Class = ps
		case core.PredClassProb:
			desc.ClassProb = ps
		}
	}
	return desc, nil
}

// applyArgKey reads one arg block: each attribute maps an engine name to that
// engine's native argument name. Native names are plain strings and are
// evaluated immediately, unlike defaults.
func (l *Loader) applyArgKey(model string, block *argBlock) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("model %q: argument %q: %w", model, block.Canonical, diags)
	}
	for _, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("model %q: argument %q: engine %q: %w", model, block.Canonical, attr.Name, diags)
		}
		native, err := ctyToGo(v)
		if err != nil {
			return fmt.Errorf("model %q: argument %q: engine %q: %w", model, block.Canonical, attr.Name, err)
		}
		s, ok := native.(string)
		if !ok {
			return fmt.Errorf("model %q: argument %q: engine %q: native name must be a string", model, block.Canonical, attr.Name)
		}
		if err := l.reg.SetArgKey(model, block.Canonical, attr.Name, s); err != nil {
			return err
		}
	}
	return nil
}

// deferredDefaults wraps each defaults attribute in an unevaluated expression.
func deferredDefaults(block *defaultsBlock, src []byte) (map[string]core.Expr, error) {
	if block == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("defaults: %w", diags)
	}
	out := make(map[string]core.Expr, len(attrs))
	for _, attr := range attrs {
		out[attr.Name] = newHCLExpr(attr.Expr, src)
	}
	return out, nil
}

func parseFuncRef(ref string) (engine.FuncRef, error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return engine.FuncRef{}, fmt.Errorf("%q: %w", ref, ErrBadFuncRef)
	}
	return engine.FuncRef{Pkg: ref[:i], Name: ref[i+1:]}, nil
}
