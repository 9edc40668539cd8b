package spec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
	"github.com/hupe1980/fitmesh/internal/util"
	"github.com/hupe1980/fitmesh/logging"
	"github.com/hupe1980/fitmesh/registry"
)

var (
	// ErrNoEngine is returned when translation or fitting is requested
	// before an engine has been selected.
	ErrNoEngine = errors.New("no engine selected")
	// ErrMissingOutcome is returned when the training set lacks the outcome
	// field the spec's mode requires.
	ErrMissingOutcome = errors.New("training set lacks outcome for mode")
)

// Options configures a Spec at construction time.
type Options struct {
	// Engine preselects an engine; validated against the engine table.
	Engine string
	// Args seeds canonical arguments (deferred expressions).
	Args map[string]core.Expr
	// Logger defaults to NoOpLogger if nil.
	Logger logging.Logger
}

// Spec is a model specification: mode plus unevaluated canonical arguments,
// bound to a registry. It is mutated by SetArg/SetEngine until fit; the
// Fitted value produced by Fit is immutable.
type Spec struct {
	reg    *registry.Registry
	model  string
	mode   core.Mode
	eng    string
	args   map[string]core.Expr
	logger logging.Logger
}

// New constructs a specification for a registered model. The mode must be a
// member of the model's mode set; this is checked immediately, before any
// engine work.
func New(reg *registry.Registry, model string, mode core.Mode, optFns ...func(*Options)) (*Spec, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	if _, err := reg.Modes(model); err != nil {
		return nil, err
	}
	if !mode.Known() || !reg.HasMode(model, mode) {
		return nil, fmt.Errorf("model %q: mode %q: %w", model, mode, registry.ErrUnknownMode)
	}

	s := &Spec{
		reg:    reg,
		model:  model,
		mode:   mode,
		args:   make(map[string]core.Expr),
		logger: opts.Logger,
	}
	for name, expr := range opts.Args {
		s.args[name] = expr
	}
	if opts.Engine != "" {
		if err := s.SetEngine(opts.Engine); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Model returns the model name.
func (s *Spec) Model() string { return s.model }

// Mode returns the operating mode.
func (s *Spec) Mode() core.Mode { return s.mode }

// Engine returns the selected engine name ("" when none is selected).
func (s *Spec) Engine() string { return s.eng }

// SetArg binds a canonical argument to a deferred expression. Resolution
// against the argument key happens at translation time, not here.
func (s *Spec) SetArg(canonical string, expr core.Expr) *Spec {
	s.args[canonical] = expr
	return s
}

// Args returns a copy of the canonical argument map.
func (s *Spec) Args() map[string]core.Expr {
	out := make(map[string]core.Expr, len(s.args))
	for k, v := range s.args {
		out[k] = v
	}
	return out
}

// SetEngine selects the engine. The engine must appear in the engine table
// for the spec's mode.
func (s *Spec) SetEngine(eng string) error {
	if !s.reg.HasEngine(s.model, s.mode, eng) {
		return fmt.Errorf("model %q: mode %q: engine %q: %w", s.model, s.mode, eng, registry.ErrUnknownEngine)
	}
	s.eng = eng
	return nil
}

// Translate merges the specification with the engine descriptor into a
// concrete deferred call expression. Translation is pure: the spec is not
// mutated and translating twice yields identical calls.
//
// Canonical arguments with no native mapping for the chosen engine are
// dropped with a warning. A user argument resolving to a protected fit
// argument is a configuration error.
func (s *Spec) Translate() (*core.Call, error) {
	if s.eng == "" {
		return nil, fmt.Errorf("model %q: %w", s.model, ErrNoEngine)
	}
	if !s.reg.HasEngine(s.model, s.mode, s.eng) {
		return nil, fmt.Errorf("model %q: mode %q: engine %q: %w", s.model, s.mode, s.eng, registry.ErrUnknownEngine)
	}
	desc, err := s.reg.Descriptor(s.model, s.eng)
	if err != nil {
		return nil, err
	}

	native := make(map[string]core.Expr, len(s.args)+len(desc.Fit.Defaults))
	for _, canonical := range util.SortedKeys(s.args) {
		name, ok, err := s.reg.NativeArg(s.model, canonical, s.eng)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Warn("canonical argument has no native mapping for engine; dropping",
				"model", s.model, "engine", s.eng, "argument", canonical)
			continue
		}
		if desc.Fit.IsProtected(name) {
			return nil, fmt.Errorf("model %q: engine %q: argument %q (native %q): %w",
				s.model, s.eng, canonical, name, registry.ErrProtectedArg)
		}
		native[name] = s.args[canonical]
	}

	// Defaults apply only where the user left the slot empty.
	for name, def := range desc.Fit.Defaults {
		if _, ok := native[name]; !ok {
			native[name] = def
		}
	}

	callArgs := make([]core.CallArg, 0, len(desc.Fit.Protected)+len(native))
	for _, p := range desc.Fit.Protected {
		callArgs = append(callArgs, core.CallArg{Name: p, Placeholder: true})
	}
	for _, name := range util.SortedKeys(native) {
		callArgs = append(callArgs, core.CallArg{Name: name, Value: native[name]})
	}

	return &core.Call{
		Package: desc.Fit.Ref.Pkg,
		Func:    desc.Fit.Ref.Name,
		Args:    callArgs,
	}, nil
}

// Fit translates the specification, evaluates its deferred arguments and
// invokes the engine's fit function. The returned Fitted value is immutable.
func (s *Spec) Fit(ctx context.Context, training core.TrainingSet) (*Fitted, error) {
	start := time.Now()

	call, err := s.Translate()
	if err != nil {
		return nil, err
	}
	desc, err := s.reg.Descriptor(s.model, s.eng)
	if err != nil {
		return nil, err
	}

	switch s.mode {
	case core.ModeClassification:
		if training.Classes == nil {
			return nil, fmt.Errorf("model %q: mode %q: %w", s.model, s.mode, ErrMissingOutcome)
		}
	case core.ModeRegression:
		if training.Numeric == nil {
			return nil, fmt.Errorf("model %q: mode %q: %w", s.model, s.mode, ErrMissingOutcome)
		}
	}
	if training.Weights != nil && len(training.Weights) != training.Rows() {
		return nil, fmt.Errorf("model %q: %d weights for %d rows", s.model, len(training.Weights), training.Rows())
	}

	evaluated, err := call.EvalArgs()
	if err != nil {
		return nil, fmt.Errorf("model %q: engine %q: %w", s.model, s.eng, err)
	}

	obj, err := desc.Fit.Fn(ctx, training, engine.Args(evaluated))
	if err != nil {
		s.logger.Error("model fit failed", "model", s.model, "engine", s.eng, "error", err)
		return nil, fmt.Errorf("model %q: engine %q: fit: %w", s.model, s.eng, err)
	}

	var levels []string
	if training.Classes != nil {
		levels = util.CloneStrings(training.Classes.Levels)
	}

	f := newFitted(s.model, s.eng, s.mode, obj, levels, call, desc, s.logger)
	s.logger.Info("model fit complete",
		"fit_id", f.ID().String(),
		"model", s.model,
		"engine", s.eng,
		"rows", training.Rows(),
		"elapsed", time.Since(start))
	return f, nil
}
