package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
)

// Registry stores the registration tables for every known model. It is safe
// for concurrent access; each lookup result is a copy so callers cannot
// mutate internal state.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*modelEntry
}

type modelEntry struct {
	modes       map[core.Mode]struct{}
	engines     map[core.Mode]map[string]struct{}
	argKeys     map[string]map[string]string // canonical -> engine -> native
	descriptors map[string]*engine.Descriptor
}

func newModelEntry() *modelEntry {
	return &modelEntry{
		modes:       make(map[core.Mode]struct{}),
		engines:     make(map[core.Mode]map[string]struct{}),
		argKeys:     make(map[string]map[string]string),
		descriptors: make(map[string]*engine.Descriptor),
	}
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{models: make(map[string]*modelEntry)}
}

// AddModel registers a model name.
func (r *Registry) AddModel(model string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[model]; ok {
		return fmt.Errorf("model %q: %w", model, ErrDuplicate)
	}
	r.models[model] = newModelEntry()
	return nil
}

// AddMode adds a mode to a model's mode set. ModeUnknown is a placeholder
// and cannot be registered.
func (r *Registry) AddMode(model string, mode core.Mode) error {
	if !mode.Known() {
		return fmt.Errorf("model %q: mode %q: %w", model, mode, ErrUnknownMode)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[model]
	if !ok {
		return fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	if _, ok := m.modes[mode]; ok {
		return fmt.Errorf("model %q: mode %q: %w", model, mode, ErrDuplicate)
	}
	m.modes[mode] = struct{}{}
	return nil
}

// AddEngine records that eng can fit model in the given mode. The mode must
// already be in the model's mode set.
func (r *Registry) AddEngine(model, eng string, mode core.Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[model]
	if !ok {
		return fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	if _, ok := m.modes[mode]; !ok {
		return fmt.Errorf("model %q: mode %q: %w", model, mode, ErrUnknownMode)
	}
	row, ok := m.engines[mode]
	if !ok {
		row = make(map[string]struct{})
		m.engines[mode] = row
	}
	if _, ok := row[eng]; ok {
		return fmt.Errorf("model %q: engine %q (%s): %w", model, eng, mode, ErrDuplicate)
	}
	row[eng] = struct{}{}
	return nil
}

// SetArgKey maps a canonical argument name to an engine's native name. The
// engine must already appear in the engine table for some mode.
func (r *Registry) SetArgKey(model, canonical, eng, native string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[model]
	if !ok {
		return fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	if !m.hasEngineAnyMode(eng) {
		return fmt.Errorf("model %q: engine %q: %w", model, eng, ErrUnknownEngine)
	}
	key, ok := m.argKeys[canonical]
	if !ok {
		key = make(map[string]string)
		m.argKeys[canonical] = key
	}
	if _, ok := key[eng]; ok {
		return fmt.Errorf("model %q: argument %q for engine %q: %w", model, canonical, eng, ErrDuplicate)
	}
	key[eng] = native
	return nil
}

// SetDescriptor binds an engine descriptor to a (model, engine) pair. A
// descriptor whose defaults name one of its own protected arguments is a
// configuration error.
func (r *Registry) SetDescriptor(model, eng string, desc *engine.Descriptor) error {
	for name := range desc.Fit.Defaults {
		if desc.Fit.IsProtected(name) {
			return fmt.Errorf("model %q: engine %q: default %q: %w", model, eng, name, ErrProtectedArg)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[model]
	if !ok {
		return fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	if !m.hasEngineAnyMode(eng) {
		return fmt.Errorf("model %q: engine %q: %w", model, eng, ErrUnknownEngine)
	}
	if _, ok := m.descriptors[eng]; ok {
		return fmt.Errorf("model %q: descriptor for engine %q: %w", model, eng, ErrDuplicate)
	}
	m.descriptors[eng] = desc
	return nil
}

// Models returns all registered model names, sorted.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.models))
	for name := range r.models {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Modes returns the model's mode set, sorted.
func (r *Registry) Modes(model string) ([]core.Mode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[model]
	if !ok {
		return nil, fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	out := make([]core.Mode, 0, len(m.modes))
	for mode := range m.modes {
		out = append(out, mode)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// HasMode reports whether mode is in the model's mode set.
func (r *Registry) HasMode(model string, mode core.Mode) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[model]
	if !ok {
		return false
	}
	_, ok = m.modes[mode]
	return ok
}

// Engines returns the engine table row for (model, mode), sorted.
func (r *Registry) Engines(model string, mode core.Mode) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[model]
	if !ok {
		return nil, fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	if _, ok := m.modes[mode]; !ok {
		return nil, fmt.Errorf("model %q: mode %q: %w", model, mode, ErrUnknownMode)
	}
	row := m.engines[mode]
	out := make([]string, 0, len(row))
	for eng := range row {
		out = append(out, eng)
	}
	sort.Strings(out)
	return out, nil
}

// HasEngine reports whether eng appears in the engine table for (model, mode).
func (r *Registry) HasEngine(model string, mode core.Mode, eng string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[model]
	if !ok {
		return false
	}
	_, ok = m.engines[mode][eng]
	return ok
}

// NativeArg resolves a canonical argument name to the engine's native name.
// ok is false when the canonical name is unknown or the engine lacks that
// argument; the caller decides whether to warn or drop.
func (r *Registry) NativeArg(model, canonical, eng string) (native string, ok bool, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, found := r.models[model]
	if !found {
		return "", false, fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	key, found := m.argKeys[canonical]
	if !found {
		return "", false, nil
	}
	native, ok = key[eng]
	return native, ok, nil
}

// ArgKeys returns the canonical argument names registered for a model,
// sorted.
func (r *Registry) ArgKeys(model string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[model]
	if !ok {
		return nil, fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	out := make([]string, 0, len(m.argKeys))
	for canonical := range m.argKeys {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out, nil
}

// Descriptor returns the descriptor bound to (model, engine).
func (r *Registry) Descriptor(model, eng string) (*engine.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[model]
	if !ok {
		return nil, fmt.Errorf("model %q: %w", model, ErrUnknownModel)
	}
	desc, ok := m.descriptors[eng]
	if !ok {
		return nil, fmt.Errorf("model %q: engine %q: %w", model, eng, ErrNoDescriptor)
	}
	return desc, nil
}

// hasEngineAnyMode reports engine membership across all mode rows. Caller
// must hold at least the read lock.
func (m *modelEntry) hasEngineAnyMode(eng string) bool {
	for _, row := range m.engines {
		if _, ok := row[eng]; ok {
			return true
		}
	}
	return false
}
