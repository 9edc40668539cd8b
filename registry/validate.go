package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/fitmesh/core"
)

// Validate performs a registry-wide parity check between the declared
// tables and the bound descriptors. It catches the registration mistakes
// that would otherwise only surface on first use:
//
//   - a model with no modes, or a mode with no engines
//   - an engine row with no descriptor, or a descriptor missing its fit
//     function or symbolic target
//   - a classification engine with no class prediction spec
//   - a prediction spec declared but missing its live function
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []string

	for model, m := range r.models {
		if len(m.modes) == 0 {
			errs = append(errs, fmt.Sprintf("model %q: no modes registered", model))
		}
		for mode := range m.modes {
			if len(m.engines[mode]) == 0 {
				errs = append(errs, fmt.Sprintf("model %q: mode %q has no engines", model, mode))
			}
		}
		for mode, row := range m.engines {
			for eng := range row {
				desc, ok := m.descriptors[eng]
				if !ok {
					errs = append(errs, fmt.Sprintf("model %q: engine %q has no descriptor", model, eng))
					continue
				}
				if desc.Fit.Fn == nil {
					errs = append(errs, fmt.Sprintf("model %q: engine %q: descriptor has no fit function", model, eng))
				}
				if desc.Fit.Ref.Name == "" {
					errs = append(errs, fmt.Sprintf("model %q: engine %q: fit spec has no target reference", model, eng))
				}
				if mode == core.ModeClassification && desc.Class == nil {
					errs = append(errs, fmt.Sprintf("model %q: engine %q: classification engine lacks a class prediction spec", model, eng))
				}
				if desc.Numeric != nil && desc.Numeric.Fn == nil {
					errs = append(errs, fmt.Sprintf("model %q: engine %q: numeric prediction spec has no function bound", model, eng))
				}
				if desc.Class != nil && desc.Class.Fn == nil {
					errs = append(errs, fmt.Sprintf("model %q: engine %q: class prediction spec has no function bound", model, eng))
				}
				if desc.ClassProb != nil && desc.ClassProb.Fn == nil {
					errs = append(errs, fmt.Sprintf("model %q: engine %q: classprob prediction spec has no function bound", model, eng))
				}
			}
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
