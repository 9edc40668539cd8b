// Package registry implements the model registration tables: which modes a
// model supports, which engines are available per mode, how canonical
// argument names translate to each engine's native names, and which
// descriptor drives each (model, engine) pair.
//
// All lookups are pure and deterministic (list results are sorted). The
// Registry is safe for concurrent use; registration typically happens once
// at startup and lookups dominate afterwards.
//
// Registration mistakes surface as sentinel-wrapped configuration errors,
// never as runtime faults: selecting an unsupported mode, choosing an
// engine missing from the table, or colliding with a protected fit
// argument all fail synchronously before any fitting attempt.
package registry
