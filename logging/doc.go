// Package logging provides a minimal logging interface and adapters for fitmesh.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the registry, spec and predict layers use for
// observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - FitmeshLogger with contextual helpers for model/engine/fit attribution
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	mesh, err := fitmesh.New(func(o *fitmesh.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
