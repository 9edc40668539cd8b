package registry

import "errors"

var (
	// ErrUnknownModel is returned when a model name has not been registered.
	ErrUnknownModel = errors.New("model is not registered")
	// ErrUnknownMode is returned when a mode is not in the model's mode set.
	ErrUnknownMode = errors.New("mode is not supported by model")
	// ErrUnknownEngine is returned when an engine is absent from the engine
	// table for the resolved mode.
	ErrUnknownEngine = errors.New("engine is not available")
	// ErrDuplicate is returned when a registration repeats an existing entry.
	ErrDuplicate = errors.New("already registered")
	// ErrNoDescriptor is returned when a (model, engine) pair has no
	// descriptor bound.
	ErrNoDescriptor = errors.New("no engine descriptor")
	// ErrProtectedArg is returned when an argument collides with a
	// protected fit argument.
	ErrProtectedArg = errors.New("argument is protected")
	// ErrUnsupportedPrediction is returned when an engine descriptor lacks
	// the requested prediction kind.
	ErrUnsupportedPrediction = errors.New("prediction kind not supported by engine")
)
