package spec

import (
	"github.com/google/uuid"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
	"github.com/hupe1980/fitmesh/internal/util"
	"github.com/hupe1980/fitmesh/logging"
)

// Fitted is the immutable result of fitting a specification: the opaque
// engine object plus the metadata prediction dispatch needs (training
// levels, the bound descriptor, the call that produced it). All fields are
// unexported; accessors return copies where mutation would otherwise leak.
type Fitted struct {
	id     uuid.UUID
	model  string
	eng    string
	mode   core.Mode
	object any
	levels []string
	call   *core.Call
	method *engine.Descriptor
	logger logging.Logger
}

func newFitted(model, eng string, mode core.Mode, object any, levels []string, call *core.Call, method *engine.Descriptor, logger logging.Logger) *Fitted {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Fitted{
		id:     uuid.New(),
		model:  model,
		eng:    eng,
		mode:   mode,
		object: object,
		levels: levels,
		call:   call,
		method: method,
		logger: logger,
	}
}

// ID returns the unique fit identifier.
func (f *Fitted) ID() uuid.UUID { return f.id }

// Model returns the model name.
func (f *Fitted) Model() string { return f.model }

// Engine returns the engine that produced the fit.
func (f *Fitted) Engine() string { return f.eng }

// Mode returns the operating mode of the fit.
func (f *Fitted) Mode() core.Mode { return f.mode }

// Object returns the opaque engine fit object.
func (f *Fitted) Object() any { return f.object }

// Levels returns a copy of the training categories (nil for regression).
func (f *Fitted) Levels() []string { return util.CloneStrings(f.levels) }

// Call returns the call expression that produced the fit.
func (f *Fitted) Call() *core.Call { return f.call }

// Method returns the engine descriptor bound at fit time.
func (f *Fitted) Method() *engine.Descriptor { return f.method }

// Logger returns the logger attached at fit time.
func (f *Fitted) Logger() logging.Logger { return f.logger }
