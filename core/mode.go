package core

// Mode identifies the task type a model performs.
type Mode string

const (
	// ModeUnknown is a placeholder for specifications whose task type has
	// not been resolved yet. It is never valid at translation or fit time.
	ModeUnknown Mode = "unknown"
	// ModeClassification marks models predicting categorical outcomes.
	ModeClassification Mode = "classification"
	// ModeRegression marks models predicting numeric outcomes.
	ModeRegression Mode = "regression"
)

// Known reports whether the mode is a concrete, executable task type.
func (m Mode) Known() bool {
	return m == ModeClassification || m == ModeRegression
}

// PredKind selects which prediction sub-descriptor a dispatch targets.
type PredKind string

const (
	// PredNumeric requests an unnamed numeric vector.
	PredNumeric PredKind = "numeric"
	// PredClass requests a categorical vector aligned to training levels.
	PredClass PredKind = "class"
	// PredClassProb requests a table with one column per training level.
	PredClassProb PredKind = "classprob"
)

// KnownPredKind reports whether k names one of the three dispatchable kinds.
func KnownPredKind(k PredKind) bool {
	return k == PredNumeric || k == PredClass || k == PredClassProb
}
