// Package spec implements the user-facing model specification: a mode plus
// named canonical arguments held as deferred expressions, an optional engine
// choice, and the translation step that merges the specification with the
// chosen engine's descriptor into a concrete, printable call expression.
//
// Nothing is evaluated at construction or translation time. Arguments stay
// deferred until Fit actually runs them, so an engine's setup cost is bound
// to the point of use.
//
// Validation is front-loaded: an unsupported mode fails in New, an engine
// outside the engine table fails in SetEngine and again in Translate, and a
// user argument colliding with a protected fit argument fails in Translate.
// All of these are configuration errors for the implementer of a new model,
// not runtime faults.
package spec
