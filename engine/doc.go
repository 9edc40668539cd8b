// Package engine defines the descriptor records that bind a (model, engine)
// pair to concrete fit and prediction functions.
//
// A Descriptor is the registration contract a back-end implementation must
// satisfy to plug into fitmesh:
//
//   - Fit: the fit target, its protected data arguments (never
//     user-overridable) and its user-overridable deferred defaults
//   - Numeric / Class / ClassProb: optional prediction sub-descriptors,
//     each with optional pre/post transform hooks
//
// Descriptors are plain structured data. Nothing in this package executes
// anything; execution happens when the spec and predict packages evaluate
// a translated call at the point of use.
package engine
