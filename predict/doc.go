// Package predict dispatches prediction requests against a fitted model:
// it selects the matching prediction sub-descriptor for the requested kind,
// applies the optional pre-transform to the input, invokes the engine
// function with the live fitted object, applies the optional post-transform,
// and enforces the output shape contract.
//
// Shape contracts:
//
//   - Numeric: an unnamed numeric vector with one entry per input row
//   - Class: a categorical vector whose levels are exactly the training
//     categories, in training order
//   - ClassProb: a table with one column per training category and one row
//     per input row
//
// Violations surface as *ShapeError: a registration bug in the engine
// descriptor, not a runtime fault to be retried.
package predict
