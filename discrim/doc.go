// Package discrim registers the discriminant analysis model family. The
// package is the worked example of the registration contract: a mode set, an
// engine table row, an argument key and one engine descriptor per engine.
//
// Currently one model is provided: discrim_mixture (mixture discriminant
// analysis), classification only, backed by the mda engine in the discrim/mda
// subpackage. Additional engines plug in by extending Register or by loading
// an HCL manifest.
package discrim
