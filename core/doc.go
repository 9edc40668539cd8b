// Package core defines the domain contracts shared by every layer of
// fitmesh: operating modes, deferred argument expressions, deferred call
// templates and the small data values (frames, factors, training sets)
// that engine functions consume and produce.
//
// Keeping these contracts in one leaf package prevents higher layers
// (registry, spec, predict, manifests) from depending on each other's
// concrete types.
package core
