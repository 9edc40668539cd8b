// Package util contains small helpers shared across fitmesh packages. This
// lives in internal to avoid committing to public API stability prematurely.
package util

import "sort"

// SortedKeys returns the map's string keys in ascending order. Used wherever
// iteration order must be deterministic (call templates, warnings, CLI
// output).
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CloneStrings returns a fresh copy of s (nil stays nil).
func CloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
