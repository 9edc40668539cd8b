package modelstore

import "fmt"

var (
	// ErrNotFound is returned when no fitted model exists for the given
	// model / fit id pair.
	ErrNotFound = fmt.Errorf("fitted model not found")
)
