// Package modelstore contains concrete stores for fitted model objects.
//
// A fitted model is immutable once produced, so stores hand out the shared
// pointer rather than copies. Implementation packages like this one
// (in-memory, object stores, databases, etc.) provide storage backends that
// can be swapped without touching calling code.
//
// Callers should depend on the Store interface rather than concrete types so
// they can substitute alternative persistence layers in tests or production.
package modelstore
