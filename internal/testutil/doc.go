// Package testutil contains helper builders and canned datasets used across
// tests to reduce boilerplate when constructing core data values (frames,
// factors, training sets). These helpers are intentionally minimal and avoid
// adding third-party dependencies. They are not intended for production
// usage.
package testutil
