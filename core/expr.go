package core

import "fmt"

// Expr is a deferred argument value. Constructing an Expr never evaluates
// anything; Eval runs only when a fit or prediction is actually requested,
// so the cost (and any optional engine setup it implies) is paid at the
// point of use.
//
// String returns the printable form used when rendering call expressions.
// It must not trigger evaluation.
type Expr interface {
	Eval() (any, error)
	String() string
}

type litExpr struct{ val any }

// Lit wraps an already-known value as an Expr.
func Lit(v any) Expr { return litExpr{val: v} }

// Eval returns the wrapped value.
func (e litExpr) Eval() (any, error) { return e.val, nil }

// String renders the literal in call-expression form.
func (e litExpr) String() string { return FormatValue(e.val) }

type deferredExpr struct {
	repr string
	fn   func() (any, error)
}

// Deferred wraps a thunk plus its printable form. The thunk runs on every
// Eval call; callers needing memoization wrap it themselves.
func Deferred(repr string, fn func() (any, error)) Expr {
	return deferredExpr{repr: repr, fn: fn}
}

// Eval invokes the thunk.
func (e deferredExpr) Eval() (any, error) { return e.fn() }

// String returns the printable form supplied at construction.
func (e deferredExpr) String() string { return e.repr }

// FormatValue renders a literal the way call expressions print it: strings
// quoted, nil as null, everything else via %v.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
