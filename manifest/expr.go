package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/hupe1980/fitmesh/core"
)

// hclExpr defers an HCL expression behind the core.Expr contract. String
// returns the original source text; Eval converts through cty at the point
// of use.
type hclExpr struct {
	expr hcl.Expression
	src  string
}

func newHCLExpr(expr hcl.Expression, fileBytes []byte) core.Expr {
	return hclExpr{expr: expr, src: string(expr.Range().SliceBytes(fileBytes))}
}

// Eval evaluates the expression (no variable scope) and converts the result
// to its native Go representation.
func (e hclExpr) Eval() (any, error) {
	v, diags := e.expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluate %q: %w", e.src, diags)
	}
	return ctyToGo(v)
}

// String returns the unevaluated source text.
func (e hclExpr) String() string { return e.src }

// ctyToGo recursively converts a cty.Value to its most natural Go
// counterpart: string, float64, bool, []any or map[string]any.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, fmt.Errorf("convert bool: %w", err)
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0)
		it := v.ElementIterator()
		for it.Next() {
			_, el := it.Element()
			native, err := ctyToGo(el)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, el := it.Element()
			native, err := ctyToGo(el)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
