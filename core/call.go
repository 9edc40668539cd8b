package core

import (
	"fmt"
	"strings"
)

// CallArg is one named slot of a deferred call. Placeholder slots stand in
// for values the dispatcher supplies at execution time (training data,
// fitted object, new data); they render as <name> and are never evaluated
// through the template.
type CallArg struct {
	Name        string
	Value       Expr
	Placeholder bool
}

// Call is an immutable deferred call template: a symbolic target function
// plus its ordered named arguments. A Call can be rendered for inspection
// long before (or without ever) being executed.
type Call struct {
	Package string
	Func    string
	Args    []CallArg
}

// Render produces the printable call expression. Rendering is
// deterministic: equal calls render identically.
func (c *Call) Render() string {
	var b strings.Builder
	b.WriteString(c.Package)
	b.WriteString(".")
	b.WriteString(c.Func)
	b.WriteString("(")
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name)
		b.WriteString(" = ")
		if a.Placeholder {
			b.WriteString("<" + a.Name + ">")
		} else {
			b.WriteString(a.Value.String())
		}
	}
	b.WriteString(")")
	return b.String()
}

// EvalArgs evaluates every non-placeholder argument into a native-name map.
func (c *Call) EvalArgs() (map[string]any, error) {
	out := make(map[string]any, len(c.Args))
	for _, a := range c.Args {
		if a.Placeholder {
			continue
		}
		v, err := a.Value.Eval()
		if err != nil {
			return nil, fmt.Errorf("evaluate argument %q: %w", a.Name, err)
		}
		out[a.Name] = v
	}
	return out, nil
}

// ArgNames returns the argument names in template order.
func (c *Call) ArgNames() []string {
	names := make([]string, len(c.Args))
	for i, a := range c.Args {
		names[i] = a.Name
	}
	return names
}
