package manifest

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/registry"
	"github.com/hupe1980/fitmesh/spec"
)

type specRoot struct {
	Spec *specBlock `hcl:"spec,block"`
}

type specBlock struct {
	Model  string     `hcl:"model"`
	Mode   string     `hcl:"mode"`
	Engine string     `hcl:"engine,optional"`
	Args   *argsBlock `hcl:"args,block"`
}

type argsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// LoadSpecBytes builds a model specification from a spec file held in memory:
//
//	spec {
//	  model  = "discrim_mixture"
//	  mode   = "classification"
//	  engine = "mda"
//	  args {
//	    sub_classes = 2
//	  }
//	}
//
// Argument values stay deferred; they are evaluated when the spec is fitted.
func LoadSpecBytes(reg *registry.Registry, src []byte, filename string, optFns ...func(*spec.Options)) (*spec.Spec, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse spec %s: %w", filename, diags)
	}

	var root specRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode spec %s: %w", filename, diags)
	}
	if root.Spec == nil {
		return nil, fmt.Errorf("spec %s: missing spec block", filename)
	}

	s, err := spec.New(reg, root.Spec.Model, core.Mode(root.Spec.Mode), optFns...)
	if err != nil {
		return nil, err
	}

	if root.Spec.Args != nil {
		attrs, diags := root.Spec.Args.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("spec %s: args: %w", filename, diags)
		}
		for _, attr := range attrs {
			s.SetArg(attr.Name, newHCLExpr(attr.Expr, src))
		}
	}

	if root.Spec.Engine != "" {
		if err := s.SetEngine(root.Spec.Engine); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadSpec builds a model specification from the spec file at path.
func LoadSpec(reg *registry.Registry, path string, optFns ...func(*spec.Options)) (*spec.Spec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	return LoadSpecBytes(reg, src, path, optFns...)
}
