package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var translateFlags struct {
	spec   string
	output string
}

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Render the deferred call a spec file translates to",
	RunE:  runTranslate,
}

func init() {
	f := translateCmd.Flags()
	f.StringVar(&translateFlags.spec, "spec", "", "Path to an HCL spec file (required)")
	f.StringVarP(&translateFlags.output, "output", "o", "text", "Output format (text|yaml)")

	_ = translateCmd.MarkFlagRequired("spec")
}

// callDoc is the yaml projection of a translated call expression.
type callDoc struct {
	Package string   `yaml:"package"`
	Func    string   `yaml:"func"`
	Args    []argDoc `yaml:"args"`
}

type argDoc struct {
	Name      string `yaml:"name"`
	Value     string `yaml:"value,omitempty"`
	Protected bool   `yaml:"protected,omitempty"`
}

func runTranslate(cmd *cobra.Command, _ []string) error {
	m, err := buildMesh()
	if err != nil {
		return err
	}

	s, err := m.LoadSpec(translateFlags.spec)
	if err != nil {
		return err
	}
	call, err := s.Translate()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch translateFlags.output {
	case "text":
		fmt.Fprintln(out, call.Render())
		return nil
	case "yaml":
		doc := callDoc{Package: call.Package, Func: call.Func}
		for _, arg := range call.Args {
			d := argDoc{Name: arg.Name, Protected: arg.Placeholder}
			if !arg.Placeholder {
				d.Value = arg.Value.String()
			}
			doc.Args = append(doc.Args, d)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", translateFlags.output)
	}
}
