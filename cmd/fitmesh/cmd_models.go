package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List registered models and their modes",
	RunE:  runModels,
}

func runModels(cmd *cobra.Command, _ []string) error {
	m, err := buildMesh()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, model := range m.Registry().Models() {
		modes, err := m.Registry().Modes(model)
		if err != nil {
			return err
		}
		names := make([]string, len(modes))
		for i, mode := range modes {
			names[i] = string(mode)
		}
		fmt.Fprintf(out, "%s  [%s]\n", model, strings.Join(names, ", "))
	}
	return nil
}
