package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/fitmesh/core"
)

var enginesFlags struct {
	mode string
}

var enginesCmd = &cobra.Command{
	Use:   "engines <model>",
	Short: "List the engines registered for a model",
	Args:  cobra.ExactArgs(1),
	RunE:  runEngines,
}

func init() {
	enginesCmd.Flags().StringVar(&enginesFlags.mode, "mode", "", "Restrict to one mode (classification|regression)")
}

func runEngines(cmd *cobra.Command, args []string) error {
	m, err := buildMesh()
	if err != nil {
		return err
	}
	model := args[0]

	modes, err := m.Registry().Modes(model)
	if err != nil {
		return err
	}
	if enginesFlags.mode != "" {
		modes = []core.Mode{core.Mode(enginesFlags.mode)}
	}

	out := cmd.OutOrStdout()
	for _, mode := range modes {
		engines, err := m.Registry().Engines(model, mode)
		if err != nil {
			return err
		}
		for _, eng := range engines {
			desc, err := m.Registry().Descriptor(model, eng)
			if err != nil {
				return err
			}
			kinds := make([]string, 0, 3)
			for _, kind := range []core.PredKind{core.PredNumeric, core.PredClass, core.PredClassProb} {
				if desc.Pred(kind) != nil {
					kinds = append(kinds, string(kind))
				}
			}
			fmt.Fprintf(out, "%s  %s  fit=%s  predict=[%s]\n", string(mode), eng, desc.Fit.Ref, strings.Join(kinds, ", "))
		}
	}
	return nil
}
