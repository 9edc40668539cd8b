package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the registration tables for structural gaps",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	m, err := buildMesh()
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d model(s) registered\n", len(m.Registry().Models()))
	return nil
}
