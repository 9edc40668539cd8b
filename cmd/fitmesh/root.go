package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/fitmesh"
	"github.com/hupe1980/fitmesh/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	manifests  string
	noBuiltins bool
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "fitmesh",
	Short: "Inspect and validate model registrations",
	Long: "Fitmesh manages declarative model specifications with pluggable engines.\n" +
		"It lists registered models and engines, renders the deferred call a spec\n" +
		"translates to, and validates registration tables and manifest files.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.manifests, "manifests", "", "Directory of .hcl manifest files to load")
	pf.BoolVar(&rootFlags.noBuiltins, "no-builtins", false, "Do not register the built-in model families")
	pf.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(enginesCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.Version = version
}

// buildMesh assembles a FitMesh from the persistent flags: built-in model
// families plus any manifest directory.
func buildMesh() (*fitmesh.FitMesh, error) {
	var logger logging.Logger = logging.NoOpLogger{}
	if rootFlags.verbose {
		logger = logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
	}

	m, err := fitmesh.New(func(o *fitmesh.Options) {
		o.SkipBuiltins = rootFlags.noBuiltins
		o.Logger = logger
	})
	if err != nil {
		return nil, err
	}
	if rootFlags.manifests != "" {
		if err := m.NewLoader().LoadDir(rootFlags.manifests); err != nil {
			return nil, fmt.Errorf("load manifests: %w", err)
		}
	}
	return m, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
