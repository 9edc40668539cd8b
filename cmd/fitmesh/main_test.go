package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootFlags.manifests = ""
	rootFlags.noBuiltins = false
	rootFlags.verbose = false
	translateFlags.output = "text"
	enginesFlags.mode = ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeSpecFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mixture.hcl")
	src := `
spec {
  model  = "discrim_mixture"
  mode   = "classification"
  engine = "mda"
  args {
    sub_classes = 2
  }
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestModelsCommand(t *testing.T) {
	out, err := execute(t, "models")
	require.NoError(t, err)
	assert.Contains(t, out, "discrim_mixture  [classification]")
	assert.Contains(t, out, "linear_reg  [regression]")
}

func TestEnginesCommand(t *testing.T) {
	out, err := execute(t, "engines", "discrim_mixture")
	require.NoError(t, err)
	assert.Contains(t, out, "classification  mda  fit=mda.FitMixture")
	assert.Contains(t, out, "predict=[class, classprob]")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 model(s) registered")
}

func TestTranslateCommandText(t *testing.T) {
	out, err := execute(t, "translate", "--spec", writeSpecFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "mda.FitMixture(data = <data>, classes = <classes>, weights = <weights>, iterations = 4, subclasses = 2)")
}

func TestTranslateCommandYAML(t *testing.T) {
	out, err := execute(t, "translate", "--spec", writeSpecFile(t), "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "package: mda")
	assert.Contains(t, out, "func: FitMixture")
	assert.Contains(t, out, "name: subclasses")
	assert.Contains(t, out, "protected: true")
}

func TestTranslateCommandBadFormat(t *testing.T) {
	_, err := execute(t, "translate", "--spec", writeSpecFile(t), "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
