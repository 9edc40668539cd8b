package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
)

func nopFit(_ context.Context, _ core.TrainingSet, _ engine.Args) (any, error) {
	return struct{}{}, nil
}

func nopPred(_ context.Context, _ any, _ core.Frame, _ engine.Args) (any, error) {
	return nil, nil
}

func testDescriptor() *engine.Descriptor {
	return &engine.Descriptor{
		Fit: engine.FitSpec{
			Interface: engine.InterfaceDataSet,
			Protected: []string{"data", "classes", "weights"},
			Ref:       engine.FuncRef{Pkg: "fake", Name: "Fit"},
			Fn:        nopFit,
			Defaults:  map[string]core.Expr{"iterations": core.Lit(4)},
		},
		Class:     &engine.PredSpec{Ref: engine.FuncRef{Pkg: "fake", Name: "Class"}, Fn: nopPred},
		ClassProb: &engine.PredSpec{Ref: engine.FuncRef{Pkg: "fake", Name: "Prob"}, Fn: nopPred},
	}
}

func populated(t *testing.T) *Registry {
	t.Helper()
	r := New()
	require.NoError(t, r.AddModel("discrim_mixture"))
	require.NoError(t, r.AddMode("discrim_mixture", core.ModeClassification))
	require.NoError(t, r.AddEngine("discrim_mixture", "mda", core.ModeClassification))
	require.NoError(t, r.SetArgKey("discrim_mixture", "sub_classes", "mda", "subclasses"))
	require.NoError(t, r.SetDescriptor("discrim_mixture", "mda", testDescriptor()))
	return r
}

func TestRegistryLookups(t *testing.T) {
	r := populated(t)

	assert.Equal(t, []string{"discrim_mixture"}, r.Models())

	modes, err := r.Modes("discrim_mixture")
	require.NoError(t, err)
	assert.Equal(t, []core.Mode{core.ModeClassification}, modes)

	engines, err := r.Engines("discrim_mixture", core.ModeClassification)
	require.NoError(t, err)
	assert.Equal(t, []string{"mda"}, engines)

	assert.True(t, r.HasEngine("discrim_mixture", core.ModeClassification, "mda"))
	assert.False(t, r.HasEngine("discrim_mixture", core.ModeRegression, "mda"))
	assert.False(t, r.HasEngine("discrim_mixture", core.ModeClassification, "earth"))

	native, ok, err := r.NativeArg("discrim_mixture", "sub_classes", "mda")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "subclasses", native)

	// Unknown canonical name and unmapped engine both report not-applicable.
	_, ok, err = r.NativeArg("discrim_mixture", "penalty", "mda")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = r.NativeArg("discrim_mixture", "sub_classes", "earth")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := r.ArgKeys("discrim_mixture")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub_classes"}, keys)

	desc, err := r.Descriptor("discrim_mixture", "mda")
	require.NoError(t, err)
	assert.Equal(t, "fake.Fit", desc.Fit.Ref.String())
}

func TestRegistryUnknownModel(t *testing.T) {
	r := New()
	_, err := r.Modes("nope")
	assert.ErrorIs(t, err, ErrUnknownModel)
	_, err = r.Engines("nope", core.ModeClassification)
	assert.ErrorIs(t, err, ErrUnknownModel)
	_, _, err = r.NativeArg("nope", "x", "e")
	assert.ErrorIs(t, err, ErrUnknownModel)
	_, err = r.Descriptor("nope", "e")
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.ErrorIs(t, r.AddMode("nope", core.ModeClassification), ErrUnknownModel)
}

func TestRegistryModeValidation(t *testing.T) {
	r := New()
	require.NoError(t, r.AddModel("m"))

	// The placeholder mode is never registrable.
	assert.ErrorIs(t, r.AddMode("m", core.ModeUnknown), ErrUnknownMode)
	assert.ErrorIs(t, r.AddMode("m", core.Mode("censored")), ErrUnknownMode)

	// Engines require the mode to exist first.
	assert.ErrorIs(t, r.AddEngine("m", "e", core.ModeRegression), ErrUnknownMode)

	require.NoError(t, r.AddMode("m", core.ModeRegression))
	_, err := r.Engines("m", core.ModeClassification)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestRegistryDuplicates(t *testing.T) {
	r := populated(t)
	assert.ErrorIs(t, r.AddModel("discrim_mixture"), ErrDuplicate)
	assert.ErrorIs(t, r.AddMode("discrim_mixture", core.ModeClassification), ErrDuplicate)
	assert.ErrorIs(t, r.AddEngine("discrim_mixture", "mda", core.ModeClassification), ErrDuplicate)
	assert.ErrorIs(t, r.SetArgKey("discrim_mixture", "sub_classes", "mda", "k"), ErrDuplicate)
	assert.ErrorIs(t, r.SetDescriptor("discrim_mixture", "mda", testDescriptor()), ErrDuplicate)
}

func TestSetDescriptorProtectedDefaultCollision(t *testing.T) {
	r := New()
	require.NoError(t, r.AddModel("m"))
	require.NoError(t, r.AddMode("m", core.ModeClassification))
	require.NoError(t, r.AddEngine("m", "e", core.ModeClassification))

	desc := testDescriptor()
	desc.Fit.Defaults["weights"] = core.Lit(nil)
	err := r.SetDescriptor("m", "e", desc)
	assert.ErrorIs(t, err, ErrProtectedArg)
}

func TestSetDescriptorUnknownEngine(t *testing.T) {
	r := New()
	require.NoError(t, r.AddModel("m"))
	require.NoError(t, r.AddMode("m", core.ModeClassification))
	err := r.SetDescriptor("m", "ghost", testDescriptor())
	assert.ErrorIs(t, err, ErrUnknownEngine)

	err = r.SetArgKey("m", "x", "ghost", "y")
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestValidateParity(t *testing.T) {
	r := populated(t)
	assert.NoError(t, r.Validate())

	// An engine row without a descriptor fails validation.
	require.NoError(t, r.AddEngine("discrim_mixture", "earth", core.ModeClassification))
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `engine "earth" has no descriptor`)
}

func TestValidateMissingClassSpec(t *testing.T) {
	r := New()
	require.NoError(t, r.AddModel("m"))
	require.NoError(t, r.AddMode("m", core.ModeClassification))
	require.NoError(t, r.AddEngine("m", "e", core.ModeClassification))

	desc := testDescriptor()
	desc.Class = nil
	require.NoError(t, r.SetDescriptor("m", "e", desc))

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lacks a class prediction spec")
}

func TestValidateUnboundPredFunc(t *testing.T) {
	r := New()
	require.NoError(t, r.AddModel("m"))
	require.NoError(t, r.AddMode("m", core.ModeClassification))
	require.NoError(t, r.AddEngine("m", "e", core.ModeClassification))

	desc := testDescriptor()
	desc.ClassProb.Fn = nil
	require.NoError(t, r.SetDescriptor("m", "e", desc))

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classprob prediction spec has no function bound")
}
