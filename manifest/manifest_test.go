package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/discrim/mda"
	"github.com/hupe1980/fitmesh/engine"
	"github.com/hupe1980/fitmesh/internal/testutil"
	"github.com/hupe1980/fitmesh/predict"
	"github.com/hupe1980/fitmesh/registry"
)

const mixtureManifest = `
model "discrim_mixture" {
  modes = ["classification"]

  engine "mda" {
    mode     = "classification"
    packages = ["github.com/hupe1980/fitmesh/discrim/mda"]

    fit {
      func      = "mda.FitMixture"
      protected = ["data", "classes", "weights"]
      defaults {
        iterations = 4
      }
    }

    predict "class"     { func = "mda.PredictClass" }
    predict "classprob" { func = "mda.PredictPosterior" }
  }

  arg "sub_classes" {
    mda = "subclasses"
  }
}
`

func stubFit(context.Context, core.TrainingSet, engine.Args) (any, error) { return "fitted", nil }

func stubPred(context.Context, any, core.Frame, engine.Args) (any, error) { return nil, nil }

func boundLoader(reg *registry.Registry) *Loader {
	l := NewLoader(reg)
	l.BindFit("mda.FitMixture", stubFit)
	l.BindPred("mda.PredictClass", stubPred)
	l.BindPred("mda.PredictPosterior", stubPred)
	return l
}

func TestLoadBytesRegisters(t *testing.T) {
	reg := registry.New()
	l := boundLoader(reg)
	require.NoError(t, l.LoadBytes([]byte(mixtureManifest), "mixture.hcl"))

	assert.Equal(t, []string{"discrim_mixture"}, reg.Models())
	assert.True(t, reg.HasMode("discrim_mixture", core.ModeClassification))
	assert.True(t, reg.HasEngine("discrim_mixture", core.ModeClassification, "mda"))

	native, ok, err := reg.NativeArg("discrim_mixture", "sub_classes", "mda")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "subclasses", native)

	desc, err := reg.Descriptor("discrim_mixture", "mda")
	require.NoError(t, err)
	assert.Equal(t, "mda.FitMixture", desc.Fit.Ref.String())
	assert.Equal(t, engine.InterfaceDataSet, desc.Fit.Interface)
	assert.Equal(t, []string{"data", "classes", "weights"}, desc.Fit.Protected)
	assert.NotNil(t, desc.Class)
	assert.NotNil(t, desc.ClassProb)
	assert.Nil(t, desc.Numeric)

	assert.NoError(t, reg.Validate())
}

func TestLoadBytesUnboundFunc(t *testing.T) {
	reg := registry.New()
	l := NewLoader(reg)
	l.BindFit("mda.FitMixture", stubFit)
	// Prediction functions left unbound.
	err := l.LoadBytes([]byte(mixtureManifest), "mixture.hcl")
	assert.ErrorIs(t, err, ErrUnboundFunc)
}

func TestLoadBytesBadFuncRef(t *testing.T) {
	reg := registry.New()
	l := NewLoader(reg)
	l.BindFit("FitMixture", stubFit)
	src := `
model "m" {
  modes = ["regression"]
  engine "e" {
    mode = "regression"
    fit { func = "FitMixture" }
  }
}
`
	err := l.LoadBytes([]byte(src), "bad.hcl")
	assert.ErrorIs(t, err, ErrBadFuncRef)
}

func TestLoadBytesUnknownPredKind(t *testing.T) {
	reg := registry.New()
	l := NewLoader(reg)
	l.BindFit("p.Fit", stubFit)
	l.BindPred("p.Pred", stubPred)
	src := `
model "m" {
  modes = ["regression"]
  engine "e" {
    mode = "regression"
    fit { func = "p.Fit" }
    predict "quantile" { func = "p.Pred" }
  }
}
`
	err := l.LoadBytes([]byte(src), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prediction kind")
}

func TestDefaultsStayDeferred(t *testing.T) {
	reg := registry.New()
	l := boundLoader(reg)
	// A default referencing a variable cannot be evaluated without a scope,
	// but loading must still succeed: defaults are only evaluated at fit.
	src := `
model "discrim_mixture" {
  modes = ["classification"]
  engine "mda" {
    mode = "classification"
    fit {
      func = "mda.FitMixture"
      defaults {
        iterations = max_iterations
      }
    }
    predict "class"     { func = "mda.PredictClass" }
    predict "classprob" { func = "mda.PredictPosterior" }
  }
}
`
	require.NoError(t, l.LoadBytes([]byte(src), "deferred.hcl"))

	desc, err := reg.Descriptor("discrim_mixture", "mda")
	require.NoError(t, err)
	def := desc.Fit.Defaults["iterations"]
	require.NotNil(t, def)
	assert.Equal(t, "max_iterations", def.String())

	_, err = def.Eval()
	assert.Error(t, err)
}

func TestManifestEndToEnd(t *testing.T) {
	reg := registry.New()
	l := NewLoader(reg)
	l.BindFit("mda.FitMixture", mda.FitMixture)
	l.BindPred("mda.PredictClass", mda.PredictClass)
	l.BindPred("mda.PredictPosterior", mda.PredictPosterior)
	require.NoError(t, l.LoadBytes([]byte(mixtureManifest), "mixture.hcl"))

	specSrc := `
spec {
  model  = "discrim_mixture"
  mode   = "classification"
  engine = "mda"
  args {
    sub_classes = 2
  }
}
`
	s, err := LoadSpecBytes(reg, []byte(specSrc), "spec.hcl")
	require.NoError(t, err)

	call, err := s.Translate()
	require.NoError(t, err)
	assert.Equal(t, "mda.FitMixture(data = <data>, classes = <classes>, weights = <weights>, iterations = 4, subclasses = 2)", call.Render())

	fitted, err := s.Fit(context.Background(), testutil.TwoClassTraining())
	require.NoError(t, err)

	factor, err := predict.Class(context.Background(), fitted, testutil.TwoClassNewData())
	require.NoError(t, err)
	labels, err := factor.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "low", "high", "high"}, labels)
}

func TestLoadSpecBytesValidation(t *testing.T) {
	reg := registry.New()
	l := boundLoader(reg)
	require.NoError(t, l.LoadBytes([]byte(mixtureManifest), "mixture.hcl"))

	_, err := LoadSpecBytes(reg, []byte(`
spec {
  model = "discrim_mixture"
  mode  = "regression"
}
`), "spec.hcl")
	assert.ErrorIs(t, err, registry.ErrUnknownMode)

	_, err = LoadSpecBytes(reg, []byte(`
spec {
  model  = "discrim_mixture"
  mode   = "classification"
  engine = "earth"
}
`), "spec.hcl")
	assert.ErrorIs(t, err, registry.ErrUnknownEngine)
}
