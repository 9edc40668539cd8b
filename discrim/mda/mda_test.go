package mda

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fitmesh/core"
	"github.com/hupe1980/fitmesh/engine"
	"github.com/hupe1980/fitmesh/internal/testutil"
)

func fitTwoClass(t *testing.T, args engine.Args) *Model {
	t.Helper()
	obj, err := FitMixture(context.Background(), testutil.TwoClassTraining(), args)
	require.NoError(t, err)
	model, ok := obj.(*Model)
	require.True(t, ok)
	return model
}

func TestFitMixture(t *testing.T) {
	model := fitTwoClass(t, engine.Args{"subclasses": 2, "iterations": 4})

	assert.Equal(t, []string{"low", "high"}, model.Levels)
	assert.Equal(t, []string{"x1", "x2"}, model.Columns)
	assert.Equal(t, 2, model.Subclasses)
	// Two subclasses per class.
	assert.Len(t, model.Centroids, 4)
}

func TestFitMixtureDeterministic(t *testing.T) {
	a := fitTwoClass(t, engine.Args{"subclasses": 2})
	b := fitTwoClass(t, engine.Args{"subclasses": 2})
	assert.Equal(t, a, b)
}

func TestFitMixtureCapsSubclasses(t *testing.T) {
	training := testutil.NewTrainingSetBuilder().
		Column("x", 0, 10).
		Classes("a", "b").
		Build()
	obj, err := FitMixture(context.Background(), training, engine.Args{"subclasses": 5})
	require.NoError(t, err)
	model := obj.(*Model)
	// One member per class, so one centroid per class despite subclasses=5.
	assert.Len(t, model.Centroids, 2)
}

func TestFitMixtureValidation(t *testing.T) {
	_, err := FitMixture(context.Background(), testutil.LinearTraining(), engine.Args{})
	assert.ErrorIs(t, err, ErrNoClasses)

	_, err = FitMixture(context.Background(), testutil.TwoClassTraining(), engine.Args{"subclasses": 0})
	assert.Error(t, err)
}

func TestPredictClass(t *testing.T) {
	model := fitTwoClass(t, engine.Args{"subclasses": 2})

	out, err := PredictClass(context.Background(), model, testutil.TwoClassNewData(), nil)
	require.NoError(t, err)
	factor, ok := out.(core.Factor)
	require.True(t, ok)

	labels, err := factor.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "low", "high", "high"}, labels)
	assert.Equal(t, []string{"low", "high"}, factor.Levels)
}

func TestPredictPosterior(t *testing.T) {
	model := fitTwoClass(t, engine.Args{"subclasses": 2})
	newData := testutil.TwoClassNewData()

	out, err := PredictPosterior(context.Background(), model, newData, nil)
	require.NoError(t, err)
	table, ok := out.(core.Frame)
	require.True(t, ok)

	assert.Equal(t, []string{"low", "high"}, table.Names())
	assert.Equal(t, newData.Rows(), table.Rows())

	low, _ := table.Column("low")
	high, _ := table.Column("high")
	for i := 0; i < newData.Rows(); i++ {
		assert.InDelta(t, 1.0, low[i]+high[i], 1e-9, "row %d probabilities must sum to 1", i)
	}
	// Well separated clusters: near-certain assignments.
	assert.Greater(t, low[0], 0.9)
	assert.Greater(t, high[3], 0.9)
}

func TestPredictRejectsColumnMismatch(t *testing.T) {
	model := fitTwoClass(t, engine.Args{"subclasses": 2})

	wide, err := core.NewFrame([]string{"x1", "x2", "x3"}, [][]float64{{0}, {0}, {0}})
	require.NoError(t, err)
	narrow, err := core.NewFrame([]string{"x1"}, [][]float64{{0}})
	require.NoError(t, err)
	renamed, err := core.NewFrame([]string{"x2", "x1"}, [][]float64{{0}, {0}})
	require.NoError(t, err)

	for _, newData := range []core.Frame{wide, narrow, renamed} {
		_, err := PredictClass(context.Background(), model, newData, nil)
		assert.Error(t, err)
		_, err = PredictPosterior(context.Background(), model, newData, nil)
		assert.Error(t, err)
	}
}

func TestPredictRejectsForeignObject(t *testing.T) {
	_, err := PredictClass(context.Background(), struct{}{}, testutil.TwoClassNewData(), nil)
	assert.Error(t, err)
	_, err = PredictPosterior(context.Background(), 42, testutil.TwoClassNewData(), nil)
	assert.Error(t, err)
}
