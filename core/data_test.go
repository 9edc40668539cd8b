package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame(t *testing.T) {
	f, err := NewFrame([]string{"x1", "x2"}, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, 2, f.NumCols())
	assert.Equal(t, []string{"x1", "x2"}, f.Names())
	assert.Equal(t, []float64{2, 5}, f.Row(1))

	col, ok := f.Column("x2")
	assert.True(t, ok)
	assert.Equal(t, []float64{4, 5, 6}, col)

	_, ok = f.Column("missing")
	assert.False(t, ok)
}

func TestNewFrameRaggedColumns(t *testing.T) {
	_, err := NewFrame([]string{"a", "b"}, [][]float64{{1, 2}, {1}})
	assert.Error(t, err)

	_, err = NewFrame([]string{"a"}, [][]float64{{1}, {2}})
	assert.Error(t, err)
}

func TestNewFrameDuplicateNames(t *testing.T) {
	_, err := NewFrame([]string{"a", "a"}, [][]float64{{1}, {2}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "a"`)
}

func TestNewFactorLevelOrder(t *testing.T) {
	f := NewFactor([]string{"setosa", "virginica", "setosa", "versicolor"})
	// Levels follow first appearance, not lexical order.
	assert.Equal(t, []string{"setosa", "virginica", "versicolor"}, f.Levels)
	assert.Equal(t, []int{0, 1, 0, 2}, f.Codes)
	assert.Equal(t, 4, f.Len())

	labels, err := f.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"setosa", "virginica", "setosa", "versicolor"}, labels)
}

func TestFactorLabelOutOfRange(t *testing.T) {
	f := Factor{Codes: []int{3}, Levels: []string{"a"}}
	_, err := f.Label(0)
	assert.Error(t, err)
}

func TestModeKnown(t *testing.T) {
	assert.True(t, ModeClassification.Known())
	assert.True(t, ModeRegression.Known())
	assert.False(t, ModeUnknown.Known())
	assert.False(t, Mode("censored").Known())
}
