package sonde

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGSNDFall(t *testing.T) {
	// Descent slows aloft: thinner air gives a faster terminal velocity but
	// a smaller pressure tendency.
	aloft, err := GSNDFall(300, -40, 1008)
	require.NoError(t, err)
	low, err := GSNDFall(900, 20, 1008)
	require.NoError(t, err)

	assert.Positive(t, aloft)
	assert.Positive(t, low)
	assert.Greater(t, low, aloft)
}

func TestGSNDFall_Deterministic(t *testing.T) {
	a, err := GSNDFall(700, 5.0, 1010)
	require.NoError(t, err)
	b, err := GSNDFall(700, 5.0, 1010)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGSNDFall_ClampsBelowSurface(t *testing.T) {
	at, err := GSNDFall(1008, 25, 1008)
	require.NoError(t, err)
	below, err := GSNDFall(1050, 25, 1008)
	require.NoError(t, err)
	assert.Equal(t, at, below)
}

func TestGSNDFall_Invalid(t *testing.T) {
	_, err := GSNDFall(0, 20, 1008)
	assert.Error(t, err)
	_, err = GSNDFall(700, -300, 1008)
	assert.Error(t, err)
}

func TestFallRates(t *testing.T) {
	avgp := []float64{850, 700, 500}
	avgt := []float64{15, 5, -15}

	rates, err := FallRates(avgp, avgt, 1008, GSNDFall)
	require.NoError(t, err)
	require.Len(t, rates, 3)
	for i, r := range rates {
		assert.Positive(t, r, "layer %d", i)
	}
}

func TestFallRates_NaNLayersPassThrough(t *testing.T) {
	nan := math.NaN()
	rates, err := FallRates([]float64{850, nan}, []float64{15, nan}, 1008, GSNDFall)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(rates[0]))
	assert.True(t, math.IsNaN(rates[1]))
}

func TestFallRates_InjectedFunc(t *testing.T) {
	fixed := func(_, _, _ float64) (float64, error) { return 500.0, nil }

	rates, err := FallRates([]float64{850, 700}, []float64{15, 5}, 1008, fixed)
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0, 5.0}, rates, "rates carry the 1/100 HSA scale")
}
