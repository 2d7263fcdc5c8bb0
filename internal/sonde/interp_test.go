package sonde

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpMissing_FillsGapLinearly(t *testing.T) {
	nan := math.NaN()
	hgt := []float64{3000, nan, 1000}
	pres := []float64{700, 800, 900}

	out := InterpMissing(hgt, pres)

	require.Len(t, out, 3)
	assert.Equal(t, 3000.0, out[0])
	assert.InDelta(t, 2000.0, out[1], 1e-9)
	assert.Equal(t, 1000.0, out[2])
}

func TestInterpMissing_Idempotent(t *testing.T) {
	v := []float64{1.5, 2.5, 3.5, 4.5}
	z := []float64{700, 800, 850, 925}

	out := InterpMissing(v, z)

	assert.Equal(t, v, out)
}

func TestInterpMissing_DegenerateInputsUnchanged(t *testing.T) {
	nan := math.NaN()
	z := []float64{700, 800, 900}

	t.Run("no valid samples", func(t *testing.T) {
		out := InterpMissing([]float64{nan, nan, nan}, z)
		for _, v := range out {
			assert.True(t, math.IsNaN(v))
		}
	})

	t.Run("one valid sample", func(t *testing.T) {
		out := InterpMissing([]float64{nan, 5.0, nan}, z)
		assert.True(t, math.IsNaN(out[0]))
		assert.Equal(t, 5.0, out[1])
		assert.True(t, math.IsNaN(out[2]))
	})
}

func TestInterpMissing_Extrapolates(t *testing.T) {
	nan := math.NaN()
	v := []float64{nan, 20.0, 10.0, nan}
	z := []float64{600, 700, 800, 900}

	out := InterpMissing(v, z)

	assert.InDelta(t, 30.0, out[0], 1e-9)
	assert.InDelta(t, 0.0, out[3], 1e-9)
}

func TestInterpMissing_UnsortedCoordinate(t *testing.T) {
	// Decoded levels arrive surface-last or surface-first depending on the
	// message; the interpolant must not assume monotonic pressure.
	nan := math.NaN()
	v := []float64{1000, nan, 3000}
	z := []float64{900, 800, 700}

	out := InterpMissing(v, z)

	assert.InDelta(t, 2000.0, out[1], 1e-9)
}

func TestInterpOnto(t *testing.T) {
	x := []float64{800, 900}
	y := []float64{8.0, 9.0}

	out := InterpOnto(x, y, []float64{700, 850, 950})

	assert.InDelta(t, 7.0, out[0], 1e-9)
	assert.InDelta(t, 8.5, out[1], 1e-9)
	assert.InDelta(t, 9.5, out[2], 1e-9)
}

func TestInterpOnto_Degenerate(t *testing.T) {
	t.Run("no samples is all NaN", func(t *testing.T) {
		out := InterpOnto(nil, nil, []float64{700, 800})
		for _, v := range out {
			assert.True(t, math.IsNaN(v))
		}
	})

	t.Run("single sample is constant", func(t *testing.T) {
		out := InterpOnto([]float64{850}, []float64{4.2}, []float64{700, 800})
		assert.Equal(t, []float64{4.2, 4.2}, out)
	})

	t.Run("NaN samples ignored", func(t *testing.T) {
		nan := math.NaN()
		out := InterpOnto([]float64{800, nan, 900}, []float64{8, nan, 9}, []float64{850})
		assert.InDelta(t, 8.5, out[0], 1e-9)
	})
}
