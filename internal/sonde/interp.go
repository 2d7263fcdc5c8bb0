// Package sonde implements the numeric kernels of the TEMPDROP pipeline:
// profile building from decoded level lines, 1-D interpolation of missing
// measurements over pressure, inter-level layer means, and the theoretical
// sonde fall rate.
package sonde

import (
	"math"
	"sort"
)

// InterpMissing fills NaN gaps in varin by linear interpolation over the
// pressure coordinate zarr, with linear extrapolation beyond the valid range.
// When varin has one or zero valid samples the input is returned as an
// unmodified copy: a profile that sparse cannot be repaired, which is a
// degraded-data condition rather than an error. varin and zarr must be the
// same length.
func InterpMissing(varin, zarr []float64) []float64 {
	varout := make([]float64, len(varin))
	copy(varout, varin)

	var xs, ys []float64
	for i, v := range varin {
		if !math.IsNaN(v) && !math.IsNaN(zarr[i]) {
			xs = append(xs, zarr[i])
			ys = append(ys, v)
		}
	}
	if len(xs) <= 1 {
		return varout
	}

	f := newInterpolant(xs, ys)
	for i, v := range varin {
		if math.IsNaN(v) {
			varout[i] = f.at(zarr[i])
		}
	}
	return varout
}

// InterpOnto evaluates the linear interpolant defined by the (x, y) samples
// at every point of xnew, extrapolating beyond the sample range. NaN samples
// are ignored. With no valid samples the result is all NaN; with a single
// valid sample it is constant.
func InterpOnto(x, y, xnew []float64) []float64 {
	var xs, ys []float64
	for i := range x {
		if !math.IsNaN(x[i]) && !math.IsNaN(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}

	out := make([]float64, len(xnew))
	switch len(xs) {
	case 0:
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	case 1:
		for i := range out {
			out[i] = ys[0]
		}
		return out
	}

	f := newInterpolant(xs, ys)
	for i, xv := range xnew {
		out[i] = f.at(xv)
	}
	return out
}

// interpolant is a piecewise-linear interpolant over strictly increasing
// abscissae, extrapolating with the slope of the outermost segment.
type interpolant struct {
	xs []float64
	ys []float64
}

func newInterpolant(xs, ys []float64) interpolant {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	sx := make([]float64, 0, len(xs))
	sy := make([]float64, 0, len(ys))
	for _, i := range idx {
		// Duplicate abscissae would make a segment vertical; keep the first.
		if len(sx) > 0 && xs[i] == sx[len(sx)-1] {
			continue
		}
		sx = append(sx, xs[i])
		sy = append(sy, ys[i])
	}
	return interpolant{xs: sx, ys: sy}
}

func (f interpolant) at(x float64) float64 {
	n := len(f.xs)
	if n == 1 {
		return f.ys[0]
	}

	// Segment selection; the outermost segments also serve extrapolation.
	j := sort.SearchFloat64s(f.xs, x)
	switch {
	case j <= 0:
		j = 1
	case j >= n:
		j = n - 1
	}

	x0, x1 := f.xs[j-1], f.xs[j]
	y0, y1 := f.ys[j-1], f.ys[j]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
