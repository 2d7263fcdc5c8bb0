package sonde

// LayerMean computes the mean of each pair of adjacent levels. The output has
// the same length as the input: index i holds the mean of v[i] and v[i+1] for
// i < len(v)-1, and the final entry is left zero. Callers apply Chop to drop
// it and align layer quantities with the HSA ordering convention.
func LayerMean(v []float64) []float64 {
	out := make([]float64, len(v))
	for i := 0; i+1 < len(v); i++ {
		out[i] = (v[i] + v[i+1]) / 2.0
	}
	return out
}

// Chop applies the HSA array-reindexing convention: reverse the slice, then
// drop the first element of the reversal (the original trailing entry). The
// result is one element shorter, holding v[0..len-2] in reverse order.
func Chop[T any](v []T) []T {
	if len(v) == 0 {
		return nil
	}
	out := make([]T, 0, len(v)-1)
	for i := len(v) - 2; i >= 0; i-- {
		out = append(out, v[i])
	}
	return out
}
