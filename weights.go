package morph

import "math"

// NormalizeWeights returns a copy of w scaled to sum to 1.
// If the sum is not a positive finite number, every entry becomes 1/len(w).
// An empty input returns an empty slice.
func NormalizeWeights(w []float64) []float64 {
	out := make([]float64, len(w))
	if len(w) == 0 {
		return out
	}

	var sum float64
	for _, v := range w {
		sum += v
	}
	if !(sum > 0) || math.IsInf(sum, 1) {
		u := 1 / float64(len(w))
		for i := range out {
			out[i] = u
		}
		return out
	}

	for i, v := range w {
		out[i] = v / sum
	}
	return out
}

// PairWeights returns the blend weights (1-alpha, alpha) of a two-image morph.
func PairWeights(alpha float64) []float64 {
	return []float64{1 - alpha, alpha}
}
