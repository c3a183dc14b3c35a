package morph

import "github.com/gogpu/morph/internal/wide"

// Blend returns (1-alpha)*a + alpha*b per channel, rounded to the nearest
// integer and clamped to [0, 255]. alpha is not clamped.
// a and b must have the same size and channel count.
func Blend(a, b *Raster, alpha float64) (*Raster, error) {
	if a == nil || b == nil {
		return nil, ErrNilRaster
	}
	if err := checkSameShape("Blend", a, b); err != nil {
		return nil, err
	}
	return weightedSum(a, []*Raster{a, b}, PairWeights(alpha)), nil
}

// BlendMany returns sum_k w[k]*rasters[k] per channel, with weights
// normalized by NormalizeWeights. Scaling all weights by a positive constant
// does not change the result. All rasters must share size and channel count.
func BlendMany(rasters []*Raster, weights []float64) (*Raster, error) {
	if len(rasters) == 0 {
		return nil, mismatch("BlendMany", "rasters", 1, 0, ErrEmptyInput)
	}
	if len(weights) != len(rasters) {
		return nil, mismatch("BlendMany", "weights", len(rasters), len(weights), ErrInputCount)
	}
	for _, r := range rasters {
		if r == nil {
			return nil, ErrNilRaster
		}
		if err := checkSameShape("BlendMany", rasters[0], r); err != nil {
			return nil, err
		}
	}
	return weightedSum(rasters[0], rasters, NormalizeWeights(weights)), nil
}

func weightedSum(shape *Raster, rasters []*Raster, weights []float64) *Raster {
	out := &Raster{
		Width:    shape.Width,
		Height:   shape.Height,
		Channels: shape.Channels,
		Pix:      make([]uint8, len(shape.Pix)),
	}
	srcs := make([][]uint8, len(rasters))
	for i, r := range rasters {
		srcs[i] = r.Pix
	}
	wide.WeightedSum(out.Pix, srcs, weights)
	return out
}
