package morph

import (
	"math"

	"github.com/gogpu/morph/internal/wide"
)

// snapTolerance is how close to a pixel center a position on the last row
// or column must be to count as that pixel.
const snapTolerance = 1e-9

// Sample returns the channel values of r at the continuous position (x, y).
// See SampleInto for the sampling rules.
func Sample(r *Raster, x, y float64) []uint8 {
	dst := make([]uint8, r.Channels)
	SampleInto(dst, r, x, y)
	return dst
}

// SampleInto writes the channel values of r at (x, y) to dst, which must
// hold at least r.Channels bytes.
//
// The position is clamped to [0, Width-1] x [0, Height-1] (NaN clamps to 0).
// When a full 2x2 neighborhood exists, i.e. x < Width-1 and y < Height-1,
// each channel is interpolated bilinearly and rounded to the nearest integer.
// Otherwise, on the last row or column, the pixel at the truncated position
// is copied. A coordinate within snapTolerance of an integer is rounded to
// it before truncation.
func SampleInto(dst []uint8, r *Raster, x, y float64) {
	maxX, maxY := float64(r.Width-1), float64(r.Height-1)
	x = clampCoord(x, maxX)
	y = clampCoord(y, maxY)

	c := r.Channels

	if x >= maxX || y >= maxY {
		i := (snapIndex(y)*r.Width + snapIndex(x)) * c
		copy(dst[:c], r.Pix[i:i+c])
		return
	}

	x0, y0 := int(x), int(y)
	fx, fy := x-float64(x0), y-float64(y0)
	w00 := (1 - fx) * (1 - fy)
	w01 := fx * (1 - fy)
	w10 := (1 - fx) * fy
	w11 := fx * fy

	row := r.Width * c
	i00 := (y0*r.Width + x0) * c
	i01 := i00 + c
	i10 := i00 + row
	i11 := i10 + c
	pix := r.Pix
	for ch := range c {
		v := w00*float64(pix[i00+ch]) +
			w01*float64(pix[i01+ch]) +
			w10*float64(pix[i10+ch]) +
			w11*float64(pix[i11+ch])
		dst[ch] = wide.ToU8(v)
	}
}

// clampCoord clamps v into [0, hi]. NaN becomes 0.
func clampCoord(v, hi float64) float64 {
	switch {
	case !(v > 0):
		return 0
	case v > hi:
		return hi
	default:
		return v
	}
}

// snapIndex truncates v, which must be non-negative, after rounding it to
// the nearest integer when it lies within snapTolerance of one.
func snapIndex(v float64) int {
	if n := math.Round(v); math.Abs(v-n) < snapTolerance {
		return int(n)
	}
	return int(v)
}
