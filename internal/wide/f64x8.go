package wide

import "math"

// Lanes is the number of values processed per F64x8.
const Lanes = 8

// F64x8 represents 8 float64 values for SIMD-style operations.
type F64x8 [Lanes]float64

// LoadU8 widens the first 8 bytes of src.
// src must have at least 8 elements.
func LoadU8(src []uint8) F64x8 {
	_ = src[Lanes-1]
	var result F64x8
	for i := range result {
		result[i] = float64(src[i])
	}
	return result
}

// MulAdd returns v + x*s element-wise.
func (v F64x8) MulAdd(x F64x8, s float64) F64x8 {
	var result F64x8
	for i := range v {
		result[i] = v[i] + x[i]*s
	}
	return result
}

// StoreU8 rounds each element half away from zero, clamps it to [0, 255]
// and writes it to the first 8 bytes of dst.
// NaN lanes store 0.
func (v F64x8) StoreU8(dst []uint8) {
	_ = dst[Lanes-1]
	for i := range v {
		dst[i] = ToU8(v[i])
	}
}

// ToU8 rounds x half away from zero and clamps it to [0, 255].
// NaN maps to 0.
func ToU8(x float64) uint8 {
	switch {
	case !(x > 0):
		return 0
	case x >= 255:
		return 255
	default:
		return uint8(math.Round(x))
	}
}
