// Package wide provides SIMD-friendly wide types for batch channel processing.
//
// F64x8 holds 8 float64 lanes in a fixed-size array. Simple loops over
// fixed-size arrays let the Go compiler keep lanes in registers and, on
// supported architectures, emit vector instructions.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
//
// # Usage Example
//
//	// out = 0.25*a + 0.75*b, 8 channel values at a time
//	wide.WeightedSum(out, [][]uint8{a, b}, []float64{0.25, 0.75})
package wide
