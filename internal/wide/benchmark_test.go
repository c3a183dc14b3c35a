package wide

import "testing"

// Benchmark F64x8 operations to verify auto-vectorization

func BenchmarkF64x8_MulAdd(b *testing.B) {
	var a, c F64x8
	for i := range a {
		a[i], c[i] = 10, 3
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a = a.MulAdd(c, 0.5)
	}
	_ = a
}

func BenchmarkF64x8_LoadStore(b *testing.B) {
	src := make([]uint8, Lanes)
	dst := make([]uint8, Lanes)
	for i := range src {
		src[i] = uint8(i * 30)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		LoadU8(src).MulAdd(LoadU8(src), -0.25).StoreU8(dst)
	}
}

func benchmarkWeightedSum(b *testing.B, inputs int) {
	const n = 1920 * 4
	srcs := make([][]uint8, inputs)
	weights := make([]float64, inputs)
	for k := range srcs {
		srcs[k] = make([]uint8, n)
		for i := range srcs[k] {
			srcs[k][i] = uint8(i + k*40)
		}
		weights[k] = 1 / float64(inputs)
	}
	dst := make([]uint8, n)

	b.SetBytes(int64(n * inputs))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WeightedSum(dst, srcs, weights)
	}
}

// One 1920px RGBA row per iteration.
func BenchmarkWeightedSum_2(b *testing.B) { benchmarkWeightedSum(b, 2) }
func BenchmarkWeightedSum_3(b *testing.B) { benchmarkWeightedSum(b, 3) }
func BenchmarkWeightedSum_5(b *testing.B) { benchmarkWeightedSum(b, 5) }
