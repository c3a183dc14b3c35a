package wide

// WeightedSum writes round(sum_k weights[k]*srcs[k][i]) to dst[i] for every
// i, clamped to [0, 255]. All srcs must be at least len(dst) long and
// len(weights) must equal len(srcs).
//
// The bulk of dst is processed 8 values at a time; the tail uses the same
// arithmetic in scalar form, so results do not depend on alignment.
func WeightedSum(dst []uint8, srcs [][]uint8, weights []float64) {
	n := len(dst)
	i := 0
	for ; i+Lanes <= n; i += Lanes {
		var acc F64x8
		for k, src := range srcs {
			acc = acc.MulAdd(LoadU8(src[i:i+Lanes]), weights[k])
		}
		acc.StoreU8(dst[i : i+Lanes])
	}
	for ; i < n; i++ {
		var acc float64
		for k, src := range srcs {
			acc += float64(src[i]) * weights[k]
		}
		dst[i] = ToU8(acc)
	}
}
