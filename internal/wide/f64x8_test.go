package wide

import (
	"math"
	"testing"
)

func TestF64x8_MulAdd(t *testing.T) {
	a := F64x8{1, 2, 3, 4, 5, 6, 7, 8}
	b := F64x8{2, 2, 2, 2, 2, 2, 2, 2}
	if got, want := b.MulAdd(a, 10), (F64x8{12, 22, 32, 42, 52, 62, 72, 82}); got != want {
		t.Errorf("MulAdd = %v, want %v", got, want)
	}
}

func TestF64x8_StoreU8Clamps(t *testing.T) {
	v := F64x8{-5, 0, 100.4, 255, 300, 1.5, 2.49, 254.5}
	want := []uint8{0, 0, 100, 255, 255, 2, 2, 255}
	dst := make([]uint8, Lanes)
	v.StoreU8(dst)
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("StoreU8 = %v, want %v", dst, want)
		}
	}
}

func TestToU8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{-3, 0},
		{0.49, 0},
		{0.5, 1},
		{15.5, 16},
		{254.4, 254},
		{254.5, 255},
		{1000, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}

	for _, tt := range tests {
		if got := ToU8(tt.in); got != tt.want {
			t.Errorf("ToU8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoadStoreU8(t *testing.T) {
	src := []uint8{0, 1, 2, 3, 250, 251, 252, 255}
	dst := make([]uint8, 8)
	LoadU8(src).StoreU8(dst)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("round trip = %v, want %v", dst, src)
		}
	}
}
