package morph

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
)

func TestWarp_EmptyLinesCopies(t *testing.T) {
	src := gradientRaster(13, 9, 4)
	got, err := Warp(src, nil, nil, DefaultParams())
	if err != nil {
		t.Fatalf("Warp() = %v", err)
	}
	if !got.Equal(src) {
		t.Error("Warp with no lines changed the raster")
	}
	if &got.Pix[0] == &src.Pix[0] {
		t.Error("Warp with no lines returned the source buffer")
	}
}

func TestWarp_IdenticalLines(t *testing.T) {
	src := gradientRaster(24, 17, 3)
	lines := LineSet{Ln(2, 3, 20, 4), Ln(10, 1, 12, 15), Ln(5, 14, 19, 12)}

	got, err := Warp(src, lines, lines, DefaultParams())
	if err != nil {
		t.Fatalf("Warp() = %v", err)
	}
	if d := maxPixelDiff(t, got, src); d > 1 {
		t.Errorf("max pixel diff = %d, want <= 1", d)
	}
}

func TestWarp_IdenticalLinesRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	src, err := NewRaster(17, 13, 3)
	if err != nil {
		t.Fatalf("NewRaster() = %v", err)
	}
	for i := range src.Pix {
		src.Pix[i] = uint8(rng.IntN(256))
	}

	sets := []LineSet{
		{Ln(16.20, 10.17, 0.39, 7.09), Ln(0.50, 5.72, 11.86, 0.01)},
	}
	// Endpoints may lie up to 5px outside the raster.
	coord := func(hi int) float64 { return rng.Float64()*float64(hi+10) - 5 }
	for range 60 {
		lines := make(LineSet, 1+rng.IntN(4))
		for i := range lines {
			for {
				lines[i] = Ln(coord(src.Width), coord(src.Height), coord(src.Width), coord(src.Height))
				if lines[i].Length() >= 2 {
					break
				}
			}
		}
		sets = append(sets, lines)
	}

	for _, lines := range sets {
		got, err := Warp(src, lines, lines, DefaultParams())
		if err != nil {
			t.Fatalf("Warp() = %v", err)
		}
		if d := maxPixelDiff(t, got, src); d > 1 {
			t.Fatalf("lines %v: max pixel diff = %d, want <= 1", lines, d)
		}
	}
}

func TestWarp_Translation(t *testing.T) {
	src, err := NewRaster(8, 8, 1)
	if err != nil {
		t.Fatalf("NewRaster() = %v", err)
	}
	for y := range 8 {
		for x := range 8 {
			src.Set(x, y, uint8(x*10))
		}
	}

	dest := LineSet{Ln(0, 0, 7, 0), Ln(0, 0, 0, 7)}
	source := LineSet{Ln(1, 0, 8, 0), Ln(1, 0, 1, 7)}
	got, err := Warp(src, source, dest, DefaultParams())
	if err != nil {
		t.Fatalf("Warp() = %v", err)
	}

	for y := range 8 {
		for x := range 8 {
			want := uint8(min(x+1, 7) * 10)
			if v := got.At(x, y)[0]; v != want {
				t.Errorf("pixel (%d, %d) = %d, want %d", x, y, v, want)
			}
		}
	}
}

func TestWarp_ShapePreserved(t *testing.T) {
	for _, ch := range []int{1, 2, 3, 4} {
		src := gradientRaster(11, 6, ch)
		got, err := Warp(src, LineSet{Ln(0, 0, 5, 5)}, LineSet{Ln(1, 0, 6, 4)}, DefaultParams())
		if err != nil {
			t.Fatalf("channels=%d: Warp() = %v", ch, err)
		}
		if got.Width != 11 || got.Height != 6 || got.Channels != ch || len(got.Pix) != len(src.Pix) {
			t.Errorf("channels=%d: got %dx%dx%d (%d bytes)", ch, got.Width, got.Height, got.Channels, len(got.Pix))
		}
	}
}

func TestWarp_IndependentOfWorkers(t *testing.T) {
	src := gradientRaster(40, 37, 4)
	source := LineSet{Ln(5, 5, 30, 8), Ln(20, 10, 22, 33)}
	dest := LineSet{Ln(7, 9, 33, 6), Ln(15, 12, 25, 30)}

	want, err := Warp(src, source, dest, DefaultParams(), WithWorkers(1))
	if err != nil {
		t.Fatalf("Warp(workers=1) = %v", err)
	}

	pool := NewPool(3)
	defer pool.Close()

	variants := map[string][]Option{
		"default":   nil,
		"workers=7": {WithWorkers(7)},
		"own pool":  {WithPool(pool)},
		"nil pool":  {WithPool(nil), WithWorkers(2)},
	}
	for name, opts := range variants {
		t.Run(name, func(t *testing.T) {
			got, err := Warp(src, source, dest, DefaultParams(), opts...)
			if err != nil {
				t.Fatalf("Warp() = %v", err)
			}
			if !got.Equal(want) {
				t.Error("output differs from single-worker warp")
			}
		})
	}
}

func TestWarp_ClosedPoolStillWorks(t *testing.T) {
	src := gradientRaster(16, 16, 1)
	lines := LineSet{Ln(0, 0, 15, 15)}

	pool := NewPool(2)
	pool.Close()

	got, err := Warp(src, lines, LineSet{Ln(1, 0, 15, 14)}, DefaultParams(), WithPool(pool))
	if err != nil {
		t.Fatalf("Warp() = %v", err)
	}
	want, _ := Warp(src, lines, LineSet{Ln(1, 0, 15, 14)}, DefaultParams())
	if !got.Equal(want) {
		t.Error("closed pool produced a different result")
	}
}

func TestWarpContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := gradientRaster(32, 32, 3)
	lines := LineSet{Ln(0, 0, 10, 10)}
	for _, set := range []LineSet{lines, nil} {
		got, err := WarpContext(ctx, src, set, set, DefaultParams())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("lines=%d: err = %v, want context.Canceled", len(set), err)
		}
		if got != nil {
			t.Errorf("lines=%d: got a raster from a cancelled warp", len(set))
		}
	}
}

func TestWarp_Errors(t *testing.T) {
	src := gradientRaster(4, 4, 1)

	if _, err := Warp(nil, nil, nil, DefaultParams()); !errors.Is(err, ErrNilRaster) {
		t.Errorf("nil raster: err = %v, want ErrNilRaster", err)
	}

	_, err := Warp(src, LineSet{Ln(0, 0, 1, 1)}, nil, DefaultParams())
	if !errors.Is(err, ErrLineCount) {
		t.Errorf("mismatch: err = %v, want ErrLineCount", err)
	}
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("mismatch: err = %T, want *MismatchError", err)
	}
	if me.Op != "NewKernel" {
		t.Errorf("Op = %q, want NewKernel", me.Op)
	}
}

func BenchmarkWarp(b *testing.B) {
	src := gradientRaster(256, 256, 4)
	source := LineSet{Ln(40, 40, 200, 50), Ln(120, 60, 130, 220), Ln(30, 230, 220, 220)}
	dest := LineSet{Ln(50, 45, 210, 40), Ln(110, 70, 140, 210), Ln(20, 220, 230, 235)}

	b.ReportAllocs()
	b.SetBytes(int64(len(src.Pix)))
	for b.Loop() {
		if _, err := Warp(src, source, dest, DefaultParams()); err != nil {
			b.Fatal(err)
		}
	}
}
