package morph

import (
	"math"
	"testing"
)

// gradientRaster returns a raster whose channel c at (x, y) is
// (x*17 + y*29 + c*53) mod 256.
func gradientRaster(w, h, channels int) *Raster {
	r, err := NewRaster(w, h, channels)
	if err != nil {
		panic(err)
	}
	for y := range h {
		for x := range w {
			px := r.At(x, y)
			for c := range px {
				px[c] = uint8((x*17 + y*29 + c*53) % 256)
			}
		}
	}
	return r
}

func solidRaster(t *testing.T, w, h int, c ...uint8) *Raster {
	t.Helper()
	r, err := NewRaster(w, h, len(c))
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	r.Fill(c...)
	return r
}

// maxPixelDiff returns the largest per-channel absolute difference.
func maxPixelDiff(t *testing.T, a, b *Raster) int {
	t.Helper()
	if a.Width != b.Width || a.Height != b.Height || a.Channels != b.Channels {
		t.Fatalf("shape mismatch: %dx%dx%d vs %dx%dx%d",
			a.Width, a.Height, a.Channels, b.Width, b.Height, b.Channels)
	}
	worst := 0
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}

func pointNear(p, q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}
