package morph

import (
	"context"

	"github.com/gogpu/morph/internal/parallel"
)

// Grid visualization defaults.
const (
	DefaultGridSpacing = 30
	DefaultGridSamples = 20
)

// Polyline is an ordered list of points.
type Polyline []Point

// GenerateGrid returns horizontal lines at y = 0, spacing, 2*spacing, ... <= height
// spanning x in [0, width], followed by vertical lines at x = 0, spacing, ... <= width
// spanning y in [0, height]. A non-positive spacing yields an empty set.
//
// The result is meant for WarpGrid; it is never used to warp a raster.
func GenerateGrid(width, height int, spacing float64) LineSet {
	if !(spacing > 0) || width < 0 || height < 0 {
		return LineSet{}
	}
	w, h := float64(width), float64(height)

	var grid LineSet
	for i := 0; float64(i)*spacing <= h; i++ {
		y := float64(i) * spacing
		grid = append(grid, Line{P: Pt(0, y), Q: Pt(w, y)})
	}
	for i := 0; float64(i)*spacing <= w; i++ {
		x := float64(i) * spacing
		grid = append(grid, Line{P: Pt(x, 0), Q: Pt(x, h)})
	}
	return grid
}

// WarpGrid is WarpGridContext with context.Background().
func WarpGrid(grid, sourceLines, destLines LineSet, params Params, samplesPerLine int, opts ...Option) ([]Polyline, error) {
	return WarpGridContext(context.Background(), grid, sourceLines, destLines, params, samplesPerLine, opts...)
}

// WarpGridContext samples samplesPerLine+1 evenly spaced points along every
// grid line and maps each through the same field Warp uses for
// (sourceLines, destLines). The polylines show where Warp would fetch pixels
// from along the grid. samplesPerLine < 1 is treated as 1.
func WarpGridContext(ctx context.Context, grid, sourceLines, destLines LineSet, params Params, samplesPerLine int, opts ...Option) ([]Polyline, error) {
	k, err := NewKernel(sourceLines, destLines, params)
	if err != nil {
		return nil, err
	}
	samplesPerLine = max(samplesPerLine, 1)

	out := make([]Polyline, len(grid))
	o := applyOptions(opts)
	chunks := parallel.Chunks(len(grid), o.workers)
	tasks := make([]func(), len(chunks))
	for i, c := range chunks {
		tasks[i] = func() {
			for j := c.Y0; j < c.Y1; j++ {
				out[j] = warpPolyline(k, grid[j], samplesPerLine)
			}
		}
	}
	if err := o.pool.Run(ctx, tasks); err != nil {
		return nil, err
	}
	return out, nil
}

func warpPolyline(k *Kernel, l Line, samples int) Polyline {
	pl := make(Polyline, samples+1)
	for j := range pl {
		t := float64(j) / float64(samples)
		pl[j] = k.SourcePosition(l.P.Lerp(l.Q, t))
	}
	return pl
}
