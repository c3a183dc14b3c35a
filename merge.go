package morph

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	morphimage "github.com/gogpu/morph/internal/image"
)

// MergeResult holds the outputs of MergeMultiple.
type MergeResult struct {
	// Merged is the weighted blend of the warped rasters.
	Merged *Raster

	// Warped holds each input raster warped to the shared geometry,
	// in input order and at the first raster's size.
	Warped []*Raster

	// Shared is the weighted average of the (rescaled) input line sets.
	Shared LineSet
}

// MergeMultiple is MergeMultipleContext with context.Background().
func MergeMultiple(rasters []*Raster, lineSets []LineSet, weights []float64, params Params, opts ...Option) (*MergeResult, error) {
	return MergeMultipleContext(context.Background(), rasters, lineSets, weights, params, opts...)
}

// MergeMultipleContext warps N rasters to a shared geometry and blends them.
//
//  1. rasters, lineSets and weights must have the same non-zero length, and
//     every line set the same number of lines.
//  2. Weights are normalized with NormalizeWeights.
//  3. The first raster defines the output size and channel layout. Every other
//     raster is converted to that layout, resized with Catmull-Rom, and its
//     lines are scaled by the same per-axis factors.
//  4. The shared geometry is InterpolateMany(lineSets, weights).
//  5. Each raster is warped from its own lines to the shared lines; the warps
//     run concurrently and the first failure cancels the rest.
//  6. The warped rasters are combined with BlendMany.
//
// With a single raster the result is Warp(r, l, l), which reproduces r up to
// bilinear rounding.
func MergeMultipleContext(ctx context.Context, rasters []*Raster, lineSets []LineSet, weights []float64, params Params, opts ...Option) (*MergeResult, error) {
	if len(rasters) == 0 {
		return nil, mismatch("MergeMultiple", "rasters", 1, 0, ErrEmptyInput)
	}
	if len(lineSets) != len(rasters) {
		return nil, mismatch("MergeMultiple", "line sets", len(rasters), len(lineSets), ErrInputCount)
	}
	if len(weights) != len(rasters) {
		return nil, mismatch("MergeMultiple", "weights", len(rasters), len(weights), ErrInputCount)
	}
	for _, r := range rasters {
		if r == nil {
			return nil, ErrNilRaster
		}
	}
	for _, s := range lineSets[1:] {
		if len(s) != len(lineSets[0]) {
			return nil, mismatch("MergeMultiple", "lines", len(lineSets[0]), len(s), ErrLineCount)
		}
	}

	start := time.Now()
	w := NormalizeWeights(weights)

	sources, lines, err := conform(rasters, lineSets)
	if err != nil {
		return nil, err
	}

	shared, err := InterpolateMany(lines, w)
	if err != nil {
		return nil, err
	}

	warped := make([]*Raster, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i := range sources {
		g.Go(func() error {
			out, err := WarpContext(gctx, sources[i], lines[i], shared, params, opts...)
			if err != nil {
				return err
			}
			warped[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged, err := BlendMany(warped, w)
	if err != nil {
		return nil, err
	}

	Logger().Debug("morph: merge",
		"rasters", len(rasters), "lines", len(shared),
		"width", merged.Width, "height", merged.Height,
		"elapsed", time.Since(start))
	return &MergeResult{Merged: merged, Warped: warped, Shared: shared}, nil
}

// conform brings every raster to the first raster's size and channel layout
// and rescales the matching line sets. The first raster and its lines are
// passed through untouched.
func conform(rasters []*Raster, lineSets []LineSet) ([]*Raster, []LineSet, error) {
	target := rasters[0]
	sources := make([]*Raster, len(rasters))
	lines := make([]LineSet, len(rasters))
	sources[0], lines[0] = target, lineSets[0]

	for i := 1; i < len(rasters); i++ {
		r, l := rasters[i], lineSets[i]
		if r.Channels != target.Channels {
			Logger().Warn("morph: converting channel layout",
				"index", i, "from", r.format(), "to", target.format())
			conv, err := r.Convert(target.Channels)
			if err != nil {
				return nil, nil, err
			}
			r = conv
		}
		if r.Width != target.Width || r.Height != target.Height {
			sx, sy := morphimage.ScaleFactors(r.Width, r.Height, target.Width, target.Height)
			Logger().Debug("morph: resizing",
				"index", i, "from", [2]int{r.Width, r.Height},
				"to", [2]int{target.Width, target.Height})
			r = r.Resize(target.Width, target.Height)
			l = ScaleLines(l, sx, sy)
		}
		sources[i], lines[i] = r, l
	}
	return sources, lines, nil
}
