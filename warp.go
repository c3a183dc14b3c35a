package morph

import (
	"context"
	"time"

	"github.com/gogpu/morph/internal/parallel"
)

// Warp resamples src so that features along sourceLines move to destLines.
// It is WarpContext with context.Background().
func Warp(src *Raster, sourceLines, destLines LineSet, params Params, opts ...Option) (*Raster, error) {
	return WarpContext(context.Background(), src, sourceLines, destLines, params, opts...)
}

// WarpContext resamples src so that features along sourceLines move to
// destLines. The output has the size and channel layout of src.
//
// Every output pixel (x, y) is mapped through the field warp Kernel to a
// source position and filled by SampleInto. An empty destLines yields an
// exact copy of src.
//
// Rows are split into bands that run on the worker pool; ctx is checked
// before each band starts. If ctx is cancelled WarpContext returns ctx.Err()
// and no raster. The result does not depend on the number of workers.
func WarpContext(ctx context.Context, src *Raster, sourceLines, destLines LineSet, params Params, opts ...Option) (*Raster, error) {
	if src == nil {
		return nil, ErrNilRaster
	}
	k, err := NewKernel(sourceLines, destLines, params)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k.Len() == 0 {
		return src.Clone(), nil
	}

	o := applyOptions(opts)
	out := &Raster{
		Width:    src.Width,
		Height:   src.Height,
		Channels: src.Channels,
		Pix:      make([]uint8, len(src.Pix)),
	}

	start := time.Now()
	bands := parallel.Bands(src.Height, o.workers)
	tasks := make([]func(), len(bands))
	for i, b := range bands {
		tasks[i] = func() { warpRows(out, src, k, b) }
	}
	if err := o.pool.Run(ctx, tasks); err != nil {
		return nil, err
	}

	Logger().Debug("morph: warp",
		"width", src.Width, "height", src.Height,
		"lines", k.Len(), "bands", len(bands),
		"elapsed", time.Since(start))
	return out, nil
}

// warpRows fills rows [b.Y0, b.Y1) of out.
func warpRows(out, src *Raster, k *Kernel, b parallel.Band) {
	c := out.Channels
	for y := b.Y0; y < b.Y1; y++ {
		i := y * out.Width * c
		fy := float64(y)
		for x := range out.Width {
			sx, sy := k.source(float64(x), fy)
			SampleInto(out.Pix[i:i+c], src, sx, sy)
			i += c
		}
	}
}
