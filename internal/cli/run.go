package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gogpu/morph"
	"github.com/gogpu/morph/internal/job"
	"github.com/gogpu/morph/overlay"
)

// session is the state of one command run.
type session struct {
	log    *log.Logger
	job    *job.Job
	in     []input
	outDir string
	opts   []morph.Option
	start  time.Time
}

// open loads the job and its images and prepares the output directory.
// The returned func releases the worker pool.
func (c *CLI) open(name string) (*session, func(), error) {
	l := c.runLogger(name)
	start := time.Now()

	j, err := job.Load(c.jobPath)
	if err != nil {
		return nil, nil, err
	}
	in, err := loadInputs(j)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(c.outDir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("create output directory: %w", err)
	}
	for i, x := range in {
		l.Debug("loaded image", "index", i, "path", x.path,
			"size", fmt.Sprintf("%dx%d", x.raster.Width, x.raster.Height),
			"channels", x.raster.Channels, "lines", len(x.lines))
	}

	opts, release := c.morphOptions()
	return &session{log: l, job: j, in: in, outDir: c.outDir, opts: opts, start: start}, release, nil
}

// write saves r as a PNG under name in the output directory.
func (s *session) write(name string, r *morph.Raster) error {
	path, err := savePNG(s.outDir, name, r.Image())
	if err != nil {
		return err
	}
	s.log.Info("wrote", "path", path)
	return nil
}

// done logs the total elapsed time.
func (s *session) done(msg string) {
	s.log.Infof("%s (%s)", msg, time.Since(s.start).Round(time.Millisecond))
}

// pair returns the first two inputs, warning when the job has more.
func (s *session) pair() (input, input, error) {
	if err := needInputs(s.in, 2); err != nil {
		return input{}, input{}, err
	}
	if len(s.in) > 2 {
		s.log.Warn("pair command uses the first two images", "images", len(s.in))
	}
	return s.in[0], s.in[1], nil
}

// toFirst returns every input's lines in the pixel space of the first image.
func (s *session) toFirst() []morph.LineSet {
	w0, h0 := s.in[0].raster.Bounds()
	sets := make([]morph.LineSet, len(s.in))
	for i, x := range s.in {
		w, h := x.raster.Bounds()
		sets[i] = morph.ScaleLines(x.lines, float64(w0)/float64(w), float64(h0)/float64(h))
	}
	return sets
}

// drawGrids writes grid_<i>.png for the first n inputs: the input image
// with the grid warped from its own lines to shared, which is given in the
// first image's pixel space, and its feature lines on top.
func (s *session) drawGrids(ctx context.Context, shared morph.LineSet, n int) error {
	w0, h0 := s.in[0].raster.Bounds()
	for i, x := range s.in[:n] {
		w, h := x.raster.Bounds()
		dest := morph.ScaleLines(shared, float64(w)/float64(w0), float64(h)/float64(h0))

		grid := morph.GenerateGrid(w, h, s.job.Grid.Spacing)
		polys, err := morph.WarpGridContext(ctx, grid, x.lines, dest, s.job.MorphParams(), s.job.Grid.Samples, s.opts...)
		if err != nil {
			return fmt.Errorf("grid %d: %w", i, err)
		}

		canvas := overlay.FromRaster(x.raster)
		overlay.DrawPolylines(canvas, polys, overlay.GridStyle(i))
		overlay.DrawLines(canvas, x.lines, overlay.LineStyle)

		path, err := savePNG(s.outDir, fmt.Sprintf("grid_%d.png", i+1), canvas)
		if err != nil {
			return err
		}
		s.log.Info("wrote", "path", path, "grid lines", len(grid))
	}
	return nil
}
