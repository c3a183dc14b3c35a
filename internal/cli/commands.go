package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/morph"
)

// defaultFrameDelay is the GIF frame delay of the sequence command.
const defaultFrameDelay = 200 * time.Millisecond

// alphaFlag registers --alpha on cmd and returns a func that yields the flag
// value when it was set and fallback otherwise.
func alphaFlag(cmd *cobra.Command) func(fallback float64) float64 {
	var alpha float64
	cmd.Flags().Float64Var(&alpha, "alpha", 0.5, "morph position between the two images (overrides the job file)")
	return func(fallback float64) float64 {
		if cmd.Flags().Changed("alpha") {
			return alpha
		}
		return fallback
	}
}

func (c *CLI) warpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warp",
		Short: "Warp two images to their interpolated feature geometry",
		Long:  `Warp the first two images of the job to the line geometry interpolated at alpha and write warped_1.png and warped_2.png. With [grid] show = true the warped grids are written as well.`,
		Args:  cobra.NoArgs,
	}
	alpha := alphaFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.runPair(cmd.Context(), "warp", alpha, false)
	}
	return cmd
}

func (c *CLI) blendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blend",
		Short: "Morph two images: warp both and cross-dissolve",
		Long:  `Warp the first two images of the job to the line geometry interpolated at alpha and blend them at alpha into morph.png.`,
		Args:  cobra.NoArgs,
	}
	alpha := alphaFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.runPair(cmd.Context(), "blend", alpha, true)
	}
	return cmd
}

func (c *CLI) runPair(ctx context.Context, name string, alpha func(float64) float64, blend bool) error {
	s, release, err := c.open(name)
	if err != nil {
		return err
	}
	defer release()

	a, b, err := s.pair()
	if err != nil {
		return err
	}
	t := alpha(s.job.Alpha)
	s.log.Debug("pair morph", "alpha", t, "lines", len(a.lines))

	f, err := morph.MorphPairContext(ctx, a.raster, b.raster, a.lines, b.lines, t, s.job.MorphParams(), s.opts...)
	if err != nil {
		return err
	}

	if blend {
		if err := s.write("morph.png", f.Blend); err != nil {
			return err
		}
	} else {
		for i, w := range f.Warped {
			if err := s.write(fmt.Sprintf("warped_%d.png", i+1), w); err != nil {
				return err
			}
		}
	}

	if s.job.Grid.Show {
		if err := s.drawGrids(ctx, f.Lines, 2); err != nil {
			return err
		}
	}
	s.done(fmt.Sprintf("%s at alpha %.2f", name, t))
	return nil
}

func (c *CLI) mergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge all images of the job with their weights",
		Long:  `Warp every image of the job to the weighted average of all line sets and blend the results with the same weights into merged.png. Each warped input is written as warped_<n>.png.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMerge(cmd.Context())
		},
	}
}

func (c *CLI) runMerge(ctx context.Context) error {
	s, release, err := c.open("merge")
	if err != nil {
		return err
	}
	defer release()

	rasters := make([]*morph.Raster, len(s.in))
	lines := make([]morph.LineSet, len(s.in))
	for i, x := range s.in {
		rasters[i], lines[i] = x.raster, x.lines
	}
	weights := s.job.Weights()
	s.log.Debug("merge", "images", len(rasters), "weights", morph.NormalizeWeights(weights))

	res, err := morph.MergeMultipleContext(ctx, rasters, lines, weights, s.job.MorphParams(), s.opts...)
	if err != nil {
		return err
	}

	if err := s.write("merged.png", res.Merged); err != nil {
		return err
	}
	for i, w := range res.Warped {
		if err := s.write(fmt.Sprintf("warped_%d.png", i+1), w); err != nil {
			return err
		}
	}
	if s.job.Grid.Show {
		if err := s.drawGrids(ctx, res.Shared, len(s.in)); err != nil {
			return err
		}
	}
	s.done(fmt.Sprintf("merged %d images", len(rasters)))
	return nil
}

func (c *CLI) sequenceCommand() *cobra.Command {
	var delay time.Duration
	var steps int
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Render the frames of a morph through all images",
		Long:  `Morph from the first image to the second, then to the third and so on, writing every frame as frame_<n>.png and the whole sequence, played forward and back, as morph.gif.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSequence(cmd.Context(), steps, delay)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "frames per segment (overrides the job file)")
	cmd.Flags().DurationVar(&delay, "delay", defaultFrameDelay, "GIF frame delay")
	return cmd
}

func (c *CLI) runSequence(ctx context.Context, steps int, delay time.Duration) error {
	s, release, err := c.open("sequence")
	if err != nil {
		return err
	}
	defer release()

	if err := needInputs(s.in, 2); err != nil {
		return err
	}
	if steps <= 0 {
		steps = s.job.Steps
	}

	keys := make([]morph.Keyframe, len(s.in))
	for i, x := range s.in {
		keys[i] = morph.Keyframe{Raster: x.raster, Lines: x.lines}
	}
	frames, err := morph.Sequence(ctx, keys, steps, s.job.MorphParams(), s.opts...)
	if err != nil {
		return err
	}

	for i, f := range frames {
		if err := s.write(fmt.Sprintf("frame_%03d.png", i), f.Blend); err != nil {
			return err
		}
	}

	loop := morph.PingPong(frames)
	blends := make([]*morph.Raster, len(loop))
	for i, f := range loop {
		blends[i] = f.Blend
	}
	path, err := saveGIF(s.outDir, "morph.gif", blends, delay)
	if err != nil {
		return err
	}
	s.log.Info("wrote", "path", path, "frames", len(blends))

	s.done(fmt.Sprintf("sequence of %d frames", len(frames)))
	return nil
}

func (c *CLI) gridCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Draw the warped grid of every image",
		Long:  `Draw a regular grid warped by each image's field onto that image, together with its feature lines, as grid_<n>.png. With two images the shared geometry is interpolated at alpha; with more it is the weighted average used by merge.`,
		Args:  cobra.NoArgs,
	}
	alpha := alphaFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.runGrid(cmd.Context(), alpha)
	}
	return cmd
}

func (c *CLI) runGrid(ctx context.Context, alpha func(float64) float64) error {
	s, release, err := c.open("grid")
	if err != nil {
		return err
	}
	defer release()

	weights := s.job.Weights()
	if len(s.in) == 2 {
		weights = morph.PairWeights(alpha(s.job.Alpha))
	}
	shared, err := morph.InterpolateMany(s.toFirst(), weights)
	if err != nil {
		return err
	}
	if err := s.drawGrids(ctx, shared, len(s.in)); err != nil {
		return err
	}
	s.done(fmt.Sprintf("grids for %d images", len(s.in)))
	return nil
}
