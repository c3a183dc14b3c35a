package morph

import (
	"context"
	"fmt"
)

// Frame is one intermediate image of a two-image morph.
type Frame struct {
	// Alpha is the morph position: 0 is the first image, 1 the second.
	Alpha float64

	// Warped holds both inputs warped to Lines.
	Warped [2]*Raster

	// Blend is (1-Alpha)*Warped[0] + Alpha*Warped[1].
	Blend *Raster

	// Lines is the interpolated geometry both inputs were warped to.
	Lines LineSet
}

// Keyframe is an image together with its feature lines.
type Keyframe struct {
	Raster *Raster
	Lines  LineSet
}

// MorphPair is MorphPairContext with context.Background().
func MorphPair(a, b *Raster, linesA, linesB LineSet, alpha float64, params Params, opts ...Option) (*Frame, error) {
	return MorphPairContext(context.Background(), a, b, linesA, linesB, alpha, params, opts...)
}

// MorphPairContext computes the morph between a and b at alpha.
//
// b is brought to a's size and channel layout as in MergeMultiple, the
// geometry is Interpolate(linesA, linesB, alpha), both images are warped to
// it and the results are blended with Blend at alpha.
func MorphPairContext(ctx context.Context, a, b *Raster, linesA, linesB LineSet, alpha float64, params Params, opts ...Option) (*Frame, error) {
	if a == nil || b == nil {
		return nil, ErrNilRaster
	}
	if len(linesA) != len(linesB) {
		return nil, mismatch("MorphPair", "lines", len(linesA), len(linesB), ErrLineCount)
	}

	sources, lines, err := conform([]*Raster{a, b}, []LineSet{linesA, linesB})
	if err != nil {
		return nil, err
	}
	return morphConformed(ctx, sources, lines, alpha, params, opts)
}

func morphConformed(ctx context.Context, sources []*Raster, lines []LineSet, alpha float64, params Params, opts []Option) (*Frame, error) {
	shared, err := Interpolate(lines[0], lines[1], alpha)
	if err != nil {
		return nil, err
	}

	f := &Frame{Alpha: alpha, Lines: shared}
	for i := range 2 {
		f.Warped[i], err = WarpContext(ctx, sources[i], lines[i], shared, params, opts...)
		if err != nil {
			return nil, err
		}
	}

	f.Blend, err = Blend(f.Warped[0], f.Warped[1], alpha)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// AlphaSteps returns n+1 evenly spaced values from 0 to 1 inclusive.
// n < 1 is treated as 1. AlphaSteps(10) is 0, 0.1, ..., 1.
func AlphaSteps(n int) []float64 {
	n = max(n, 1)
	steps := make([]float64, n+1)
	for i := range steps {
		steps[i] = float64(i) / float64(n)
	}
	return steps
}

// Sequence computes the frames of a morph through consecutive keyframes:
// 1 to 2, then 2 to 3, and so on, each segment sampled at
// AlphaSteps(stepsPerSegment). The frame shared by two segments appears once.
//
// All keyframes must have the same number of lines. Each keyframe is brought
// to the first keyframe's size. ctx is checked between warps.
func Sequence(ctx context.Context, keyframes []Keyframe, stepsPerSegment int, params Params, opts ...Option) ([]*Frame, error) {
	if len(keyframes) < 2 {
		return nil, mismatch("Sequence", "keyframes", 2, len(keyframes), ErrEmptyInput)
	}

	rasters := make([]*Raster, len(keyframes))
	lineSets := make([]LineSet, len(keyframes))
	for i, kf := range keyframes {
		if kf.Raster == nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, ErrNilRaster)
		}
		if len(kf.Lines) != len(keyframes[0].Lines) {
			return nil, mismatch("Sequence", "lines", len(keyframes[0].Lines), len(kf.Lines), ErrLineCount)
		}
		rasters[i], lineSets[i] = kf.Raster, kf.Lines
	}

	sources, lines, err := conform(rasters, lineSets)
	if err != nil {
		return nil, err
	}

	alphas := AlphaSteps(stepsPerSegment)
	var frames []*Frame
	for seg := 0; seg+1 < len(sources); seg++ {
		pair := sources[seg : seg+2]
		pairLines := lines[seg : seg+2]
		for j, alpha := range alphas {
			if seg > 0 && j == 0 {
				continue
			}
			f, err := morphConformed(ctx, pair, pairLines, alpha, params, opts)
			if err != nil {
				return nil, fmt.Errorf("segment %d, alpha %.3f: %w", seg, alpha, err)
			}
			frames = append(frames, f)
		}
		Logger().Debug("morph: sequence segment", "segment", seg, "frames", len(frames))
	}
	return frames, nil
}

// PingPong returns frames followed by the same frames in reverse, without
// repeating either end, for looped playback.
func PingPong(frames []*Frame) []*Frame {
	if len(frames) < 3 {
		return frames
	}
	out := make([]*Frame, 0, 2*len(frames)-2)
	out = append(out, frames...)
	for i := len(frames) - 2; i > 0; i-- {
		out = append(out, frames[i])
	}
	return out
}
