// Package morph implements feature-based image morphing with the multi-line
// field warp of Beier and Neely.
//
// # Overview
//
// Corresponding feature lines are drawn on two or more images. Line i of one
// LineSet corresponds to line i of every other LineSet; there are no IDs. For
// every output pixel the warp combines the influence of all line pairs into a
// single source position, samples the source image there, and so moves the
// features of one image onto the geometry of another. Warped images are then
// cross-dissolved.
//
// # Quick Start
//
//	import "github.com/gogpu/morph"
//
//	a := morph.FromImage(imgA)
//	b := morph.FromImage(imgB)
//	linesA := morph.LineSet{morph.Ln(30, 40, 90, 40), morph.Ln(60, 60, 60, 110)}
//	linesB := morph.LineSet{morph.Ln(35, 50, 95, 45), morph.Ln(62, 70, 58, 115)}
//
//	// Halfway morph
//	frame, err := morph.MorphPair(a, b, linesA, linesB, 0.5, morph.DefaultParams())
//
//	// Three-way merge with barycentric weights
//	res, err := morph.MergeMultiple(
//	    []*morph.Raster{a, b, c},
//	    []morph.LineSet{linesA, linesB, linesC},
//	    []float64{0.5, 0.25, 0.25},
//	    morph.DefaultParams(),
//	)
//
// # Building Blocks
//
//   - PointToUV / UVToPoint: line-relative coordinates
//   - Kernel: the multi-line displacement field
//   - Sample: clamped bilinear resampling
//   - Warp: the field applied to a whole raster, in parallel row bands
//   - Interpolate / InterpolateMany: pairwise and barycentric line sets
//   - Blend / BlendMany: pairwise and barycentric per-channel blends
//   - GenerateGrid / WarpGrid: polylines visualizing the field
//   - MergeMultiple: shared geometry, per-source warp and blend
//
// # Coordinate System
//
// Lines are given in the pixel space of the raster they belong to:
//   - Origin (0,0) at the center of the top-left pixel
//   - X increases right
//   - Y increases down
//
// Converting from a display canvas is the caller's job (see ScaleLines).
//
// # Errors
//
// Mismatched line-set lengths, mismatched input counts and empty inputs are
// reported as *MismatchError. Degenerate lines, empty line sets, zero-sum
// weights and out-of-bounds sampling are handled silently with documented
// fallbacks.
package morph
