// Package job loads and validates the TOML job files the morph command runs.
//
// A job names the input images together with their feature lines, the warp
// parameters and the settings of the individual commands:
//
//	steps = 10   # frames per segment for "sequence"
//	alpha = 0.5  # morph position for "warp" and "blend"
//
//	[params]
//	a = 0.01
//	b = 2.0
//	p = 0.0
//
//	[grid]
//	spacing = 30
//	samples = 20
//	show = true
//
//	[[image]]
//	path = "face1.png"
//	weight = 1.0
//	canvas = [400, 300]  # optional: lines are in canvas space
//	lines = [[120, 80, 180, 80], [150, 100, 150, 160]]
//
// Relative image paths are resolved against the directory of the job file.
// Unknown keys are rejected.
package job

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/morph"
)

// Defaults for settings a job file may omit.
const (
	DefaultSteps = 10
	DefaultAlpha = 0.5
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("job: invalid job file")

// Job is a decoded job file.
type Job struct {
	Steps  int          `toml:"steps"`
	Alpha  float64      `toml:"alpha"`
	Params ParamsConfig `toml:"params"`
	Grid   GridConfig   `toml:"grid"`
	Images []Image      `toml:"image"`
}

// ParamsConfig holds the warp constants.
type ParamsConfig struct {
	A float64 `toml:"a"`
	B float64 `toml:"b"`
	P float64 `toml:"p"`
}

// GridConfig controls the warped grid visualization.
type GridConfig struct {
	Spacing float64 `toml:"spacing"`
	Samples int     `toml:"samples"`
	Show    bool    `toml:"show"`
}

// Image is one input image and its feature lines.
type Image struct {
	Path string `toml:"path"`

	// Weight is the merge weight. A missing weight counts as 1.
	Weight *float64 `toml:"weight"`

	// Canvas, when set, is the [width, height] of the surface the lines were
	// drawn on. Lines are then rescaled to the image size on use.
	Canvas []int `toml:"canvas"`

	// Lines are [px, py, qx, qy] quadruples.
	Lines [][]float64 `toml:"lines"`
}

// defaults returns a job with every optional setting filled in.
func defaults() Job {
	p := morph.DefaultParams()
	return Job{
		Steps:  DefaultSteps,
		Alpha:  DefaultAlpha,
		Params: ParamsConfig{A: p.A, B: p.B, P: p.P},
		Grid: GridConfig{
			Spacing: morph.DefaultGridSpacing,
			Samples: morph.DefaultGridSamples,
		},
	}
}

// Load reads, decodes and validates the job file at path.
func Load(path string) (*Job, error) {
	j := defaults()
	md, err := toml.DecodeFile(path, &j)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := finish(&j, md, filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &j, nil
}

// Parse decodes and validates a job held in memory. Relative image paths are
// resolved against dir.
func Parse(data, dir string) (*Job, error) {
	j := defaults()
	md, err := toml.Decode(data, &j)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := finish(&j, md, dir); err != nil {
		return nil, err
	}
	return &j, nil
}

func finish(j *Job, md toml.MetaData, dir string) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys: %s", ErrInvalid, strings.Join(keys, ", "))
	}
	for i := range j.Images {
		if p := j.Images[i].Path; p != "" && !filepath.IsAbs(p) {
			j.Images[i].Path = filepath.Join(dir, p)
		}
	}
	return j.Validate()
}

// Validate checks the job for settings no command can run with.
func (j *Job) Validate() error {
	if err := j.MorphParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if j.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalid, j.Steps)
	}
	if math.IsNaN(j.Alpha) || math.IsInf(j.Alpha, 0) {
		return fmt.Errorf("%w: alpha must be finite", ErrInvalid)
	}
	if !(j.Grid.Spacing > 0) {
		return fmt.Errorf("%w: grid spacing must be positive, got %v", ErrInvalid, j.Grid.Spacing)
	}
	if j.Grid.Samples < 1 {
		return fmt.Errorf("%w: grid samples must be at least 1, got %d", ErrInvalid, j.Grid.Samples)
	}
	if len(j.Images) == 0 {
		return fmt.Errorf("%w: no [[image]] entries", ErrInvalid)
	}

	for i, img := range j.Images {
		if img.Path == "" {
			return fmt.Errorf("%w: image %d: missing path", ErrInvalid, i)
		}
		if w := img.Weight; w != nil && (*w < 0 || math.IsNaN(*w) || math.IsInf(*w, 0)) {
			return fmt.Errorf("%w: image %d: weight must be finite and non-negative, got %v", ErrInvalid, i, *w)
		}
		if c := img.Canvas; c != nil && (len(c) != 2 || c[0] <= 0 || c[1] <= 0) {
			return fmt.Errorf("%w: image %d: canvas must be [width, height] with positive values, got %v", ErrInvalid, i, c)
		}
		for k, l := range img.Lines {
			if len(l) != 4 {
				return fmt.Errorf("%w: image %d: line %d: want [px, py, qx, qy], got %d values", ErrInvalid, i, k, len(l))
			}
			for _, v := range l {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("%w: image %d: line %d: non-finite coordinate", ErrInvalid, i, k)
				}
			}
		}
		if len(img.Lines) != len(j.Images[0].Lines) {
			return fmt.Errorf("%w: image %d has %d lines, image 0 has %d",
				ErrInvalid, i, len(img.Lines), len(j.Images[0].Lines))
		}
	}
	return nil
}

// MorphParams returns the warp constants.
func (j *Job) MorphParams() morph.Params {
	return morph.Params{A: j.Params.A, B: j.Params.B, P: j.Params.P}
}

// Weights returns the merge weight of every image.
func (j *Job) Weights() []float64 {
	w := make([]float64, len(j.Images))
	for i, img := range j.Images {
		w[i] = img.weight()
	}
	return w
}

func (img Image) weight() float64 {
	if img.Weight == nil {
		return 1
	}
	return *img.Weight
}

// LineSet returns the image's lines in the pixel space of a width x height
// raster, rescaling from the canvas when one is set.
func (img Image) LineSet(width, height int) morph.LineSet {
	lines := make(morph.LineSet, len(img.Lines))
	for i, l := range img.Lines {
		lines[i] = morph.Ln(l[0], l[1], l[2], l[3])
	}
	if len(img.Canvas) == 2 {
		sx := float64(width) / float64(img.Canvas[0])
		sy := float64(height) / float64(img.Canvas[1])
		lines = morph.ScaleLines(lines, sx, sy)
	}
	return lines
}
