package cli

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/gogpu/morph"
	"github.com/gogpu/morph/internal/job"
	morphimage "github.com/gogpu/morph/internal/image"
)

// input is a decoded job image with its lines in pixel space.
type input struct {
	path   string
	raster *morph.Raster
	lines  morph.LineSet
}

// loadInputs decodes every job image and converts its lines to pixel space.
func loadInputs(j *job.Job) ([]input, error) {
	in := make([]input, len(j.Images))
	for i, img := range j.Images {
		r, err := morph.Load(img.Path)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		in[i] = input{path: img.Path, raster: r, lines: img.LineSet(r.Width, r.Height)}
	}
	return in, nil
}

// needInputs reports an error unless the job has at least n images.
func needInputs(in []input, n int) error {
	if len(in) < n {
		return fmt.Errorf("job has %d images, need at least %d", len(in), n)
	}
	return nil
}

// savePNG writes img to dir/name and returns the full path.
func savePNG(dir, name string, img image.Image) (string, error) {
	path := filepath.Join(dir, name)
	return path, morphimage.SavePNG(path, img)
}

// saveGIF writes frames to dir/name as an animated GIF and returns the full
// path.
func saveGIF(dir, name string, frames []*morph.Raster, delay time.Duration) (string, error) {
	path := filepath.Join(dir, name)
	return path, morph.SaveGIF(path, frames, delay)
}
