package morph

import (
	"image"
	"time"

	morphimage "github.com/gogpu/morph/internal/image"
)

// Raster is a width x height grid of 8-bit pixels with 1 to 4 channels,
// stored row-major without padding.
//
// Channel layouts: 1 = gray, 2 = gray+alpha, 3 = RGB, 4 = RGBA (straight alpha).
// Every channel is treated as an independent linear value; no operation in
// this package is colorspace aware.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height, channels int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidRaster
	}
	if _, ok := morphimage.FormatFor(channels); !ok {
		return nil, ErrInvalidRaster
	}
	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// FromPix wraps an existing buffer without copying.
// len(pix) must be exactly width*height*channels.
func FromPix(pix []uint8, width, height, channels int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidRaster
	}
	if _, ok := morphimage.FormatFor(channels); !ok {
		return nil, ErrInvalidRaster
	}
	if len(pix) != width*height*channels {
		return nil, mismatch("FromPix", "pixel bytes", width*height*channels, len(pix), ErrSizeMismatch)
	}
	return &Raster{Width: width, Height: height, Channels: channels, Pix: pix}, nil
}

// FromImage copies an image.Image into a raster.
// *image.Gray becomes a 1-channel raster; everything else becomes RGBA.
func FromImage(img image.Image) *Raster {
	pix, w, h, f := morphimage.FromImage(img)
	return &Raster{Width: w, Height: h, Channels: f.Channels(), Pix: pix}
}

// Image returns a copy of the raster as *image.Gray (1 channel) or
// *image.NRGBA (2 to 4 channels).
func (r *Raster) Image() image.Image {
	return morphimage.ToImage(r.Pix, r.Width, r.Height, r.format())
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Channels: r.Channels, Pix: pix}
}

// Bounds returns the raster dimensions as (width, height).
func (r *Raster) Bounds() (int, int) {
	return r.Width, r.Height
}

// PixelOffset returns the byte offset of pixel (x, y).
// Returns -1 if coordinates are out of bounds.
func (r *Raster) PixelOffset(x, y int) int {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return -1
	}
	return (y*r.Width + x) * r.Channels
}

// At returns the channel values of pixel (x, y), or nil when out of bounds.
// The returned slice aliases the raster.
func (r *Raster) At(x, y int) []uint8 {
	i := r.PixelOffset(x, y)
	if i < 0 {
		return nil
	}
	return r.Pix[i : i+r.Channels]
}

// Set copies c into pixel (x, y). Out-of-bounds writes are ignored.
func (r *Raster) Set(x, y int, c ...uint8) {
	i := r.PixelOffset(x, y)
	if i < 0 {
		return
	}
	copy(r.Pix[i:i+r.Channels], c)
}

// Fill sets every pixel to c.
func (r *Raster) Fill(c ...uint8) {
	for i := 0; i < len(r.Pix); i += r.Channels {
		copy(r.Pix[i:i+r.Channels], c)
	}
}

// Equal reports whether two rasters have the same shape and pixels.
func (r *Raster) Equal(o *Raster) bool {
	if r.Width != o.Width || r.Height != o.Height || r.Channels != o.Channels {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Resize returns a copy scaled to width x height with the Catmull-Rom kernel.
func (r *Raster) Resize(width, height int) *Raster {
	pix := morphimage.Resize(r.Pix, r.Width, r.Height, r.format(), width, height)
	return &Raster{Width: width, Height: height, Channels: r.Channels, Pix: pix}
}

// Convert returns a copy re-encoded with the given channel count.
// It returns ErrInvalidRaster for counts outside 1..4.
func (r *Raster) Convert(channels int) (*Raster, error) {
	to, ok := morphimage.FormatFor(channels)
	if !ok {
		return nil, ErrInvalidRaster
	}
	pix := morphimage.Convert(r.Pix, r.Width, r.Height, r.format(), to)
	return &Raster{Width: r.Width, Height: r.Height, Channels: channels, Pix: pix}, nil
}

// Load decodes an image file into a raster. PNG, JPEG, GIF, BMP, TIFF and
// WebP are supported; grayscale images load as 1-channel rasters, everything
// else as RGBA.
func Load(path string) (*Raster, error) {
	pix, w, h, f, err := morphimage.Load(path)
	if err != nil {
		return nil, err
	}
	return &Raster{Width: w, Height: h, Channels: f.Channels(), Pix: pix}, nil
}

// SavePNG writes the raster to a PNG file.
func (r *Raster) SavePNG(path string) error {
	return morphimage.SavePNG(path, r.Image())
}

// SaveGIF writes frames as a looping animated GIF, showing each frame for
// delay (rounded down to hundredths of a second). Colors are reduced to the
// Plan 9 palette with Floyd-Steinberg dithering.
func SaveGIF(path string, frames []*Raster, delay time.Duration) error {
	imgs := make([]image.Image, len(frames))
	for i, f := range frames {
		imgs[i] = f.Image()
	}
	return morphimage.SaveGIF(path, imgs, int(delay/(10*time.Millisecond)))
}

func (r *Raster) format() morphimage.Format {
	f, _ := morphimage.FormatFor(r.Channels)
	return f
}
