package image

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Input formats. GIF and PNG register through the imports above.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"
)

// ErrEmptyData is returned when image data is empty.
var ErrEmptyData = errors.New("image: empty data")

// Load decodes the image file at path. PNG, JPEG, GIF, BMP, TIFF and WebP
// are recognized from the content.
func Load(path string) (pix []uint8, width, height int, f Format, err error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Decode decodes an image in any registered format into a packed buffer
// (see FromImage for the resulting layout).
func Decode(r io.Reader) (pix []uint8, width, height int, f Format, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("image: decode: %w", err)
	}
	pix, width, height, f = FromImage(img)
	return pix, width, height, f, nil
}

// EncodePNG writes an image to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes an image to path as PNG.
func SavePNG(path string, img image.Image) error {
	return save(path, func(w io.Writer) error { return EncodePNG(w, img) })
}

// EncodeGIF writes frames to w as a looping animated GIF with delay
// hundredths of a second per frame. Frames are dithered onto the Plan 9
// palette with Floyd-Steinberg error diffusion.
func EncodeGIF(w io.Writer, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return ErrEmptyData
	}
	anim := &gif.GIF{
		Image: make([]*image.Paletted, len(frames)),
		Delay: make([]int, len(frames)),
	}
	for i, src := range frames {
		b := src.Bounds()
		pm := image.NewPaletted(b, palette.Plan9)
		xdraw.FloydSteinberg.Draw(pm, b, src, b.Min)
		anim.Image[i] = pm
		anim.Delay[i] = delay
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("image: encode GIF: %w", err)
	}
	return nil
}

// SaveGIF writes frames to path as an animated GIF (see EncodeGIF).
func SaveGIF(path string, frames []image.Image, delay int) error {
	return save(path, func(w io.Writer) error { return EncodeGIF(w, frames, delay) })
}

func save(path string, encode func(io.Writer) error) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
