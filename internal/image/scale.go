package image

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Resize scales pix to dw x dh with the Catmull-Rom kernel and returns a new
// buffer in the same layout. Equal sizes return a plain copy.
func Resize(pix []uint8, width, height int, f Format, dw, dh int) []uint8 {
	if width == dw && height == dh {
		out := make([]uint8, len(pix))
		copy(out, pix)
		return out
	}

	src := ToImage(pix, width, height, f)
	rect := image.Rect(0, 0, dw, dh)

	if f == FormatGray8 {
		dst := image.NewGray(rect)
		xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), xdraw.Src, nil)
		return dst.Pix
	}

	dst := image.NewNRGBA(rect)
	xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), xdraw.Src, nil)
	if f == FormatRGBA8 {
		return dst.Pix
	}
	return Convert(dst.Pix, dw, dh, FormatRGBA8, f)
}

// ScaleFactors returns the per-axis factors that map coordinates in a
// width x height raster onto a dw x dh raster.
func ScaleFactors(width, height, dw, dh int) (sx, sy float64) {
	return float64(dw) / float64(width), float64(dh) / float64(height)
}
