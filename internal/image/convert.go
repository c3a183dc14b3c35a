package image

import (
	"image"
	"image/color"
)

// Convert returns a copy of pix re-encoded from one layout to another.
// Color to gray uses the same luma weights as image/color.GrayModel;
// missing alpha becomes opaque and dropped alpha is discarded.
func Convert(pix []uint8, width, height int, from, to Format) []uint8 {
	n := width * height
	out := make([]uint8, to.ImageBytes(width, height))
	if from == to {
		copy(out, pix)
		return out
	}

	fc, tc := from.Channels(), to.Channels()
	for i := range n {
		r, g, b, a := unpack(pix[i*fc:i*fc+fc], from)
		pack(out[i*tc:i*tc+tc], to, r, g, b, a)
	}
	return out
}

func unpack(px []uint8, f Format) (r, g, b, a uint8) {
	switch f {
	case FormatGray8:
		return px[0], px[0], px[0], 0xff
	case FormatGrayAlpha8:
		return px[0], px[0], px[0], px[1]
	case FormatRGB8:
		return px[0], px[1], px[2], 0xff
	default:
		return px[0], px[1], px[2], px[3]
	}
}

func pack(px []uint8, f Format, r, g, b, a uint8) {
	switch f {
	case FormatGray8:
		px[0] = luma(r, g, b)
	case FormatGrayAlpha8:
		px[0] = luma(r, g, b)
		px[1] = a
	case FormatRGB8:
		px[0], px[1], px[2] = r, g, b
	default:
		px[0], px[1], px[2], px[3] = r, g, b, a
	}
}

// luma matches color.GrayModel for 8-bit inputs.
func luma(r, g, b uint8) uint8 {
	y := (19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16
	return uint8(y)
}

// ToImage wraps a copy of pix in a standard library image.
// Gray8 becomes *image.Gray; every other layout becomes *image.NRGBA.
func ToImage(pix []uint8, width, height int, f Format) image.Image {
	rect := image.Rect(0, 0, width, height)
	if f == FormatGray8 {
		img := image.NewGray(rect)
		copy(img.Pix, pix)
		return img
	}
	img := image.NewNRGBA(rect)
	if f == FormatRGBA8 {
		copy(img.Pix, pix)
	} else {
		copy(img.Pix, Convert(pix, width, height, f, FormatRGBA8))
	}
	return img
}

// FromImage decodes any image.Image into a tightly packed buffer.
// *image.Gray keeps a single channel; everything else becomes RGBA8 with
// straight alpha.
func FromImage(img image.Image) (pix []uint8, width, height int, f Format) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		pix = make([]uint8, width*height)
		for y := range height {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix[y*width:], src.Pix[off:off+width])
		}
		return pix, width, height, FormatGray8

	case *image.NRGBA:
		pix = make([]uint8, width*height*4)
		for y := range height {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix[y*width*4:], src.Pix[off:off+width*4])
		}
		return pix, width, height, FormatRGBA8
	}

	pix = make([]uint8, width*height*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix[i+0] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
			i += 4
		}
	}
	return pix, width, height, FormatRGBA8
}
