// Package image converts, resizes, decodes and encodes the tightly packed
// 8-bit pixel buffers used by morph rasters.
//
// Buffers are plain []uint8 slices of width*height*channels bytes with no
// row padding. The package knows four layouts, identified by channel count.
package image

// Format represents a tightly packed 8-bit pixel layout.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatGrayAlpha8 is 8-bit grayscale followed by straight alpha (2 bytes per pixel).
	FormatGrayAlpha8

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit RGBA with straight (non-premultiplied) alpha.
	// This is the layout produced when decoding arbitrary images.
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatFor returns the format with the given channel count.
// ok is false for counts outside 1..4.
func FormatFor(channels int) (f Format, ok bool) {
	if channels < 1 || channels > int(formatCount) {
		return 0, false
	}
	return Format(channels - 1), true
}

// Channels returns the number of bytes per pixel, or 0 for an unknown format.
func (f Format) Channels() int {
	if f >= formatCount {
		return 0
	}
	return int(f) + 1
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return width * height * f.Channels()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatGrayAlpha8:
		return "GrayAlpha8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}
