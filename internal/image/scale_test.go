package image

import "testing"

func TestResize_SameSizeCopies(t *testing.T) {
	pix := []uint8{1, 2, 3, 4}
	out := Resize(pix, 2, 2, FormatGray8, 2, 2)
	out[0] = 50
	if pix[0] != 1 {
		t.Error("Resize to the same size must not alias its input")
	}
}

func TestResize_Dimensions(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"gray", FormatGray8},
		{"gray-alpha", FormatGrayAlpha8},
		{"rgb", FormatRGB8},
		{"rgba", FormatRGBA8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := make([]uint8, tt.format.ImageBytes(8, 4))
			out := Resize(pix, 8, 4, tt.format, 4, 6)
			if want := tt.format.ImageBytes(4, 6); len(out) != want {
				t.Errorf("len = %d, want %d", len(out), want)
			}
		})
	}
}

func TestResize_SolidColorPreserved(t *testing.T) {
	pix := make([]uint8, FormatRGB8.ImageBytes(6, 6))
	for i := 0; i < len(pix); i += 3 {
		pix[i], pix[i+1], pix[i+2] = 40, 120, 220
	}

	out := Resize(pix, 6, 6, FormatRGB8, 3, 9)
	for i := 0; i < len(out); i += 3 {
		if out[i] != 40 || out[i+1] != 120 || out[i+2] != 220 {
			t.Fatalf("pixel %d = %v, want [40 120 220]", i/3, out[i:i+3])
		}
	}
}

func TestScaleFactors(t *testing.T) {
	sx, sy := ScaleFactors(100, 50, 200, 25)
	if sx != 2 || sy != 0.5 {
		t.Errorf("ScaleFactors = (%v, %v), want (2, 0.5)", sx, sy)
	}
}
