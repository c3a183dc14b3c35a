// Package overlay draws feature lines and warped grids on top of images.
//
// Shapes are filled with golang.org/x/image/vector into an alpha mask and
// composited with golang.org/x/image/draw; labels use the fixed 7x13 face
// from golang.org/x/image/font/basicfont.
package overlay

import (
	"image"
	"image/color"
	"math"
	"strconv"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/morph"
)

// Style describes how a set of strokes is drawn.
type Style struct {
	Color color.NRGBA
	Width float64
}

// Default colors.
var (
	Red     = color.NRGBA{R: 255, A: 255}
	Yellow  = color.NRGBA{R: 255, G: 255, A: 255}
	Green   = color.NRGBA{G: 128, A: 255}
	Blue    = color.NRGBA{B: 255, A: 255}
	Cyan    = color.NRGBA{G: 255, B: 255, A: 255}
	Lime    = color.NRGBA{G: 255, A: 255}
	Magenta = color.NRGBA{R: 255, B: 255, A: 255}
)

// GridColors cycles through the colors used for the grids of successive
// input images.
var GridColors = []color.NRGBA{Cyan, Yellow, Lime, Magenta}

// LineStyle is the default style for feature lines.
var LineStyle = Style{Color: Red, Width: 2}

// GridStyle returns the default grid style for input image i.
func GridStyle(i int) Style {
	return Style{Color: GridColors[i%len(GridColors)], Width: 1}
}

// Arrow head and endpoint marker geometry, in pixels.
const (
	arrowLength    = 10
	arrowHalfWidth = 5
	markerRadius   = 3
	markerSides    = 12
	labelOffset    = 10
)

// FromRaster returns a copy of r as *image.NRGBA, ready to draw on.
func FromRaster(r *morph.Raster) *image.NRGBA {
	img := r.Image()
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	xdraw.Draw(dst, b, img, b.Min, xdraw.Src)
	return dst
}

// DrawPolylines strokes every polyline with the given style.
func DrawPolylines(dst *image.NRGBA, polys []morph.Polyline, s Style) {
	p := newPen(dst)
	for _, pl := range polys {
		for i := 1; i < len(pl); i++ {
			p.segment(pl[i-1], pl[i], s.Width)
		}
	}
	p.flush(s.Color)
}

// DrawLines draws each feature line as an arrow from P to Q, marks P in
// green and Q in blue, and labels the line with its index above its
// midpoint.
func DrawLines(dst *image.NRGBA, lines morph.LineSet, s Style) {
	p := newPen(dst)
	for _, l := range lines {
		p.segment(l.P, l.Q, s.Width)
		p.arrowHead(l)
	}
	p.flush(s.Color)

	for _, l := range lines {
		p.marker(l.P)
	}
	p.flush(Green)
	for _, l := range lines {
		p.marker(l.Q)
	}
	p.flush(Blue)

	for i, l := range lines {
		mid := l.P.Lerp(l.Q, 0.5)
		drawLabel(dst, strconv.Itoa(i+1), mid.X, mid.Y-labelOffset, Yellow)
	}
}

func drawLabel(dst *image.NRGBA, text string, cx, cy float64, c color.NRGBA) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text)
	m := face.Metrics()

	// (cx, cy) is the center of the text box.
	x := fixed.Int26_6(cx*64) - w/2
	y := fixed.Int26_6(cy*64) + (m.Ascent-m.Descent)/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(text)
}

// pen accumulates filled polygons in one rasterizer and composites them in a
// single color on flush. Every polygon is emitted with the same winding so
// that overlaps never cancel.
type pen struct {
	dst    *image.NRGBA
	origin morph.Point
	z      *vector.Rasterizer
	empty  bool
}

func newPen(dst *image.NRGBA) *pen {
	b := dst.Bounds()
	return &pen{
		dst:    dst,
		origin: morph.Pt(float64(b.Min.X), float64(b.Min.Y)),
		z:      vector.NewRasterizer(b.Dx(), b.Dy()),
		empty:  true,
	}
}

// segment adds a stroke of the given width from a to b.
func (p *pen) segment(a, b morph.Point, width float64) {
	half := math.Max(width, 0.5) / 2
	d := b.Sub(a)
	l := d.Length()
	if l < morph.Epsilon {
		p.polygon(
			a.Add(morph.Pt(-half, -half)), a.Add(morph.Pt(half, -half)),
			a.Add(morph.Pt(half, half)), a.Add(morph.Pt(-half, half)),
		)
		return
	}
	n := d.Perp().Mul(half / l)
	p.polygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

// arrowHead adds a triangle whose tip is l.Q.
func (p *pen) arrowHead(l morph.Line) {
	d := l.Vector()
	length := d.Length()
	if length < morph.Epsilon {
		return
	}
	u := d.Mul(1 / length)
	base := l.Q.Sub(u.Mul(arrowLength))
	n := u.Perp().Mul(arrowHalfWidth)
	p.polygon(l.Q, base.Add(n), base.Sub(n))
}

// marker adds a small filled disc centered on c.
func (p *pen) marker(c morph.Point) {
	pts := make([]morph.Point, markerSides)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / markerSides
		pts[i] = c.Add(morph.Pt(markerRadius*math.Cos(a), markerRadius*math.Sin(a)))
	}
	p.polygon(pts...)
}

func (p *pen) polygon(pts ...morph.Point) {
	if len(pts) < 3 {
		return
	}
	if signedArea(pts) > 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	for i, pt := range pts {
		pt = pt.Sub(p.origin)
		if i == 0 {
			p.z.MoveTo(float32(pt.X), float32(pt.Y))
		} else {
			p.z.LineTo(float32(pt.X), float32(pt.Y))
		}
	}
	p.z.ClosePath()
	p.empty = false
}

// flush composites the accumulated shapes onto dst in color c and resets
// the rasterizer.
func (p *pen) flush(c color.NRGBA) {
	if p.empty {
		return
	}
	b := p.dst.Bounds()
	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	p.z.DrawOp = xdraw.Src
	p.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	xdraw.DrawMask(p.dst, b, image.NewUniform(c), image.Point{}, mask, image.Point{}, xdraw.Over)

	p.z.Reset(b.Dx(), b.Dy())
	p.empty = true
}

func signedArea(pts []morph.Point) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}
