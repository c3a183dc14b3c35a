package morph

// Epsilon is the length below which a line is treated as degenerate.
const Epsilon = 1e-6

// Line is a directed feature segment from P to Q.
// P and Q may coincide; such a line is degenerate but legal.
type Line struct {
	P, Q Point
}

// Ln is a convenience function to create a Line from four coordinates.
func Ln(px, py, qx, qy float64) Line {
	return Line{P: Pt(px, py), Q: Pt(qx, qy)}
}

// Vector returns Q - P.
func (l Line) Vector() Point {
	return l.Q.Sub(l.P)
}

// Length returns |Q - P|.
func (l Line) Length() float64 {
	return l.Vector().Length()
}

// Degenerate reports whether the line is shorter than Epsilon.
func (l Line) Degenerate() bool {
	return l.Length() < Epsilon
}

// LineSet is an ordered sequence of lines. Two sets correspond index by index.
type LineSet []Line

// Clone returns a copy of the set.
func (s LineSet) Clone() LineSet {
	if s == nil {
		return nil
	}
	out := make(LineSet, len(s))
	copy(out, s)
	return out
}

// PointToUV returns the coordinates of x relative to the line p->q.
//
// u is the fractional projection of x onto the line: 0 at p, 1 at q and
// extrapolated outside [0, 1]. v is the signed perpendicular distance, positive
// on the side of perp(q-p) = (-dy, dx). A degenerate line yields (0, 0).
func PointToUV(x, p, q Point) (u, v float64) {
	d := q.Sub(p)
	length := d.Length()
	if length < Epsilon {
		return 0, 0
	}
	xp := x.Sub(p)
	u = xp.Dot(d) / (length * length)
	v = xp.Dot(d.Perp()) / length
	return u, v
}

// UVToPoint is the inverse of PointToUV for the line p->q:
// p + u*(q-p) + v*perp(q-p)/|q-p|. A degenerate line returns p.
func UVToPoint(u, v float64, p, q Point) Point {
	d := q.Sub(p)
	length := d.Length()
	if length < Epsilon {
		return p
	}
	return p.Add(d.Mul(u)).Add(d.Perp().Mul(v / length))
}

// Interpolate returns the line set (1-alpha)*a + alpha*b, computed
// componentwise on every endpoint. alpha is not clamped.
//
// alpha=0 reproduces a and alpha=1 reproduces b exactly; Interpolate(l, l, t)
// reproduces l for every t.
func Interpolate(a, b LineSet, alpha float64) (LineSet, error) {
	if len(a) != len(b) {
		return nil, mismatch("Interpolate", "lines", len(a), len(b), ErrLineCount)
	}
	out := make(LineSet, len(a))
	for i := range a {
		out[i] = Line{
			P: a[i].P.Lerp(b[i].P, alpha),
			Q: a[i].Q.Lerp(b[i].Q, alpha),
		}
	}
	return out, nil
}

// InterpolateMany returns the barycentric combination of several line sets:
// out[i] = sum_k w[k]*sets[k][i] for P and Q independently, with weights
// normalized by NormalizeWeights.
func InterpolateMany(sets []LineSet, weights []float64) (LineSet, error) {
	if len(sets) == 0 {
		return nil, mismatch("InterpolateMany", "line sets", 1, 0, ErrEmptyInput)
	}
	if len(weights) != len(sets) {
		return nil, mismatch("InterpolateMany", "weights", len(sets), len(weights), ErrInputCount)
	}
	n := len(sets[0])
	for _, s := range sets[1:] {
		if len(s) != n {
			return nil, mismatch("InterpolateMany", "lines", n, len(s), ErrLineCount)
		}
	}

	w := NormalizeWeights(weights)
	out := make(LineSet, n)
	for i := range n {
		var l Line
		for k, s := range sets {
			l.P = l.P.Add(s[i].P.Mul(w[k]))
			l.Q = l.Q.Add(s[i].Q.Mul(w[k]))
		}
		out[i] = l
	}
	return out, nil
}

// ScaleLines returns a copy of lines with x coordinates multiplied by sx and
// y coordinates by sy. It maps a line set between rasters (or a canvas and a
// raster) of different sizes.
func ScaleLines(lines LineSet, sx, sy float64) LineSet {
	if lines == nil {
		return nil
	}
	out := make(LineSet, len(lines))
	for i, l := range lines {
		out[i] = Line{
			P: Point{X: l.P.X * sx, Y: l.P.Y * sy},
			Q: Point{X: l.Q.X * sx, Y: l.Q.Y * sy},
		}
	}
	return out
}
