package morph

import "math"

// Kernel evaluates the multi-line field warp for one pair of corresponding
// line sets.
//
// For a destination point X and each line i, X is expressed in (u, v)
// coordinates relative to destination line i and mapped back through source
// line i, giving a displacement D_i. The displacements are averaged with
// weights length_i^p / (a + dist_i)^b, where dist_i is the distance from X to
// the destination segment. The result is the position in the source raster
// that X samples from.
//
// Per-line constants are precomputed into flat slices so that evaluating a
// point allocates nothing. A Kernel is immutable and safe for concurrent use.
type Kernel struct {
	n int

	// Destination lines.
	px, py   []float64 // P
	qx, qy   []float64 // Q
	dx, dy   []float64 // Q - P
	invLenSq []float64 // 1/|Q-P|^2, 0 for degenerate lines
	invLen   []float64 // 1/|Q-P|, 0 for degenerate lines
	strength []float64 // |Q-P|^p
	degen    []bool

	// Source lines.
	spx, spy []float64 // P'
	sdx, sdy []float64 // Q' - P'
	snx, sny []float64 // perp(Q'-P') / |Q'-P'|, 0 for degenerate lines
	sdegen   []bool

	a, b float64
}

// NewKernel precomputes a kernel that maps destination positions (relative to
// destLines) to source positions (relative to sourceLines).
// The sets must have equal length.
func NewKernel(sourceLines, destLines LineSet, params Params) (*Kernel, error) {
	if err := checkLinePair("NewKernel", sourceLines, destLines); err != nil {
		return nil, err
	}

	n := len(destLines)
	buf := make([]float64, 15*n)
	next := func() []float64 {
		s := buf[:n:n]
		buf = buf[n:]
		return s
	}

	k := &Kernel{
		n:        n,
		px:       next(),
		py:       next(),
		qx:       next(),
		qy:       next(),
		dx:       next(),
		dy:       next(),
		invLenSq: next(),
		invLen:   next(),
		strength: next(),
		spx:      next(),
		spy:      next(),
		sdx:      next(),
		sdy:      next(),
		snx:      next(),
		sny:      next(),
		degen:    make([]bool, n),
		sdegen:   make([]bool, n),
		a:        params.A,
		b:        params.B,
	}

	for i, l := range destLines {
		d := l.Vector()
		length := d.Length()
		k.px[i], k.py[i] = l.P.X, l.P.Y
		k.qx[i], k.qy[i] = l.Q.X, l.Q.Y
		k.dx[i], k.dy[i] = d.X, d.Y
		k.strength[i] = pow(length, params.P)
		if length < Epsilon {
			k.degen[i] = true
			continue
		}
		k.invLenSq[i] = 1 / (length * length)
		k.invLen[i] = 1 / length
	}

	for i, l := range sourceLines {
		d := l.Vector()
		length := d.Length()
		k.spx[i], k.spy[i] = l.P.X, l.P.Y
		k.sdx[i], k.sdy[i] = d.X, d.Y
		if length < Epsilon {
			k.sdegen[i] = true
			continue
		}
		k.snx[i] = -d.Y / length
		k.sny[i] = d.X / length
	}

	return k, nil
}

// Len returns the number of line pairs.
func (k *Kernel) Len() int {
	return k.n
}

// SourcePosition returns the source-raster position sampled for destination
// point x. With no lines, or when every weight is zero, it returns x.
func (k *Kernel) SourcePosition(x Point) Point {
	sx, sy := k.source(x.X, x.Y)
	return Point{X: sx, Y: sy}
}

// source is the allocation-free core of SourcePosition.
func (k *Kernel) source(x, y float64) (float64, float64) {
	if k.n == 0 {
		return x, y
	}

	var sumX, sumY, weightSum float64
	for i := range k.n {
		var u, v float64
		ex, ey := x-k.px[i], y-k.py[i]
		if !k.degen[i] {
			u = (ex*k.dx[i] + ey*k.dy[i]) * k.invLenSq[i]
			v = (ey*k.dx[i] - ex*k.dy[i]) * k.invLen[i]
		}

		// X'_i through the source line.
		xi, yi := k.spx[i], k.spy[i]
		if !k.sdegen[i] {
			xi += u*k.sdx[i] + v*k.snx[i]
			yi += u*k.sdy[i] + v*k.sny[i]
		}
		ddx, ddy := xi-x, yi-y

		var dist float64
		switch {
		case k.degen[i] || u < 0:
			dist = math.Hypot(ex, ey)
		case u > 1:
			dist = math.Hypot(x-k.qx[i], y-k.qy[i])
		default:
			dist = math.Abs(v)
		}

		w := k.strength[i] / pow(k.a+dist, k.b)
		if math.IsInf(w, 1) {
			// X lies on line i with a == 0: that line alone decides.
			return xi, yi
		}
		sumX += w * ddx
		sumY += w * ddy
		weightSum += w
	}

	if !(weightSum > 0) || math.IsInf(weightSum, 1) {
		return x, y
	}
	return x + sumX/weightSum, y + sumY/weightSum
}

// pow is math.Pow with the common integer exponents of the warp unrolled.
func pow(x, e float64) float64 {
	switch e {
	case 0:
		return 1
	case 1:
		return x
	case 2:
		return x * x
	default:
		return math.Pow(x, e)
	}
}

// WarpPoint maps a single destination point through the field defined by
// the two line sets. It is the stateless form of NewKernel + SourcePosition.
func WarpPoint(x Point, sourceLines, destLines LineSet, params Params) (Point, error) {
	k, err := NewKernel(sourceLines, destLines, params)
	if err != nil {
		return Point{}, err
	}
	return k.SourcePosition(x), nil
}
