package morph

import (
	"errors"
	"math"
	"testing"
)

func TestKernel_IdenticalLinesAreIdentity(t *testing.T) {
	lines := LineSet{Ln(0, 0, 10, 0)}
	k, err := NewKernel(lines, lines, DefaultParams())
	if err != nil {
		t.Fatalf("NewKernel() = %v", err)
	}

	for y := -3; y <= 8; y++ {
		for x := -3; x <= 14; x++ {
			p := Pt(float64(x), float64(y))
			if got := k.SourcePosition(p); !pointNear(got, p, 1e-9) {
				t.Errorf("SourcePosition(%v) = %v, want itself", p, got)
			}
		}
	}
}

func TestKernel_EmptyIsIdentity(t *testing.T) {
	k, err := NewKernel(nil, nil, DefaultParams())
	if err != nil {
		t.Fatalf("NewKernel() = %v", err)
	}
	p := Pt(3.25, -7.5)
	if got := k.SourcePosition(p); got != p {
		t.Errorf("SourcePosition(%v) = %v, want exact identity", p, got)
	}
}

func TestKernel_Translation(t *testing.T) {
	dest := LineSet{Ln(0, 0, 10, 0), Ln(0, 0, 0, 10)}
	src := LineSet{Ln(5, 3, 15, 3), Ln(5, 3, 5, 13)}
	k, err := NewKernel(src, dest, DefaultParams())
	if err != nil {
		t.Fatalf("NewKernel() = %v", err)
	}

	for _, p := range []Point{Pt(0, 0), Pt(4, 7), Pt(-20, 30), Pt(12.5, -1)} {
		want := p.Add(Pt(5, 3))
		if got := k.SourcePosition(p); !pointNear(got, want, 1e-9) {
			t.Errorf("SourcePosition(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestKernel_Rotation(t *testing.T) {
	dest := LineSet{Ln(0, 0, 10, 0)}
	src := LineSet{Ln(0, 0, 0, 10)}

	got, err := WarpPoint(Pt(5, 2), src, dest, DefaultParams())
	if err != nil {
		t.Fatalf("WarpPoint() = %v", err)
	}
	if want := Pt(-2, 5); !pointNear(got, want, 1e-9) {
		t.Errorf("WarpPoint = %v, want %v", got, want)
	}
}

func TestKernel_NearLineDominates(t *testing.T) {
	// Line 0 shifts right by 4, line 1 shifts down by 4.
	dest := LineSet{Ln(0, 0, 10, 0), Ln(0, 100, 10, 100)}
	src := LineSet{Ln(4, 0, 14, 0), Ln(0, 104, 10, 104)}

	got, err := WarpPoint(Pt(5, 1), src, dest, DefaultParams())
	if err != nil {
		t.Fatalf("WarpPoint() = %v", err)
	}
	d := got.Sub(Pt(5, 1))
	if d.X < 3.9 || d.Y > 0.1 {
		t.Errorf("displacement near line 0 = %v, want about (4, 0)", d)
	}
}

func TestKernel_DistanceUsesEndpointsOutsideSegment(t *testing.T) {
	// With b=1, a=1 and two lines the weights are 1/(1+dist). The point
	// (-3, 0) lies on the extension of line 0 but 3 units from its P, so it
	// must not be treated as lying on the line.
	params := Params{A: 1, B: 1, P: 0}
	dest := LineSet{Ln(0, 0, 10, 0), Ln(-3, 3, 7, 3)}
	src := LineSet{Ln(0, 2, 10, 2), Ln(-3, 3, 7, 3)}

	got, err := WarpPoint(Pt(-3, 0), src, dest, params)
	if err != nil {
		t.Fatalf("WarpPoint() = %v", err)
	}
	// w0 = 1/(1+3), D0 = (0, 2); w1 = 1/(1+3), D1 = (0, 0).
	if want := Pt(-3, 1); !pointNear(got, want, 1e-9) {
		t.Errorf("WarpPoint = %v, want %v", got, want)
	}
}

func TestKernel_LengthExponent(t *testing.T) {
	// Equidistant lines; with p=1 the longer line gets twice the weight.
	params := Params{A: 1, B: 1, P: 1}
	dest := LineSet{Ln(0, -1, 10, -1), Ln(0, 1, 20, 1)}
	src := LineSet{Ln(3, -1, 13, -1), Ln(0, 1, 20, 1)}

	got, err := WarpPoint(Pt(5, 0), src, dest, params)
	if err != nil {
		t.Fatalf("WarpPoint() = %v", err)
	}
	// D0 = (3, 0) with weight 10/2, D1 = 0 with weight 20/2.
	if want := Pt(6, 0); !pointNear(got, want, 1e-9) {
		t.Errorf("WarpPoint = %v, want %v", got, want)
	}
}

func TestKernel_DegenerateLines(t *testing.T) {
	t.Run("zero weight is identity", func(t *testing.T) {
		// With p > 0 a zero-length destination line has zero strength.
		params := Params{A: 0.01, B: 2, P: 1}
		lines := LineSet{Ln(4, 4, 4, 4)}
		src := LineSet{Ln(9, 9, 9, 9)}
		p := Pt(1, 2)
		got, err := WarpPoint(p, src, lines, params)
		if err != nil {
			t.Fatalf("WarpPoint() = %v", err)
		}
		if got != p {
			t.Errorf("WarpPoint = %v, want %v", got, p)
		}
	})

	t.Run("degenerate destination maps to source P", func(t *testing.T) {
		got, err := WarpPoint(Pt(1, 2), LineSet{Ln(9, 9, 20, 9)}, LineSet{Ln(4, 4, 4, 4)}, DefaultParams())
		if err != nil {
			t.Fatalf("WarpPoint() = %v", err)
		}
		if !pointNear(got, Pt(9, 9), 1e-9) {
			t.Errorf("WarpPoint = %v, want (9, 9)", got)
		}
	})

	t.Run("degenerate source", func(t *testing.T) {
		got, err := WarpPoint(Pt(1, 2), LineSet{Ln(3, 3, 3, 3)}, LineSet{Ln(0, 0, 10, 0)}, DefaultParams())
		if err != nil {
			t.Fatalf("WarpPoint() = %v", err)
		}
		if !pointNear(got, Pt(3, 3), 1e-9) {
			t.Errorf("WarpPoint = %v, want (3, 3)", got)
		}
	})
}

func TestKernel_ZeroOffsetOnLine(t *testing.T) {
	params := Params{A: 0, B: 2, P: 0}
	dest := LineSet{Ln(0, 0, 10, 0), Ln(0, 10, 10, 10)}
	src := LineSet{Ln(0, 5, 10, 5), Ln(0, 10, 10, 10)}

	got, err := WarpPoint(Pt(5, 0), src, dest, params)
	if err != nil {
		t.Fatalf("WarpPoint() = %v", err)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Fatalf("WarpPoint = %v, want a finite point", got)
	}
	if want := Pt(5, 5); !pointNear(got, want, 1e-12) {
		t.Errorf("WarpPoint = %v, want %v", got, want)
	}
}

func TestNewKernel_Mismatch(t *testing.T) {
	_, err := NewKernel(LineSet{Ln(0, 0, 1, 0)}, LineSet{Ln(0, 0, 1, 0), Ln(0, 1, 1, 1)}, DefaultParams())
	if !errors.Is(err, ErrLineCount) {
		t.Fatalf("err = %v, want ErrLineCount", err)
	}
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("err = %T, want *MismatchError", err)
	}
	if me.Expected != 2 || me.Actual != 1 {
		t.Errorf("Expected/Actual = %d/%d, want 2/1", me.Expected, me.Actual)
	}
}

func BenchmarkKernel_SourcePosition(b *testing.B) {
	src := LineSet{Ln(10, 10, 50, 12), Ln(30, 40, 35, 90), Ln(70, 20, 90, 80), Ln(5, 95, 95, 95)}
	dst := LineSet{Ln(12, 14, 48, 10), Ln(28, 45, 38, 88), Ln(72, 18, 88, 84), Ln(5, 90, 95, 97)}
	k, _ := NewKernel(src, dst, DefaultParams())

	b.ReportAllocs()
	for b.Loop() {
		_ = k.SourcePosition(Pt(42, 17))
	}
}
