package morph

import (
	"fmt"
	"math"
)

// Params are the tuning constants of the multi-line warp.
//
// The weight of line i at point X is length^P / (A + dist)^B.
type Params struct {
	// A is added to the distance so that points on a line do not receive
	// infinite weight. Smaller values give more precise control.
	A float64

	// B is the distance falloff exponent. Larger values make a line's
	// influence more local.
	B float64

	// P is the line-length exponent. 0 makes every line equally strong;
	// larger values favor long lines.
	P float64
}

// DefaultParams returns a=0.01, b=2, p=0.
func DefaultParams() Params {
	return Params{A: 0.01, B: 2, P: 0}
}

// Validate reports parameters the warp cannot use meaningfully: non-finite
// values, A <= 0, B < 0 or P < 0. The warp functions do not call Validate;
// front ends should.
func (p Params) Validate() error {
	for _, v := range []float64{p.A, p.B, p.P} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidParams, p)
		}
	}
	switch {
	case p.A <= 0:
		return fmt.Errorf("%w: a must be positive, got %v", ErrInvalidParams, p.A)
	case p.B < 0:
		return fmt.Errorf("%w: b must not be negative, got %v", ErrInvalidParams, p.B)
	case p.P < 0:
		return fmt.Errorf("%w: p must not be negative, got %v", ErrInvalidParams, p.P)
	}
	return nil
}
