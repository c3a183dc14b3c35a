package morph

import (
	"errors"
	"fmt"
)

// Contract violations. Every error returned by the core for malformed input
// wraps one of these, usually inside a *MismatchError.
var (
	// ErrLineCount is returned when two line sets that must correspond
	// index by index have different lengths.
	ErrLineCount = errors.New("morph: line set length mismatch")

	// ErrInputCount is returned when the parallel sequences of an N-way
	// operation (rasters, line sets, weights) have different lengths.
	ErrInputCount = errors.New("morph: input count mismatch")

	// ErrEmptyInput is returned when an N-way operation receives no inputs.
	ErrEmptyInput = errors.New("morph: empty input")

	// ErrSizeMismatch is returned when rasters that must share dimensions
	// or channel layout do not.
	ErrSizeMismatch = errors.New("morph: raster size mismatch")

	// ErrNilRaster is returned when a required raster is nil.
	ErrNilRaster = errors.New("morph: nil raster")

	// ErrInvalidRaster is returned by NewRaster and FromPix for
	// non-positive dimensions or an unsupported channel count.
	ErrInvalidRaster = errors.New("morph: invalid raster dimensions")

	// ErrInvalidParams is returned by Params.Validate.
	ErrInvalidParams = errors.New("morph: invalid warp parameters")
)

// MismatchError reports a contract violation together with the offending
// counts. Unwrap returns the sentinel (ErrLineCount, ErrInputCount,
// ErrEmptyInput or ErrSizeMismatch) so callers can use errors.Is.
type MismatchError struct {
	// Op is the operation that rejected its input, e.g. "Warp".
	Op string

	// What names the mismatched quantity, e.g. "destination lines".
	What string

	// Expected and Actual are the counts or sizes that disagree.
	Expected int
	Actual   int

	// Err is the sentinel describing the violation.
	Err error
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %v: %s: expected %d, got %d", e.Op, e.Err, e.What, e.Expected, e.Actual)
}

func (e *MismatchError) Unwrap() error { return e.Err }

func mismatch(op, what string, expected, actual int, sentinel error) error {
	return &MismatchError{Op: op, What: what, Expected: expected, Actual: actual, Err: sentinel}
}

// checkLinePair verifies that source and destination line sets correspond.
func checkLinePair(op string, sourceLines, destLines LineSet) error {
	if len(sourceLines) != len(destLines) {
		return mismatch(op, "source lines", len(destLines), len(sourceLines), ErrLineCount)
	}
	return nil
}

// checkSameShape verifies that b can be combined pixel for pixel with a.
func checkSameShape(op string, a, b *Raster) error {
	if a.Width != b.Width {
		return mismatch(op, "raster width", a.Width, b.Width, ErrSizeMismatch)
	}
	if a.Height != b.Height {
		return mismatch(op, "raster height", a.Height, b.Height, ErrSizeMismatch)
	}
	if a.Channels != b.Channels {
		return mismatch(op, "raster channels", a.Channels, b.Channels, ErrSizeMismatch)
	}
	return nil
}
