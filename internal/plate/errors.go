package plate

import "errors"

var (
	// ErrUnsupportedMethod indicates a bending solution method that is not implemented.
	ErrUnsupportedMethod = errors.New("plate: unsupported bending method")

	// ErrNumericDegeneracy indicates a zero or non-finite denominator,
	// usually from a plate dimension of zero.
	ErrNumericDegeneracy = errors.New("plate: degenerate geometry or stiffness")

	// ErrInvalidMode indicates mode numbers below 1, or series and scan
	// limits outside their allowed range.
	ErrInvalidMode = errors.New("plate: mode numbers out of range")
)
