package laminate

import "errors"

var (
	// ErrInvalidMaterial covers a non-positive stiffness denominator,
	// a non-positive ply thickness and an empty layup.
	ErrInvalidMaterial = errors.New("laminate: invalid material input")

	// ErrBendTwistCoupling is a warning: D16 or D26 is large enough that the
	// specially orthotropic solvers are only an approximation.
	ErrBendTwistCoupling = errors.New("laminate: bend-twist coupling not negligible")
)
