// Package plate solves a rectangular composite plate simply supported on all
// four edges: Navier series deflection under uniform pressure and the
// closed-form uniaxial buckling load.
//
// Both solvers treat the laminate as specially orthotropic and ignore D16 and
// D26. Results for layups with significant bend-twist coupling are
// approximations; see laminate.Laminate.CheckCoupling.
package plate

import (
	"fmt"

	"Orthos/internal/laminate"
)

// Plate is a rectangular laminated plate. It is read-only after New and safe
// for concurrent use.
type Plate struct {
	Length   float64 // a, along x (m)
	Width    float64 // b, along y (m)
	Laminate *laminate.Laminate
}

// New builds a plate and assembles its bending stiffness.
func New(length, width float64, layup laminate.Layup, m laminate.Material) (*Plate, error) {
	if err := checkDims(length, width); err != nil {
		return nil, err
	}
	lam, err := laminate.New(layup, m)
	if err != nil {
		return nil, err
	}
	return &Plate{Length: length, Width: width, Laminate: lam}, nil
}

// Stiffness returns D11, D12, D22 and D66 of the plate's laminate.
func (p *Plate) Stiffness() laminate.Orthotropic {
	return p.Laminate.Orthotropic()
}

// Bend solves the deflection field under uniform pressure q0 (Pa).
func (p *Plate) Bend(q0 float64, opts Options) (*Field, error) {
	return SolveBending(p.Stiffness(), p.Length, p.Width, q0, opts)
}

// CriticalLoad evaluates the buckling load of mode (m, n) for this plate.
func (p *Plate) CriticalLoad(m, n int) (float64, error) {
	return CriticalLoad(p.Stiffness(), p.Length, p.Width, m, n)
}

func checkDims(a, b float64) error {
	if !(a > 0) || !(b > 0) {
		return fmt.Errorf("%w: plate dimensions must be positive (a=%g, b=%g)", ErrNumericDegeneracy, a, b)
	}
	return nil
}
