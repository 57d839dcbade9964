// Package laminate assembles the bending stiffness of a layered composite
// from its ply material and stacking sequence.
//
// D16 and D26 are computed but the plate solvers only read D11, D12, D22 and
// D66 (specially orthotropic plate). Use [Laminate.CheckCoupling] to find out
// whether that approximation is acceptable for a given layup.
package laminate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultCouplingTolerance is the max(|D16|,|D26|)/D11 ratio above which
// CheckCoupling reports ErrBendTwistCoupling.
const DefaultCouplingTolerance = 0.05

// Layup is an ordered list of ply angles in degrees, bottom ply first.
type Layup struct {
	Angles    []float64 `json:"angles" yaml:"angles"`
	Symmetric bool      `json:"sym" yaml:"sym"`
}

// Sequence returns the full stacking sequence: the angles, followed by
// their reverse when the layup is symmetric.
func (l Layup) Sequence() []float64 {
	seq := make([]float64, 0, 2*len(l.Angles))
	seq = append(seq, l.Angles...)
	if l.Symmetric {
		for i := len(l.Angles) - 1; i >= 0; i-- {
			seq = append(seq, l.Angles[i])
		}
	}
	return seq
}

// Ply is one layer of the stack with its through-thickness bounds.
type Ply struct {
	Angle  float64
	Bottom float64
	Top    float64
}

// Orthotropic holds the bending stiffness terms of a specially orthotropic plate.
type Orthotropic struct {
	D11 float64 `json:"D11"`
	D12 float64 `json:"D12"`
	D22 float64 `json:"D22"`
	D66 float64 `json:"D66"`
}

// Laminate is an assembled stack. It is read-only after New.
type Laminate struct {
	Material  Material
	Sequence  []float64
	Thickness float64
	Z         []float64 // n+1 interface coordinates from -h/2 to h/2
	D         Matrix
}

// New assembles the laminate for layup made of plies of material m.
func New(layup Layup, m Material) (*Laminate, error) {
	if len(layup.Angles) == 0 {
		return nil, fmt.Errorf("%w: layup has no plies", ErrInvalidMaterial)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	seq := layup.Sequence()
	h := float64(len(seq)) * m.PlyThickness
	l := &Laminate{
		Material:  m,
		Sequence:  seq,
		Thickness: h,
		Z:         interfaces(len(seq), h),
	}
	l.D = bendingStiffness(ReducedStiffness(m.Constants), l.plies())
	return l, nil
}

// interfaces returns n+1 evenly spaced coordinates over [-h/2, h/2].
func interfaces(n int, h float64) []float64 {
	z := floats.Span(make([]float64, n+1), -h/2, h/2)
	z[n] = h / 2
	return z
}

// bendingStiffness folds every ply's rotated stiffness, weighted by
// (top^3 - bottom^3)/3, into D.
func bendingStiffness(q Matrix, plies []Ply) Matrix {
	var d Matrix
	for _, p := range plies {
		w := (p.Top*p.Top*p.Top - p.Bottom*p.Bottom*p.Bottom) / 3
		d = d.Add(Rotate(q, p.Angle).Scale(w))
	}
	return d
}

// plies returns the stack as (angle, bottom, top) triples.
func (l *Laminate) plies() []Ply {
	plies := make([]Ply, len(l.Sequence))
	for k, angle := range l.Sequence {
		plies[k] = Ply{Angle: angle, Bottom: l.Z[k], Top: l.Z[k+1]}
	}
	return plies
}

// Orthotropic returns the D terms read by the plate solvers.
func (l *Laminate) Orthotropic() Orthotropic {
	return Orthotropic{
		D11: l.D[0][0],
		D12: l.D[0][1],
		D22: l.D[1][1],
		D66: l.D[2][2],
	}
}

// CouplingRatio is max(|D16|, |D26|) / D11.
func (l *Laminate) CouplingRatio() float64 {
	return math.Max(math.Abs(l.D[0][2]), math.Abs(l.D[1][2])) / l.D[0][0]
}

// CheckCoupling returns ErrBendTwistCoupling when the coupling ratio exceeds tol.
func (l *Laminate) CheckCoupling(tol float64) error {
	if r := l.CouplingRatio(); r > tol {
		return fmt.Errorf("%w: max(|D16|,|D26|)/D11 = %.3f > %.3f", ErrBendTwistCoupling, r, tol)
	}
	return nil
}
