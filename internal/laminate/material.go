package laminate

import (
	"fmt"
	"math"
)

// Default carbon/epoxy ply.
const (
	DefaultE1           = 140e9
	DefaultE2           = 10e9
	DefaultG12          = 5e9
	DefaultNu12         = 0.3
	DefaultPlyThickness = 0.000125 // m
)

// Constants are the engineering constants of a unidirectional ply (Pa).
type Constants struct {
	E1   float64 `json:"E1" yaml:"e1"`
	E2   float64 `json:"E2" yaml:"e2"`
	G12  float64 `json:"G12" yaml:"g12"`
	Nu12 float64 `json:"nu12" yaml:"nu12"`
}

// Nu21 is the minor Poisson's ratio.
func (c Constants) Nu21() float64 {
	return c.Nu12 * c.E2 / c.E1
}

// Validate reports constants for which the reduced stiffness is undefined.
// Physical plausibility of the moduli is not checked.
func (c Constants) Validate() error {
	if c.E1 <= 0 || c.E2 <= 0 || c.G12 <= 0 {
		return fmt.Errorf("%w: moduli must be positive (E1=%g, E2=%g, G12=%g)", ErrInvalidMaterial, c.E1, c.E2, c.G12)
	}
	if denom := 1 - c.Nu12*c.Nu21(); denom <= 0 || math.IsNaN(denom) {
		return fmt.Errorf("%w: nu12*nu21 = %g must be below 1", ErrInvalidMaterial, c.Nu12*c.Nu21())
	}
	return nil
}

// Material is a ply material: constants plus the cured ply thickness.
type Material struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Constants    `yaml:",inline"`
	PlyThickness float64 `json:"ply_thickness" yaml:"ply_thickness"`
}

// DefaultMaterial returns the carbon/epoxy ply used when no material is given.
func DefaultMaterial() Material {
	return Material{
		Name: "carbon-epoxy",
		Constants: Constants{
			E1:   DefaultE1,
			E2:   DefaultE2,
			G12:  DefaultG12,
			Nu12: DefaultNu12,
		},
		PlyThickness: DefaultPlyThickness,
	}
}

// Validate checks the constants and the ply thickness.
func (m Material) Validate() error {
	if err := m.Constants.Validate(); err != nil {
		return err
	}
	if !(m.PlyThickness > 0) || math.IsInf(m.PlyThickness, 1) {
		return fmt.Errorf("%w: ply thickness must be positive and finite, got %g", ErrInvalidMaterial, m.PlyThickness)
	}
	return nil
}

// ReducedStiffness builds the plane-stress stiffness Q of a ply in its
// material axes. The denominator is not guarded: constants with
// nu12*nu21 >= 1 give Inf, NaN or negative entries.
func ReducedStiffness(c Constants) Matrix {
	denom := 1 - c.Nu12*c.Nu21()
	q11 := c.E1 / denom
	q22 := c.E2 / denom
	q12 := c.Nu12 * c.E2 / denom
	return Matrix{
		{q11, q12, 0},
		{q12, q22, 0},
		{0, 0, c.G12},
	}
}
