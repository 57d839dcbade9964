package micromech

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"Orthos/internal/calc"
	"Orthos/internal/laminate"
)

const (
	DefaultXi     = 2.0
	DefaultVfMax  = 0.7
	DefaultPoints = 100
	MaxPoints     = 10000
)

// Input describes fibre and matrix. The Poisson's ratios and shear moduli
// are optional; with them G12 and nu12 are reported too. A missing shear
// modulus is derived from E and nu of an isotropic constituent.
type Input struct {
	Ef  float64  `json:"Ef"`
	Em  float64  `json:"Em"`
	Vf  float64  `json:"vf"`
	Xi  *float64 `json:"xi,omitempty"`
	NuF float64  `json:"nu_f,omitempty"`
	NuM float64  `json:"nu_m,omitempty"`
	Gf  float64  `json:"Gf,omitempty"`
	Gm  float64  `json:"Gm,omitempty"`
}

type Result struct {
	E1        float64 `json:"E1"`
	E2        float64 `json:"E2"`
	E2Inverse float64 `json:"E2_inverse"`
	G12       float64 `json:"G12,omitempty"`
	Nu12      float64 `json:"nu12,omitempty"`
}

// Constants returns the ply constants, or false when G12 or nu12 could
// not be estimated.
func (r Result) Constants() (laminate.Constants, bool) {
	if r.G12 <= 0 || r.Nu12 <= 0 {
		return laminate.Constants{}, false
	}
	return laminate.Constants{E1: r.E1, E2: r.E2, G12: r.G12, Nu12: r.Nu12}, true
}

func shearModulus(g, e, nu float64) float64 {
	if g > 0 {
		return g
	}
	if nu > 0 {
		return e / (2 * (1 + nu))
	}
	return 0
}

func (in Input) xi() float64 {
	if in.Xi == nil {
		return DefaultXi
	}
	return *in.Xi
}

func checkModuli(ef, em float64) error {
	if ef <= 0 || em <= 0 {
		return fmt.Errorf("%w: fibre and matrix moduli must be positive (Ef=%g, Em=%g)", calc.ErrInvalidInput, ef, em)
	}
	return nil
}

func checkFraction(vf float64) error {
	if vf < 0 || vf > 1 {
		return fmt.Errorf("%w: fibre volume fraction %g outside [0, 1]", calc.ErrInvalidInput, vf)
	}
	return nil
}

// RuleOfMixtures is the longitudinal modulus E1 = Ef vf + Em (1 - vf).
func RuleOfMixtures(ef, em, vf float64) float64 {
	return ef*vf + em*(1-vf)
}

// InverseRuleOfMixtures is the transverse modulus from 1/E2 = vf/Ef + (1-vf)/Em.
func InverseRuleOfMixtures(ef, em, vf float64) float64 {
	return 1 / (vf/ef + (1-vf)/em)
}

// HalpinTsai is the transverse modulus E2 = Em (1 + xi eta vf) / (1 - eta vf)
// with eta = (Ef/Em - 1) / (Ef/Em + xi).
func HalpinTsai(ef, em, vf, xi float64) float64 {
	ratio := ef / em
	eta := (ratio - 1) / (ratio + xi)
	return em * (1 + xi*eta*vf) / (1 - eta*vf)
}

func Calculate(in Input) (Result, error) {
	if err := checkModuli(in.Ef, in.Em); err != nil {
		return Result{}, err
	}
	if err := checkFraction(in.Vf); err != nil {
		return Result{}, err
	}
	if in.xi() <= 0 {
		return Result{}, fmt.Errorf("%w: xi must be positive, got %g", calc.ErrInvalidInput, in.xi())
	}
	res := Result{
		E1:        RuleOfMixtures(in.Ef, in.Em, in.Vf),
		E2:        HalpinTsai(in.Ef, in.Em, in.Vf, in.xi()),
		E2Inverse: InverseRuleOfMixtures(in.Ef, in.Em, in.Vf),
	}
	if in.NuF > 0 && in.NuM > 0 {
		res.Nu12 = RuleOfMixtures(in.NuF, in.NuM, in.Vf)
	}
	gf := shearModulus(in.Gf, in.Ef, in.NuF)
	gm := shearModulus(in.Gm, in.Em, in.NuM)
	if gf > 0 && gm > 0 {
		// xi = 1 for the in-plane shear modulus
		res.G12 = HalpinTsai(gf, gm, in.Vf, 1)
	}
	return res, nil
}

type ScanInput struct {
	Ef     float64  `json:"Ef"`
	Em     float64  `json:"Em"`
	Xi     *float64 `json:"xi,omitempty"`
	VfMin  float64  `json:"vf_min,omitempty"`
	VfMax  float64  `json:"vf_max,omitempty"`
	Points int      `json:"points,omitempty"`
}

// ScanResult holds E1 (rule of mixtures) and E2 (Halpin-Tsai) over a range
// of fibre volume fractions.
type ScanResult struct {
	Vf []float64 `json:"vf"`
	E1 []float64 `json:"E1"`
	E2 []float64 `json:"E2"`
}

// Scan evaluates the moduli at evenly spaced volume fractions, by default
// 100 points over [0, 0.7].
func Scan(in ScanInput) (ScanResult, error) {
	if in.VfMax == 0 {
		in.VfMax = DefaultVfMax
	}
	if in.Points == 0 {
		in.Points = DefaultPoints
	}
	xi := DefaultXi
	if in.Xi != nil {
		xi = *in.Xi
	}
	if err := checkModuli(in.Ef, in.Em); err != nil {
		return ScanResult{}, err
	}
	if err := checkFraction(in.VfMin); err != nil {
		return ScanResult{}, err
	}
	if err := checkFraction(in.VfMax); err != nil {
		return ScanResult{}, err
	}
	if in.VfMin >= in.VfMax || in.Points < 2 || in.Points > MaxPoints {
		return ScanResult{}, fmt.Errorf("%w: scan needs vf_min < vf_max and 2 to %d points", calc.ErrInvalidInput, MaxPoints)
	}
	if xi <= 0 {
		return ScanResult{}, fmt.Errorf("%w: xi must be positive, got %g", calc.ErrInvalidInput, xi)
	}

	res := ScanResult{
		Vf: floats.Span(make([]float64, in.Points), in.VfMin, in.VfMax),
		E1: make([]float64, in.Points),
		E2: make([]float64, in.Points),
	}
	for i, vf := range res.Vf {
		res.E1[i] = RuleOfMixtures(in.Ef, in.Em, vf)
		res.E2[i] = HalpinTsai(in.Ef, in.Em, vf, xi)
	}
	return res, nil
}
