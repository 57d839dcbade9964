package fatigue

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"Orthos/internal/calc"
)

// Curve is the S-N line sigma = A - B log10(N).
type Curve struct {
	A float64 `json:"A"`
	B float64 `json:"B"`
}

func (c Curve) Validate() error {
	if c.A <= 0 || c.B <= 0 {
		return fmt.Errorf("%w: S-N constants must be positive (A=%g, B=%g)", calc.ErrInvalidInput, c.A, c.B)
	}
	return nil
}

// Life returns the cycles to failure at stress amplitude sigma. At or above
// A the part fails immediately and the life is 0.
func (c Curve) Life(sigma float64) (float64, error) {
	if sigma >= c.A {
		return 0, nil
	}
	n := math.Pow(10, (c.A-sigma)/c.B)
	if math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: stress %g is too far below A=%g", calc.ErrOutOfRange, sigma, c.A)
	}
	return n, nil
}

// Strength returns the fatigue strength after n cycles; A for n <= 0.
func (c Curve) Strength(n float64) float64 {
	if n <= 0 {
		return c.A
	}
	return c.A - c.B*math.Log10(n)
}

// Input asks for the life at Stress, the strength at Cycles, or both.
type Input struct {
	Curve
	Stress *float64 `json:"stress,omitempty"`
	Cycles *float64 `json:"cycles,omitempty"`
}

type Result struct {
	Cycles   *float64 `json:"cycles,omitempty"`
	Strength *float64 `json:"strength,omitempty"`
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	if in.Stress == nil && in.Cycles == nil {
		return Result{}, fmt.Errorf("%w: give stress, cycles or both", calc.ErrInvalidInput)
	}

	var res Result
	if in.Stress != nil {
		n, err := in.Life(*in.Stress)
		if err != nil {
			return Result{}, err
		}
		res.Cycles = &n
	}
	if in.Cycles != nil {
		s := in.Strength(*in.Cycles)
		res.Strength = &s
	}
	return res, nil
}

const (
	DefaultNMin   = 1e3
	DefaultNMax   = 1e7
	DefaultPoints = 100
)

// Points samples the curve at log-spaced cycle counts in [nMin, nMax].
func (c Curve) Points(nMin, nMax float64, points int) (cycles, strength []float64, err error) {
	if nMin <= 0 || nMax <= nMin || points < 2 {
		return nil, nil, fmt.Errorf("%w: need 0 < n_min < n_max and at least 2 points", calc.ErrInvalidInput)
	}
	cycles = floats.LogSpan(make([]float64, points), nMin, nMax)
	strength = make([]float64, points)
	for i, n := range cycles {
		strength[i] = c.Strength(n)
	}
	return cycles, strength, nil
}
