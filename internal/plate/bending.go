package plate

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"Orthos/internal/laminate"
)

const (
	DefaultModes = 11 // exclusive limit: modes 1, 3, 5, 7, 9
	DefaultGrid  = 50

	// MaxModes caps the exclusive series limits so one solve stays cheap.
	MaxModes = 201
)

// Method names a bending solution.
type Method string

// Navier is the double sine series for uniform pressure on a plate simply
// supported on all edges.
const Navier Method = "navier"

// Solver computes a deflection field for a specially orthotropic plate.
type Solver interface {
	Solve(d laminate.Orthotropic, a, b, q0 float64, opts Options) *Field
}

var solvers = map[Method]Solver{
	Navier: navier{},
}

// ParseMethod resolves a method name. The empty string selects Navier.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return Navier, nil
	}
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := solvers[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
	return m, nil
}

// Options control the bending solution. MMax and NMax are exclusive limits
// on the mode numbers.
type Options struct {
	Method Method
	MMax   int
	NMax   int
	NX     int
	NY     int
}

// DefaultOptions is Navier with modes up to 9 on a 50x50 grid.
func DefaultOptions() Options {
	return Options{
		Method: Navier,
		MMax:   DefaultModes,
		NMax:   DefaultModes,
		NX:     DefaultGrid,
		NY:     DefaultGrid,
	}
}

// Field is a deflection grid. W[j][i] is the deflection at (X[i], Y[j]).
type Field struct {
	X []float64
	Y []float64
	W [][]float64
}

// Max returns the largest deflection.
func (f *Field) Max() float64 {
	peak := math.Inf(-1)
	for _, row := range f.W {
		peak = math.Max(peak, floats.Max(row))
	}
	return peak
}

// Center returns the deflection at grid index (ny/2, nx/2).
func (f *Field) Center() float64 {
	return f.W[len(f.Y)/2][len(f.X)/2]
}

// Finite reports whether every deflection is a finite number.
func (f *Field) Finite() bool {
	for _, row := range f.W {
		for _, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return false
			}
		}
	}
	return true
}

// Row returns the deflections along x at grid row j.
func (f *Field) Row(j int) []float64 {
	return f.W[j]
}

// SolveBending computes the deflection of a simply supported plate under
// uniform pressure q0 using the method in opts.
func SolveBending(d laminate.Orthotropic, a, b, q0 float64, opts Options) (*Field, error) {
	if opts.Method == "" {
		opts.Method = Navier
	}
	solver, ok := solvers[opts.Method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, opts.Method)
	}
	if err := checkDims(a, b); err != nil {
		return nil, err
	}
	if opts.MMax < 2 || opts.NMax < 2 {
		return nil, fmt.Errorf("%w: series limits m_max=%d, n_max=%d include no mode", ErrInvalidMode, opts.MMax, opts.NMax)
	}
	if opts.MMax > MaxModes || opts.NMax > MaxModes {
		return nil, fmt.Errorf("%w: series limits m_max=%d, n_max=%d above %d", ErrInvalidMode, opts.MMax, opts.NMax, MaxModes)
	}
	if opts.NX < 2 || opts.NY < 2 {
		return nil, fmt.Errorf("%w: grid needs at least 2x2 points, got %dx%d", ErrNumericDegeneracy, opts.NX, opts.NY)
	}
	// D_term is smallest for m = n = 1; a zero there means no usable stiffness.
	if dt := denominator(d, math.Pi/a, math.Pi/b); !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: series denominator %g", ErrNumericDegeneracy, dt)
	}
	return solver.Solve(d, a, b, q0, opts), nil
}

type navier struct{}

func (navier) Solve(d laminate.Orthotropic, a, b, q0 float64, opts Options) *Field {
	f := &Field{
		X: linspace(0, a, opts.NX),
		Y: linspace(0, b, opts.NY),
		W: make([][]float64, opts.NY),
	}
	for j := range f.W {
		f.W[j] = make([]float64, opts.NX)
	}

	sinX := make([]float64, opts.NX)
	sinY := make([]float64, opts.NY)
	for m := 1; m < opts.MMax; m += 2 {
		alpha := float64(m) * math.Pi / a
		for i, x := range f.X {
			sinX[i] = math.Sin(alpha * x)
		}
		for n := 1; n < opts.NMax; n += 2 {
			beta := float64(n) * math.Pi / b
			pmn := 16 * q0 / (math.Pi * math.Pi * float64(m) * float64(n))
			wmn := pmn / denominator(d, alpha, beta)

			for j, y := range f.Y {
				sinY[j] = math.Sin(beta * y)
			}
			for j, row := range f.W {
				c := wmn * sinY[j]
				for i := range row {
					row[i] += c * sinX[i]
				}
			}
		}
	}
	return f
}

func denominator(d laminate.Orthotropic, alpha, beta float64) float64 {
	a2 := alpha * alpha
	b2 := beta * beta
	return d.D11*a2*a2 + 2*(d.D12+2*d.D66)*a2*b2 + d.D22*b2*b2
}

func linspace(start, stop float64, n int) []float64 {
	v := floats.Span(make([]float64, n), start, stop)
	v[n-1] = stop
	return v
}
