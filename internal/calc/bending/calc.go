package bending

import (
	"errors"
	"fmt"
	"log"

	"Orthos/internal/calc"
	"Orthos/internal/config"
	"Orthos/internal/laminate"
	"Orthos/internal/plate"
)

// Stack describes the laminate: ply angles, symmetry and material. Material
// names a preset; Constants, when set, overrides it.
type Stack struct {
	Layup     []float64          `json:"layup"`
	Sym       *bool              `json:"sym,omitempty"`
	Material  string             `json:"material,omitempty"`
	Constants *laminate.Material `json:"constants,omitempty"`
}

type Input struct {
	Stack
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Load   float64 `json:"load"`
	Method string  `json:"method,omitempty"`
	MMax   int     `json:"m_max,omitempty"`
	NMax   int     `json:"n_max,omitempty"`
}

type Result struct {
	MaxDeflection    float64 `json:"max_deflection"`
	CenterDeflection float64 `json:"center_deflection"`
	Warning          string  `json:"warning,omitempty"`
}

// Solution keeps the solved plate and field for callers that render them.
type Solution struct {
	Plate  *plate.Plate
	Field  *plate.Field
	Result Result
}

// Symmetric reports the sym flag, which defaults to true.
func (s Stack) Symmetric() bool {
	return s.Sym == nil || *s.Sym
}

// Resolve picks the ply material from s and the presets.
func (s Stack) Resolve(mats config.Materials) (laminate.Material, error) {
	if s.Constants != nil {
		m := *s.Constants
		if m.PlyThickness == 0 {
			m.PlyThickness = laminate.DefaultPlyThickness
		}
		if m.Name == "" {
			m.Name = "custom"
		}
		return m, nil
	}
	if mats == nil {
		mats = config.DefaultMaterials()
	}
	return mats.Get(s.Material)
}

// Laminate assembles the stack.
func (s Stack) Laminate(mats config.Materials) (*laminate.Laminate, error) {
	m, err := s.Resolve(mats)
	if err != nil {
		return nil, err
	}
	return laminate.New(laminate.Layup{Angles: s.Layup, Symmetric: s.Symmetric()}, m)
}

// Options turns the request into solver options with default limits.
func (in Input) Options() (plate.Options, error) {
	opts := plate.DefaultOptions()
	method, err := plate.ParseMethod(in.Method)
	if err != nil {
		return opts, err
	}
	opts.Method = method
	if in.MMax != 0 {
		opts.MMax = in.MMax
	}
	if in.NMax != 0 {
		opts.NMax = in.NMax
	}
	if opts.MMax > plate.MaxModes || opts.NMax > plate.MaxModes {
		return opts, fmt.Errorf("%w: m_max and n_max may not exceed %d", plate.ErrInvalidMode, plate.MaxModes)
	}
	return opts, nil
}

// Warning describes the bend-twist coupling neglected by the solvers, or
// returns "" when it is below the default tolerance.
func Warning(lam *laminate.Laminate) string {
	err := lam.CheckCoupling(laminate.DefaultCouplingTolerance)
	if errors.Is(err, laminate.ErrBendTwistCoupling) {
		return err.Error()
	}
	return ""
}

// Solve builds the plate and solves its deflection field.
func Solve(in Input, mats config.Materials) (*Solution, error) {
	opts, err := in.Options()
	if err != nil {
		return nil, err
	}
	m, err := in.Resolve(mats)
	if err != nil {
		return nil, err
	}
	p, err := plate.New(in.Length, in.Width, laminate.Layup{Angles: in.Layup, Symmetric: in.Symmetric()}, m)
	if err != nil {
		return nil, err
	}
	f, err := p.Bend(in.Load, opts)
	if err != nil {
		return nil, fmt.Errorf("bending %gx%g plate: %w", in.Length, in.Width, err)
	}
	if !f.Finite() {
		return nil, fmt.Errorf("%w: deflection of %gx%g plate under %g Pa", calc.ErrOutOfRange, in.Length, in.Width, in.Load)
	}

	res := Result{
		MaxDeflection:    f.Max(),
		CenterDeflection: f.Center(),
		Warning:          Warning(p.Laminate),
	}
	if res.Warning != "" {
		log.Printf("layup %v: %s", p.Laminate.Sequence, res.Warning)
	}
	return &Solution{Plate: p, Field: f, Result: res}, nil
}

func Calculate(in Input, mats config.Materials) (Result, error) {
	sol, err := Solve(in, mats)
	if err != nil {
		return Result{}, err
	}
	return sol.Result, nil
}

// LaminateResult summarises an assembled stack.
type LaminateResult struct {
	Material      laminate.Material    `json:"material"`
	Sequence      []float64            `json:"sequence"`
	Thickness     float64              `json:"thickness"`
	Z             []float64            `json:"z"`
	D             laminate.Matrix      `json:"D"`
	Stiffness     laminate.Orthotropic `json:"stiffness"`
	CouplingRatio float64              `json:"coupling_ratio"`
	Warning       string               `json:"warning,omitempty"`
}

func Describe(s Stack, mats config.Materials) (LaminateResult, error) {
	lam, err := s.Laminate(mats)
	if err != nil {
		return LaminateResult{}, err
	}
	if err := calc.CheckFinite("D", lam.D[0][0], lam.D[0][1], lam.D[0][2], lam.D[1][1], lam.D[1][2], lam.D[2][2]); err != nil {
		return LaminateResult{}, err
	}
	return LaminateResult{
		Material:      lam.Material,
		Sequence:      lam.Sequence,
		Thickness:     lam.Thickness,
		Z:             lam.Z,
		D:             lam.D,
		Stiffness:     lam.Orthotropic(),
		CouplingRatio: lam.CouplingRatio(),
		Warning:       Warning(lam),
	}, nil
}
