package sizing

import (
	"fmt"
	"math"

	"Orthos/internal/calc"
	"Orthos/internal/calc/bending"
	"Orthos/internal/config"
)

const (
	DefaultLimitRatio = 200
	MaxRepeats        = 40
)

// Input is a bending request whose layup is the block to repeat. The
// allowable deflection is the shorter plate side divided by LimitRatio.
type Input struct {
	bending.Input
	LimitRatio float64 `json:"limit_ratio,omitempty"`
	MaxRepeats int     `json:"max_repeats,omitempty"`
}

type Result struct {
	Repeats       int       `json:"repeats"`
	Sequence      []float64 `json:"sequence"`
	Thickness     float64   `json:"thickness"`
	MaxDeflection float64   `json:"max_deflection"`
	Allowable     float64   `json:"allowable"`
	OK            bool      `json:"ok"`
	Warning       string    `json:"warning,omitempty"`
	Notes         string    `json:"notes"`
}

// Repeat returns the block repeated n times.
func Repeat(block []float64, n int) []float64 {
	out := make([]float64, 0, n*len(block))
	for i := 0; i < n; i++ {
		out = append(out, block...)
	}
	return out
}

// Size finds the fewest repeats of the layup block that keep the maximum
// deflection within the allowable. When even MaxRepeats is not enough the
// thickest stack is returned with OK false.
func Size(in Input, mats config.Materials) (Result, error) {
	if in.LimitRatio == 0 {
		in.LimitRatio = DefaultLimitRatio
	}
	if in.MaxRepeats == 0 {
		in.MaxRepeats = MaxRepeats
	}
	if in.LimitRatio < 0 || in.MaxRepeats < 1 || in.MaxRepeats > MaxRepeats {
		return Result{}, fmt.Errorf("%w: need limit_ratio > 0 and 1 <= max_repeats <= %d", calc.ErrInvalidInput, MaxRepeats)
	}
	if len(in.Layup) == 0 {
		return Result{}, fmt.Errorf("%w: empty layup", calc.ErrInvalidInput)
	}

	allowable := math.Min(in.Length, in.Width) / in.LimitRatio
	block := in.Layup

	var res Result
	for n := 1; n <= in.MaxRepeats; n++ {
		trial := in.Input
		trial.Layup = Repeat(block, n)
		sol, err := bending.Solve(trial, mats)
		if err != nil {
			return Result{}, err
		}
		lam := sol.Plate.Laminate
		res = Result{
			Repeats:       n,
			Sequence:      lam.Sequence,
			Thickness:     lam.Thickness,
			MaxDeflection: sol.Result.MaxDeflection,
			Allowable:     allowable,
			OK:            sol.Result.MaxDeflection <= allowable,
			Warning:       sol.Result.Warning,
		}
		if res.OK {
			res.Notes = fmt.Sprintf("%d x %v meets span/%g.", n, block, in.LimitRatio)
			return res, nil
		}
	}
	res.Notes = fmt.Sprintf("%d repeats of %v still exceed span/%g.", in.MaxRepeats, block, in.LimitRatio)
	return res, nil
}
