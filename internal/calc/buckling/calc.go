package buckling

import (
	"fmt"

	"Orthos/internal/calc"
	"Orthos/internal/laminate"
	"Orthos/internal/plate"
)

// Input gives the stiffness directly, as produced by a laminate summary.
// M and N default to 1. With Scan set, the governing mode up to
// (ScanM, ScanN) is reported as well.
type Input struct {
	D11   float64 `json:"D11"`
	D12   float64 `json:"D12"`
	D22   float64 `json:"D22"`
	D66   float64 `json:"D66"`
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	M     int     `json:"m,omitempty"`
	N     int     `json:"n,omitempty"`
	Scan  bool    `json:"scan,omitempty"`
	ScanM int     `json:"scan_m,omitempty"`
	ScanN int     `json:"scan_n,omitempty"`
}

type Result struct {
	Ncr       float64     `json:"N_cr"`
	Governing *plate.Mode `json:"governing,omitempty"`
}

const defaultScan = 10

func (in Input) Stiffness() laminate.Orthotropic {
	return laminate.Orthotropic{D11: in.D11, D12: in.D12, D22: in.D22, D66: in.D66}
}

func Calculate(in Input) (Result, error) {
	if in.M == 0 {
		in.M = 1
	}
	if in.N == 0 {
		in.N = 1
	}
	d := in.Stiffness()
	ncr, err := plate.CriticalLoad(d, in.A, in.B, in.M, in.N)
	if err != nil {
		return Result{}, err
	}
	if err := calc.CheckFinite("N_cr", ncr); err != nil {
		return Result{}, err
	}
	res := Result{Ncr: ncr}
	if !in.Scan {
		return res, nil
	}

	if in.ScanM == 0 {
		in.ScanM = defaultScan
	}
	if in.ScanN == 0 {
		in.ScanN = defaultScan
	}
	if in.ScanM > plate.MaxScan || in.ScanN > plate.MaxScan {
		return Result{}, fmt.Errorf("%w: scan_m and scan_n may not exceed %d", plate.ErrInvalidMode, plate.MaxScan)
	}
	mode, err := plate.GoverningMode(d, in.A, in.B, in.ScanM, in.ScanN)
	if err != nil {
		return Result{}, err
	}
	if err := calc.CheckFinite("governing N_cr", mode.Ncr); err != nil {
		return Result{}, err
	}
	res.Governing = &mode
	return res, nil
}
