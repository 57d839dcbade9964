package plate

import (
	"fmt"
	"math"

	"Orthos/internal/laminate"
)

// CriticalLoad returns the uniaxial compressive load per unit length N_cr
// (along x) at which mode (m, n) of a simply supported specially orthotropic
// plate buckles:
//
//	N_cr = (pi^2/b^2) [D11 (m b/a)^2 + 2 (D12 + 2 D66) n^2 + D22 (a n^2/(b m))^2]
//
// Only the requested mode is evaluated; use GoverningMode to search.
func CriticalLoad(d laminate.Orthotropic, a, b float64, m, n int) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	if m < 1 || n < 1 {
		return 0, fmt.Errorf("%w: got m=%d, n=%d", ErrInvalidMode, m, n)
	}
	fm := float64(m)
	fn := float64(n)

	t1 := d.D11 * math.Pow(fm*b/a, 2)
	t2 := 2 * (d.D12 + 2*d.D66) * fn * fn
	t3 := d.D22 * math.Pow(a*fn*fn/(b*fm), 2)

	return math.Pi * math.Pi / (b * b) * (t1 + t2 + t3), nil
}

// Mode is a buckling mode with its critical load.
type Mode struct {
	M   int     `json:"m"`
	N   int     `json:"n"`
	Ncr float64 `json:"N_cr"`
}

// MaxScan bounds the half-wave counts searched by GoverningMode.
const MaxScan = 100

// GoverningMode scans 1<=m<=mMax, 1<=n<=nMax and returns the mode with the
// lowest critical load. Neither limit may exceed MaxScan.
func GoverningMode(d laminate.Orthotropic, a, b float64, mMax, nMax int) (Mode, error) {
	if mMax < 1 || nMax < 1 || mMax > MaxScan || nMax > MaxScan {
		return Mode{}, fmt.Errorf("%w: scan limits m=%d, n=%d outside 1..%d", ErrInvalidMode, mMax, nMax, MaxScan)
	}
	best := Mode{Ncr: math.Inf(1)}
	for m := 1; m <= mMax; m++ {
		for n := 1; n <= nMax; n++ {
			ncr, err := CriticalLoad(d, a, b, m, n)
			if err != nil {
				return Mode{}, err
			}
			if ncr < best.Ncr {
				best = Mode{M: m, N: n, Ncr: ncr}
			}
		}
	}
	return best, nil
}
