package hole

import (
	"fmt"
	"math"
	"strings"

	"Orthos/internal/calc"
	"Orthos/internal/config"
	"Orthos/internal/laminate"
)

// Notched strength criteria of Whitney and Nuismer.
const (
	PointStress   = "psc"
	AverageStress = "asc"
)

type StrengthInput struct {
	UnnotchedStrength float64 `json:"unnotched_strength"`
	Radius            float64 `json:"radius"`
	D0                float64 `json:"d0"`
	Criterion         string  `json:"criterion,omitempty"`
}

type StrengthResult struct {
	PredictedStrength float64 `json:"predicted_strength"`
	Ratio             float64 `json:"ratio"`
	Criterion         string  `json:"criterion"`
}

// PointStressFactor is the isotropic stress concentration at distance d0
// ahead of a hole of radius r: 1 + xi^2/2 + 3 xi^4/2, xi = r/(r+d0).
func PointStressFactor(r, d0 float64) float64 {
	xi := r / (r + d0)
	xi2 := xi * xi
	return 1 + 0.5*xi2 + 1.5*xi2*xi2
}

// AverageStressRatio is sigma_N/sigma_0 when the stress averaged over a0
// ahead of the hole reaches the unnotched strength.
func AverageStressRatio(r, a0 float64) float64 {
	xi := r / (r + a0)
	xi2 := xi * xi
	return 2 * (1 - xi) / (2 - xi2 - xi2*xi2)
}

func Strength(in StrengthInput) (StrengthResult, error) {
	if in.UnnotchedStrength <= 0 {
		return StrengthResult{}, fmt.Errorf("%w: unnotched strength must be positive", calc.ErrInvalidInput)
	}
	if in.Radius < 0 || in.D0 <= 0 {
		return StrengthResult{}, fmt.Errorf("%w: need radius >= 0 and d0 > 0 (radius=%g, d0=%g)", calc.ErrInvalidInput, in.Radius, in.D0)
	}

	var ratio float64
	switch c := strings.ToLower(in.Criterion); c {
	case "", PointStress:
		in.Criterion = PointStress
		ratio = 1 / PointStressFactor(in.Radius, in.D0)
	case AverageStress:
		in.Criterion = c
		ratio = AverageStressRatio(in.Radius, in.D0)
	default:
		return StrengthResult{}, fmt.Errorf("%w: unknown criterion %q", calc.ErrInvalidInput, in.Criterion)
	}

	return StrengthResult{
		PredictedStrength: in.UnnotchedStrength * ratio,
		Ratio:             ratio,
		Criterion:         in.Criterion,
	}, nil
}

// Orthotropic describes an infinite orthotropic plate with a circular hole
// loaded by uniaxial tension Sigma along x, the Ex direction.
type Orthotropic struct {
	Ex    float64 `json:"Ex"`
	Ey    float64 `json:"Ey"`
	Gxy   float64 `json:"Gxy"`
	NuXY  float64 `json:"nuxy"`
	Sigma float64 `json:"sigma"`
}

// FromMaterial loads the plate along the fibre direction of m.
func FromMaterial(m laminate.Material, sigma float64) Orthotropic {
	return Orthotropic{Ex: m.E1, Ey: m.E2, Gxy: m.G12, NuXY: m.Nu12, Sigma: sigma}
}

func (o Orthotropic) validate() error {
	if o.Ex <= 0 || o.Ey <= 0 || o.Gxy <= 0 {
		return fmt.Errorf("%w: moduli must be positive (Ex=%g, Ey=%g, Gxy=%g)", calc.ErrInvalidInput, o.Ex, o.Ey, o.Gxy)
	}
	if o.nSquared() <= 0 {
		return fmt.Errorf("%w: nuxy=%g gives no real stress solution", calc.ErrInvalidInput, o.NuXY)
	}
	return nil
}

func (o Orthotropic) k() float64 {
	return math.Sqrt(o.Ex / o.Ey)
}

func (o Orthotropic) nSquared() float64 {
	return 2*(o.k()-o.NuXY) + o.Ex/o.Gxy
}

// HoopStress is the tangential stress on the hole boundary at angle theta
// (degrees from the load direction), after Lekhnitskii:
//
//	sigma_theta = sigma (E_theta/Ex) [-k cos^2 + (1+n) sin^2]
//
// with k = sqrt(Ex/Ey), n = sqrt(2(k - nuxy) + Ex/Gxy) and E_theta the
// modulus along the boundary tangent.
func (o Orthotropic) HoopStress(theta float64) float64 {
	rad := theta * math.Pi / 180
	s, c := math.Sincos(rad)
	s2, c2 := s*s, c*c

	k := o.k()
	n := math.Sqrt(o.nSquared())
	inv := s2*s2/o.Ex + (1/o.Gxy-2*o.NuXY/o.Ex)*s2*c2 + c2*c2/o.Ey
	return o.Sigma / (inv * o.Ex) * (-k*c2 + (1+n)*s2)
}

// Concentration is the peak hoop stress factor 1 + n, reached at 90 degrees.
func (o Orthotropic) Concentration() float64 {
	return 1 + math.Sqrt(o.nSquared())
}

type BoundaryInput struct {
	Orthotropic
	Material string `json:"material,omitempty"`
	Points   int    `json:"points,omitempty"`
}

type BoundaryResult struct {
	Theta         []float64 `json:"theta"`
	SigmaTheta    []float64 `json:"sigma_theta"`
	MaxStress     float64   `json:"max_stress"`
	ThetaAtMax    float64   `json:"theta_at_max"`
	Concentration float64   `json:"concentration"`
}

const (
	defaultPoints = 361
	MaxPoints     = 10000
)

// Boundary samples the hoop stress around the hole from 0 to 360 degrees.
// When Material is set the moduli come from that preset.
func Boundary(in BoundaryInput, mats config.Materials) (BoundaryResult, error) {
	if in.Sigma == 0 {
		in.Sigma = 1
	}
	if in.Material != "" {
		if mats == nil {
			mats = config.DefaultMaterials()
		}
		m, err := mats.Get(in.Material)
		if err != nil {
			return BoundaryResult{}, err
		}
		in.Orthotropic = FromMaterial(m, in.Sigma)
	}
	if in.Points == 0 {
		in.Points = defaultPoints
	}
	if in.Points < 2 || in.Points > MaxPoints {
		return BoundaryResult{}, fmt.Errorf("%w: need 2 to %d points, got %d", calc.ErrInvalidInput, MaxPoints, in.Points)
	}
	if err := in.validate(); err != nil {
		return BoundaryResult{}, err
	}

	res := BoundaryResult{
		Theta:         make([]float64, in.Points),
		SigmaTheta:    make([]float64, in.Points),
		MaxStress:     math.Inf(-1),
		Concentration: in.Concentration(),
	}
	step := 360 / float64(in.Points-1)
	for i := range res.Theta {
		theta := float64(i) * step
		sigma := in.HoopStress(theta)
		res.Theta[i] = theta
		res.SigmaTheta[i] = sigma
		if sigma > res.MaxStress {
			res.MaxStress = sigma
			res.ThetaAtMax = theta
		}
	}
	return res, nil
}
