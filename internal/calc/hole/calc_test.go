package hole

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orthos/internal/calc"
	"Orthos/internal/laminate"
)

func TestStrength_PointStress(t *testing.T) {
	res, err := Strength(StrengthInput{UnnotchedStrength: 1000e6, Radius: 0.005, D0: 0.001})
	require.NoError(t, err)

	assert.Less(t, res.PredictedStrength, 1000e6)
	assert.Greater(t, res.PredictedStrength, 1000e6/3, "never below the net Kt=3 bound")
	assert.Equal(t, PointStress, res.Criterion)

	xi := 0.005 / 0.006
	assert.InEpsilon(t, 1000e6/(1+0.5*xi*xi+1.5*math.Pow(xi, 4)), res.PredictedStrength, 1e-12)
}

func TestStrength_Criteria(t *testing.T) {
	psc, err := Strength(StrengthInput{UnnotchedStrength: 500e6, Radius: 0.003, D0: 0.001})
	require.NoError(t, err)
	asc, err := Strength(StrengthInput{UnnotchedStrength: 500e6, Radius: 0.003, D0: 0.001, Criterion: "ASC"})
	require.NoError(t, err)

	assert.Equal(t, AverageStress, asc.Criterion)
	assert.Less(t, asc.PredictedStrength, 500e6)
	assert.Greater(t, asc.PredictedStrength, 0.0)
	assert.NotEqual(t, psc.PredictedStrength, asc.PredictedStrength)

	// without a hole there is no reduction
	for _, c := range []string{PointStress, AverageStress} {
		res, err := Strength(StrengthInput{UnnotchedStrength: 500e6, Radius: 0, D0: 0.001, Criterion: c})
		require.NoError(t, err)
		assert.InDelta(t, 500e6, res.PredictedStrength, 1e-6, c)
	}
}

func TestStrength_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   StrengthInput
	}{
		{"zero strength", StrengthInput{Radius: 0.005, D0: 0.001}},
		{"negative radius", StrengthInput{UnnotchedStrength: 1, Radius: -1, D0: 0.001}},
		{"zero d0", StrengthInput{UnnotchedStrength: 1, Radius: 0.005}},
		{"criterion", StrengthInput{UnnotchedStrength: 1, Radius: 0.005, D0: 0.001, Criterion: "max"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Strength(tt.in)
			assert.ErrorIs(t, err, calc.ErrInvalidInput)
		})
	}
}

func isotropic(e, nu float64) Orthotropic {
	return Orthotropic{Ex: e, Ey: e, Gxy: e / (2 * (1 + nu)), NuXY: nu, Sigma: 1}
}

func TestHoopStress_Isotropic(t *testing.T) {
	o := isotropic(70e9, 0.33)

	assert.InDelta(t, 3, o.HoopStress(90), 1e-12)
	assert.InDelta(t, -1, o.HoopStress(0), 1e-12)
	assert.InDelta(t, 3, o.Concentration(), 1e-12)
	for _, theta := range []float64{15, 37, 60, 133} {
		want := 1 - 2*math.Cos(2*theta*math.Pi/180)
		assert.InDelta(t, want, o.HoopStress(theta), 1e-12, "Kirsch at %g deg", theta)
	}
}

func TestHoopStress_Orthotropic(t *testing.T) {
	o := FromMaterial(laminate.DefaultMaterial(), 1)

	want := 1 + math.Sqrt(2*(math.Sqrt(140.0/10)-0.3)+140.0/5)
	assert.InDelta(t, want, o.Concentration(), 1e-12)
	assert.InDelta(t, want, o.HoopStress(90), 1e-9)
	assert.InDelta(t, -math.Sqrt(10.0/140), o.HoopStress(0), 1e-12)
}

func TestBoundary(t *testing.T) {
	res, err := Boundary(BoundaryInput{Material: "carbon-epoxy"}, nil)
	require.NoError(t, err)

	require.Len(t, res.Theta, 361)
	assert.Equal(t, 360.0, res.Theta[360])
	assert.InDelta(t, res.Concentration, res.MaxStress, 1e-9)
	assert.Contains(t, []float64{90, 270}, res.ThetaAtMax)
	assert.InDelta(t, res.SigmaTheta[0], res.SigmaTheta[360], 1e-12)

	_, err = Boundary(BoundaryInput{Material: "balsa"}, nil)
	assert.ErrorIs(t, err, laminate.ErrInvalidMaterial)
	_, err = Boundary(BoundaryInput{Orthotropic: Orthotropic{Ex: 1, Ey: 0, Gxy: 1}}, nil)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
	_, err = Boundary(BoundaryInput{Orthotropic: isotropic(1, 0.3), Points: 1}, nil)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
	_, err = Boundary(BoundaryInput{Orthotropic: isotropic(1, 0.3), Points: 1 << 30}, nil)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)

	res, err = Boundary(BoundaryInput{Orthotropic: isotropic(1, 0.3), Points: MaxPoints}, nil)
	require.NoError(t, err)
	assert.Len(t, res.SigmaTheta, MaxPoints)
}

func TestHandler(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.PSC(rec, httptest.NewRequest(http.MethodPost, "/",
		bytes.NewBufferString(`{"unnotched_strength":1000e6,"radius":0.005,"d0":0.001}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var res StrengthResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Less(t, res.PredictedStrength, 1000e6)

	rec = httptest.NewRecorder()
	h.PSC(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"radius":0.005,"d0":0.001}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Boundary(rec, httptest.NewRequest(http.MethodPost, "/",
		bytes.NewBufferString(`{"Ex":70e9,"Ey":70e9,"Gxy":26.3e9,"nuxy":0.33,"points":5}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var b BoundaryResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
	assert.Equal(t, []float64{0, 90, 180, 270, 360}, b.Theta)
}
