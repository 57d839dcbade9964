package fatigue

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orthos/internal/calc"
)

var curve = Curve{A: 800e6, B: 60e6}

func TestLife(t *testing.T) {
	tests := []struct {
		name  string
		sigma float64
		want  float64
	}{
		{"at A", 800e6, 0},
		{"above A", 900e6, 0},
		{"one decade", 740e6, 10},
		{"five decades", 500e6, 1e5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := curve.Life(tt.sigma)
			require.NoError(t, err)
			if tt.want == 0 {
				assert.Zero(t, n)
				return
			}
			assert.InEpsilon(t, tt.want, n, 1e-9)
		})
	}

	_, err := Curve{A: 800e6, B: 1}.Life(0)
	assert.ErrorIs(t, err, calc.ErrOutOfRange)
}

func TestStrength(t *testing.T) {
	assert.Equal(t, curve.A, curve.Strength(0))
	assert.Equal(t, curve.A, curve.Strength(-5))
	assert.InDelta(t, 800e6-4*60e6, curve.Strength(1e4), 1e-3)

	// life and strength are inverse
	n, err := curve.Life(600e6)
	require.NoError(t, err)
	assert.InDelta(t, 600e6, curve.Strength(n), 1e-3)
}

func TestCalculate(t *testing.T) {
	stress, cycles := 620e6, 1e6
	res, err := Calculate(Input{Curve: curve, Stress: &stress, Cycles: &cycles})
	require.NoError(t, err)
	require.NotNil(t, res.Cycles)
	require.NotNil(t, res.Strength)
	assert.InEpsilon(t, 1e3, *res.Cycles, 1e-9)
	assert.InDelta(t, 440e6, *res.Strength, 1e-3)

	_, err = Calculate(Input{Curve: curve})
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
	_, err = Calculate(Input{Curve: Curve{A: 1, B: 0}, Cycles: &cycles})
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
}

func TestPoints(t *testing.T) {
	cycles, strength, err := curve.Points(DefaultNMin, DefaultNMax, 5)
	require.NoError(t, err)
	require.Len(t, cycles, 5)
	assert.InEpsilon(t, 1e3, cycles[0], 1e-12)
	assert.InEpsilon(t, 1e4, cycles[1], 1e-9)
	assert.InEpsilon(t, 1e7, cycles[4], 1e-9)
	for i := 1; i < len(strength); i++ {
		assert.Less(t, strength[i], strength[i-1])
	}

	_, _, err = curve.Points(0, 1e7, 5)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
}

func TestHandler(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"A":800e6,"B":60e6,"stress":900e6}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var res map[string]float64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Contains(t, res, "cycles")
	assert.Zero(t, res["cycles"])

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"A":800e6,"B":1,"stress":0}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	h.Chart(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"A":800e6,"B":60e6}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}
