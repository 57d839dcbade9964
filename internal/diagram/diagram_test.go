package diagram

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orthos/internal/laminate"
	"Orthos/internal/plate"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func field(t *testing.T, load float64) *plate.Field {
	t.Helper()
	layup := laminate.Layup{Angles: []float64{0, 90}, Symmetric: true}
	p, err := plate.New(0.5, 0.3, layup, laminate.DefaultMaterial())
	require.NoError(t, err)
	opts := plate.DefaultOptions()
	opts.NX, opts.NY = 20, 15
	f, err := p.Bend(load, opts)
	require.NoError(t, err)
	return f
}

func TestDeflectionMap_PNG(t *testing.T) {
	p, err := DeflectionMap(field(t, 1000), "")
	require.NoError(t, err)

	data, err := PNG(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))
}

func TestDeflectionMap_FlatField(t *testing.T) {
	p, err := DeflectionMap(field(t, 0), "zero load")
	require.NoError(t, err)
	_, err = PNG(p)
	assert.NoError(t, err)
}

func TestDeflectionMap_Invalid(t *testing.T) {
	_, err := DeflectionMap(nil, "")
	assert.Error(t, err)
	_, err = DeflectionMap(&plate.Field{X: []float64{0}, Y: []float64{0}}, "")
	assert.Error(t, err)
}

func TestCurves(t *testing.T) {
	s := Series{Name: "S-N", X: []float64{1e3, 1e4, 1e5}, Y: []float64{500, 450, 400}}

	p, err := Curves("S-N", "N", "MPa", true, s)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "out", "sn.png")
	require.NoError(t, SavePNG(p, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))
}

func TestCurves_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		logX   bool
		series []Series
	}{
		{"none", false, nil},
		{"length mismatch", false, []Series{{X: []float64{1, 2}, Y: []float64{1}}}},
		{"empty", false, []Series{{}}},
		{"log of zero", true, []Series{{X: []float64{0, 1}, Y: []float64{1, 2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Curves("t", "x", "y", tt.logX, tt.series...)
			assert.Error(t, err)
		})
	}
}

func TestASCII(t *testing.T) {
	out := Profile(field(t, 1000), 40)
	assert.Contains(t, out, "deflection at y = b/2")

	many := ASCII("moduli", 40, []float64{1, 2, 3}, []float64{3, 2, 1})
	assert.Contains(t, many, "moduli")
	assert.Greater(t, len(strings.Split(many, "\n")), 5)
}
