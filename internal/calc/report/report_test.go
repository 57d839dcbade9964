package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orthos/internal/calc/bending"
	"Orthos/internal/laminate"
)

func input() Input {
	return Input{
		Input: bending.Input{
			Stack:  bending.Stack{Layup: []float64{0, 45, -45, 90}},
			Length: 0.6,
			Width:  0.4,
			Load:   2000,
		},
		Project: "Access panel",
		Author:  "QA",
		Notes:   "Quasi-isotropic layup, all edges simply supported.",
	}
}

func TestBuild(t *testing.T) {
	pdf, err := Build(input(), nil, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.GreaterOrEqual(t, pdf.PageCount(), 1)
}

func TestWrite_Errors(t *testing.T) {
	in := input()
	in.Layup = nil
	err := Write(&bytes.Buffer{}, in, nil)
	assert.ErrorIs(t, err, laminate.ErrInvalidMaterial)
}

func TestHandler(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	body := `{"length":0.5,"width":0.5,"layup":[0,90],"load":1000,"project":"Demo"}`
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"length":0,"width":0.5,"layup":[0],"load":1}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
