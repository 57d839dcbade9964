package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orthos/internal/calc"
	"Orthos/internal/calc/bending"
)

func plate(length float64) bending.Input {
	return bending.Input{
		Stack:  bending.Stack{Layup: []float64{0, 90}},
		Length: length,
		Width:  0.5,
		Load:   1000,
	}
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{Items: []bending.Input{plate(0.5), plate(0), plate(1)}}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Results, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{res.Results[0].Row, res.Results[1].Row, res.Results[2].Row})

	assert.NotNil(t, res.Results[0].Result)
	assert.Nil(t, res.Results[1].Result)
	assert.Contains(t, res.Results[1].Error, "degenerate")
	assert.Greater(t, res.Results[2].Result.MaxDeflection, res.Results[0].Result.MaxDeflection)
}

func TestCalculate_Limits(t *testing.T) {
	_, err := Calculate(Input{}, nil)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)

	items := make([]bending.Input, MaxItems+1)
	for i := range items {
		items[i] = plate(0.5)
	}
	_, err = Calculate(Input{Items: items}, nil)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
}

func TestEvaluate_Rows(t *testing.T) {
	res := Evaluate([]bending.Input{plate(0.5)}, []int{7}, nil)
	assert.Equal(t, 7, res.Results[0].Row)
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	items := make([]string, 3)
	for i := range items {
		items[i] = fmt.Sprintf(`{"length":%g,"width":0.5,"layup":[0,90],"load":1000}`, 0.5+0.1*float64(i))
	}
	body := `{"items":[` + strings.Join(items, ",") + `]}`

	rec := httptest.NewRecorder()
	h.Plates(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 3, res.Count)

	rec = httptest.NewRecorder()
	h.Plates(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
