package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Orthos/internal/calc"
	"Orthos/internal/calc/batch"
	"Orthos/internal/calc/bending"
)

func sheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, writeRows(f, "Sheet1", rows))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func plates(t *testing.T) *bytes.Buffer {
	return sheet(t, [][]interface{}{
		{"length", "width", "layup", "sym", "load", "material"},
		{0.5, 0.5, "0/90", "true", 1000},
		{0.5, 0.5, "[0,90]", "", 1000, "glass-epoxy"},
		{"abc", 0.5, "0/90", "true", 1000},
		{},
		{0, 0.5, "0", "false", 1000},
	})
}

func TestParseLayup(t *testing.T) {
	tests := []struct {
		in   string
		want []float64
	}{
		{"0/90/45", []float64{0, 90, 45}},
		{"[0, -45, 45, 90]", []float64{0, -45, 45, 90}},
		{" 30 ", []float64{30}},
	}
	for _, tt := range tests {
		got, err := ParseLayup(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLayup("[]")
	assert.Error(t, err)
	_, err = ParseLayup("0/x")
	assert.Error(t, err)
}

func TestParseRow(t *testing.T) {
	in, err := ParseRow([]string{"0.6", "0.4", "0/45", "no", "500", "kevlar-epoxy"})
	require.NoError(t, err)
	assert.Equal(t, 0.6, in.Length)
	assert.False(t, in.Symmetric())
	assert.Equal(t, "kevlar-epoxy", in.Material)

	_, err = ParseRow([]string{"0.6", "0.4", "0/45"})
	assert.Error(t, err)
	_, err = ParseRow([]string{"0.6", "0.4", "0/45", "maybe", "500"})
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	rows, err := ReadRows(plates(t))
	require.NoError(t, err)

	res, err := Import(rows, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 2, res.Failed)

	require.Len(t, res.Results, 4)
	got := make([]int, len(res.Results))
	for i, item := range res.Results {
		got[i] = item.Row
	}
	assert.Equal(t, []int{2, 3, 4, 6}, got, "sheet rows, blank row skipped")

	assert.NotNil(t, res.Results[0].Result)
	assert.Greater(t, res.Results[1].Result.MaxDeflection, res.Results[0].Result.MaxDeflection)
	assert.Contains(t, res.Results[2].Error, "length")
	assert.Contains(t, res.Results[3].Error, "degenerate")
}

func TestReadRows_Invalid(t *testing.T) {
	_, err := ReadRows(bytes.NewBufferString("length,width\n1,2\n"))
	assert.ErrorIs(t, err, calc.ErrInvalidInput)

	_, err = ReadRows(sheet(t, [][]interface{}{{"length", "width", "layup", "sym", "load"}}))
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
}

func TestImport_Limit(t *testing.T) {
	rows := [][]string{Header}
	for i := 0; i <= batch.MaxItems; i++ {
		rows = append(rows, []string{"0.5", "0.5", "0", "", strconv.Itoa(i)})
	}
	_, err := Import(rows, nil)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
}

func TestWorkbook(t *testing.T) {
	in := bending.Input{Stack: bending.Stack{Layup: []float64{0, 90}}, Length: 0.5, Width: 0.4, Load: 1000}
	sol, err := bending.Solve(in, nil)
	require.NoError(t, err)

	f, err := Workbook(in, sol)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, deflectionSheet}, f.GetSheetList())

	grid, err := f.GetRows(deflectionSheet)
	require.NoError(t, err)
	assert.Len(t, grid, len(sol.Field.Y)+1)
	assert.Len(t, grid[0], len(sol.Field.X)+1)

	center, err := f.GetCellValue(deflectionSheet, cellName(t, len(sol.Field.X)/2+2, len(sol.Field.Y)/2+2))
	require.NoError(t, err)
	v, err := strconv.ParseFloat(center, 64)
	require.NoError(t, err)
	assert.InEpsilon(t, sol.Result.CenterDeflection, v, 1e-6)

	label, err := f.GetCellValue(summarySheet, "A12")
	require.NoError(t, err)
	assert.Equal(t, "Max deflection", label)
}

func cellName(t *testing.T, col, row int) string {
	t.Helper()
	name, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	return name
}

func upload(t *testing.T, target string, data *bytes.Buffer) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "plates.xlsx")
	require.NoError(t, err)
	_, err = part.Write(data.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_Import(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.Import(rec, upload(t, "/", plates(t)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res batch.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 2, res.Count)

	rec = httptest.NewRecorder()
	h.Import(rec, upload(t, "/?format=xlsx", plates(t)))
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	rec = httptest.NewRecorder()
	h.Import(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Export(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodPost, "/",
		bytes.NewBufferString(`{"length":0.5,"width":0.5,"layup":[0,90],"load":1000}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, f.GetSheetList(), deflectionSheet)

	rec = httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"length":0.5,"width":0.5,"layup":[0],"load":1,"method":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
