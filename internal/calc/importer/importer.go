package importer

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Orthos/internal/calc"
	"Orthos/internal/calc/batch"
	"Orthos/internal/calc/bending"
	"Orthos/internal/config"
)

// Columns of an import sheet; the first row is a header.
var Header = []string{"length", "width", "layup", "sym", "load", "material"}

// ReadRows returns the rows of the first sheet of an XLSX workbook.
func ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not an xlsx workbook: %v", calc.ErrInvalidInput, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet has no data rows", calc.ErrInvalidInput)
	}
	return rows, nil
}

// ParseRow reads one data row: length, width, layup ("0/90/45"), sym,
// load and an optional material preset. Empty sym means true.
func ParseRow(row []string) (bending.Input, error) {
	if len(row) < 5 {
		return bending.Input{}, fmt.Errorf("expected at least 5 columns, got %d", len(row))
	}
	length, err := toFloat(row[0])
	if err != nil {
		return bending.Input{}, fmt.Errorf("length: %w", err)
	}
	width, err := toFloat(row[1])
	if err != nil {
		return bending.Input{}, fmt.Errorf("width: %w", err)
	}
	layup, err := ParseLayup(row[2])
	if err != nil {
		return bending.Input{}, err
	}
	sym := true
	if s := strings.TrimSpace(row[3]); s != "" {
		sym, err = strconv.ParseBool(strings.ToLower(s))
		if err != nil {
			return bending.Input{}, fmt.Errorf("sym: %q is not a boolean", row[3])
		}
	}
	load, err := toFloat(row[4])
	if err != nil {
		return bending.Input{}, fmt.Errorf("load: %w", err)
	}
	in := bending.Input{
		Stack:  bending.Stack{Layup: layup, Sym: &sym},
		Length: length,
		Width:  width,
		Load:   load,
	}
	if len(row) > 5 {
		in.Material = strings.TrimSpace(row[5])
	}
	return in, nil
}

// ParseLayup reads angles separated by "/" or ",", optionally in brackets.
func ParseLayup(s string) ([]float64, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == ',' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("layup: no ply angles in %q", s)
	}
	angles := make([]float64, len(fields))
	for i, f := range fields {
		a, err := toFloat(f)
		if err != nil {
			return nil, fmt.Errorf("layup: %w", err)
		}
		angles[i] = a
	}
	return angles, nil
}

func toFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// Import parses every data row and solves the valid ones. Rows that fail
// to parse or solve are reported with their sheet row number.
func Import(rows [][]string, mats config.Materials) (batch.Result, error) {
	var inputs []bending.Input
	var lines []int
	var failed []batch.Item
	for i, row := range rows[1:] {
		line := i + 2
		if blank(row) {
			continue
		}
		in, err := ParseRow(row)
		if err != nil {
			failed = append(failed, batch.Item{Row: line, Error: err.Error()})
			continue
		}
		inputs = append(inputs, in)
		lines = append(lines, line)
	}
	if len(inputs)+len(failed) > batch.MaxItems {
		return batch.Result{}, fmt.Errorf("%w: %d rows exceed the limit of %d", calc.ErrInvalidInput, len(inputs)+len(failed), batch.MaxItems)
	}

	res := batch.Evaluate(inputs, lines, mats)
	res.Failed += len(failed)
	res.Results = append(res.Results, failed...)
	sort.SliceStable(res.Results, func(i, j int) bool {
		return res.Results[i].Row < res.Results[j].Row
	})
	return res, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
