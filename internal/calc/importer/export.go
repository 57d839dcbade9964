package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"Orthos/internal/calc/batch"
	"Orthos/internal/calc/bending"
)

const (
	summarySheet    = "Summary"
	deflectionSheet = "Deflection"
	resultsSheet    = "Results"
)

// Workbook writes a solved plate: inputs and results on Summary, the full
// deflection grid (m) on Deflection with x across and y down.
func Workbook(in bending.Input, sol *bending.Solution) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	lam := sol.Plate.Laminate
	d := sol.Plate.Stiffness()
	summary := [][]interface{}{
		{"Quantity", "Value", "Unit"},
		{"Length a", sol.Plate.Length, "m"},
		{"Width b", sol.Plate.Width, "m"},
		{"Layup", fmt.Sprint(lam.Sequence), "deg"},
		{"Material", lam.Material.Name, ""},
		{"Thickness", lam.Thickness, "m"},
		{"Pressure q0", in.Load, "Pa"},
		{"D11", d.D11, "N m"},
		{"D12", d.D12, "N m"},
		{"D22", d.D22, "N m"},
		{"D66", d.D66, "N m"},
		{"Max deflection", sol.Result.MaxDeflection, "m"},
		{"Center deflection", sol.Result.CenterDeflection, "m"},
	}
	if sol.Result.Warning != "" {
		summary = append(summary, []interface{}{"Warning", sol.Result.Warning, ""})
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(deflectionSheet); err != nil {
		return nil, err
	}
	field := sol.Field
	header := make([]interface{}, 0, len(field.X)+1)
	header = append(header, "y \\ x")
	for _, x := range field.X {
		header = append(header, x)
	}
	grid := [][]interface{}{header}
	for j, y := range field.Y {
		row := make([]interface{}, 0, len(field.X)+1)
		row = append(row, y)
		for _, w := range field.W[j] {
			row = append(row, w)
		}
		grid = append(grid, row)
	}
	if err := writeRows(f, deflectionSheet, grid); err != nil {
		return nil, err
	}
	return f, nil
}

// ResultsWorkbook lists imported plates with their results or errors.
func ResultsWorkbook(res batch.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, err
	}
	rows := [][]interface{}{{"row", "max_deflection", "center_deflection", "warning", "error"}}
	for _, item := range res.Results {
		if item.Result == nil {
			rows = append(rows, []interface{}{item.Row, nil, nil, nil, item.Error})
			continue
		}
		rows = append(rows, []interface{}{item.Row, item.Result.MaxDeflection, item.Result.CenterDeflection, item.Result.Warning, nil})
	}
	if err := writeRows(f, resultsSheet, rows); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
