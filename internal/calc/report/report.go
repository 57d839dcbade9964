package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"Orthos/internal/calc/bending"
	"Orthos/internal/config"
	"Orthos/internal/diagram"
	"Orthos/internal/plate"
)

// Input is a bending request plus report metadata.
type Input struct {
	bending.Input
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

const scanModes = 10

// Write solves the plate and writes a PDF report to w.
func Write(w io.Writer, in Input, mats config.Materials) error {
	pdf, err := Build(in, mats, time.Now())
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// Build lays out the report. Core fonts only cover Latin-1, so symbols are
// spelled out.
func Build(in Input, mats config.Materials, date time.Time) (*gofpdf.Fpdf, error) {
	sol, err := bending.Solve(in.Input, mats)
	if err != nil {
		return nil, err
	}
	p := sol.Plate
	d := p.Stiffness()
	ncr, err := p.CriticalLoad(1, 1)
	if err != nil {
		return nil, err
	}
	gov, err := plate.GoverningMode(d, p.Length, p.Width, scanModes, scanModes)
	if err != nil {
		return nil, err
	}
	chart, err := diagram.DeflectionMap(sol.Field, "")
	if err != nil {
		return nil, err
	}
	img, err := diagram.PNG(chart)
	if err != nil {
		return nil, err
	}

	if in.Title == "" {
		in.Title = "Laminated Plate Report"
	}
	lam := p.Laminate
	m := lam.Material

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(in.Title, false)
	pdf.SetAuthor(in.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", in.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Material")
	rows(pdf, [][2]string{
		{"Name", m.Name},
		{"E1", fmt.Sprintf("%.4g GPa", m.E1/1e9)},
		{"E2", fmt.Sprintf("%.4g GPa", m.E2/1e9)},
		{"G12", fmt.Sprintf("%.4g GPa", m.G12/1e9)},
		{"nu12", fmt.Sprintf("%.3g", m.Nu12)},
		{"Ply thickness", fmt.Sprintf("%.4g mm", m.PlyThickness*1e3)},
	})

	section(pdf, "Laminate")
	rows(pdf, [][2]string{
		{"Stacking sequence (deg)", angles(lam.Sequence)},
		{"Plies", fmt.Sprintf("%d", len(lam.Sequence))},
		{"Thickness", fmt.Sprintf("%.4g mm", lam.Thickness*1e3)},
		{"Plate a x b", fmt.Sprintf("%.4g x %.4g m", p.Length, p.Width)},
	})
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Bending stiffness D (N m)")
	pdf.Ln(6)
	pdf.SetFont("Courier", "", 10)
	for _, row := range lam.D {
		pdf.Cell(0, 5, fmt.Sprintf("%12.5g %12.5g %12.5g", row[0], row[1], row[2]))
		pdf.Ln(5)
	}
	pdf.Ln(3)

	section(pdf, "Results")
	rows(pdf, [][2]string{
		{"Pressure q0", fmt.Sprintf("%.4g Pa", in.Load)},
		{"Max deflection", fmt.Sprintf("%.4g mm", sol.Result.MaxDeflection*1e3)},
		{"Center deflection", fmt.Sprintf("%.4g mm", sol.Result.CenterDeflection*1e3)},
		{"N_cr (m=1, n=1)", fmt.Sprintf("%.4g N/m", ncr)},
		{"Governing mode", fmt.Sprintf("m=%d, n=%d, N_cr=%.4g N/m", gov.M, gov.N, gov.Ncr)},
	})
	if sol.Result.Warning != "" {
		pdf.SetTextColor(180, 0, 0)
		pdf.MultiCell(0, 5, "Warning: "+sol.Result.Warning, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("deflection", opts, bytes.NewReader(img))
	pdf.ImageOptions("deflection", 15, pdf.GetY()+2, 120, 0, true, opts, 0, "")

	if in.Notes != "" {
		pdf.Ln(4)
		section(pdf, "Notes")
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return pdf, nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func rows(pdf *gofpdf.Fpdf, kv [][2]string) {
	for _, r := range kv {
		pdf.CellFormat(60, 6, r[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, r[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func angles(seq []float64) string {
	parts := make([]string, len(seq))
	for i, a := range seq {
		parts[i] = fmt.Sprintf("%g", a)
	}
	return "[" + strings.Join(parts, "/") + "]"
}
