package diagram

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"Orthos/internal/plate"
)

// Default image size and resolution for generated plots.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 5 * vg.Inch
	DefaultDPI    = 96
)

var seriesColors = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
}

// fieldGrid exposes a deflection field as plotter.GridXYZ. Columns run
// along x, rows along y.
type fieldGrid struct {
	f *plate.Field
}

func (g fieldGrid) Dims() (c, r int)   { return len(g.f.X), len(g.f.Y) }
func (g fieldGrid) Z(c, r int) float64 { return g.f.W[r][c] }
func (g fieldGrid) X(c int) float64    { return g.f.X[c] }
func (g fieldGrid) Y(r int) float64    { return g.f.Y[r] }

// DeflectionMap draws w(x, y) as a heat map. Values are shown in mm.
func DeflectionMap(f *plate.Field, title string) (*plot.Plot, error) {
	if f == nil || len(f.X) < 2 || len(f.Y) < 2 {
		return nil, fmt.Errorf("diagram: deflection field needs at least 2x2 points")
	}
	mm := &plate.Field{X: f.X, Y: f.Y, W: make([][]float64, len(f.W))}
	for j, row := range f.W {
		mm.W[j] = make([]float64, len(row))
		for i, w := range row {
			mm.W[j][i] = w * 1e3
		}
	}

	p := plot.New()
	if title == "" {
		title = "Deflection w(x, y)"
	}
	p.Title.Text = title + " [mm]"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	pal := palette.Heat(12, 1)
	h := plotter.NewHeatMap(fieldGrid{mm}, pal)
	if h.Min == h.Max {
		// flat field, e.g. zero load
		h.Max = h.Min + 1
	}
	p.Add(h)

	// legend swatches for the palette bounds
	colors := pal.Colors()
	low, _ := plotter.NewPolygon()
	low.Color = colors[0]
	high, _ := plotter.NewPolygon()
	high.Color = colors[len(colors)-1]
	p.Legend.Add(fmt.Sprintf("%.3g", h.Min), low)
	p.Legend.Add(fmt.Sprintf("%.3g", h.Max), high)
	p.Legend.Top = true

	p.X.Min, p.X.Max = f.X[0], f.X[len(f.X)-1]
	p.Y.Min, p.Y.Max = f.Y[0], f.Y[len(f.Y)-1]
	return p, nil
}

// Series is one named curve.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Curves draws one or more line series. With logX the x axis uses a log
// scale, which requires positive x values.
func Curves(title, xLabel, yLabel string, logX bool, series ...Series) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("diagram: no series to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	if logX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	for k, s := range series {
		if len(s.X) != len(s.Y) || len(s.X) == 0 {
			return nil, fmt.Errorf("diagram: series %q has %d x and %d y values", s.Name, len(s.X), len(s.Y))
		}
		pts := make(plotter.XYs, len(s.X))
		for i := range s.X {
			if logX && s.X[i] <= 0 {
				return nil, fmt.Errorf("diagram: series %q has non-positive x %g on a log axis", s.Name, s.X[i])
			}
			pts[i].X = s.X[i]
			pts[i].Y = s.Y[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = seriesColors[k%len(seriesColors)]
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}
	return p, nil
}

// WritePNG renders p as a PNG image.
func WritePNG(p *plot.Plot, w io.Writer, width, height vg.Length, dpi int) error {
	c := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("diagram: writing png: %w", err)
	}
	return nil
}

// PNG renders p with the default size and resolution.
func PNG(p *plot.Plot) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(p, &buf, DefaultWidth, DefaultHeight, DefaultDPI); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG writes p to filename, creating parent directories.
func SavePNG(p *plot.Plot, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WritePNG(p, bw, DefaultWidth, DefaultHeight, DefaultDPI); err != nil {
		return err
	}
	return bw.Flush()
}
