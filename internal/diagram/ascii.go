// Package diagram renders deflection maps and result curves as PNG images
// (gonum/plot) and as terminal charts (asciigraph).
package diagram

import (
	"github.com/guptarohit/asciigraph"

	"Orthos/internal/plate"
)

// Profile draws the deflection along x at mid-width, in mm.
func Profile(f *plate.Field, width int) string {
	row := f.Row(len(f.Y) / 2)
	data := make([]float64, len(row))
	for i, w := range row {
		data[i] = w * 1e3
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Caption("deflection at y = b/2 (mm)"),
	)
}

// ASCII draws one or more equally sampled series in the terminal.
func ASCII(caption string, width int, data ...[]float64) string {
	if len(data) == 1 {
		return asciigraph.Plot(data[0],
			asciigraph.Height(12),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		)
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(12),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green),
	)
}
