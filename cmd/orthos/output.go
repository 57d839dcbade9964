package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"Orthos/internal/laminate"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func header(w io.Writer, title string) {
	fmt.Fprintln(w, headerStyle.Render(title))
}

func field(w io.Writer, label, format string, args ...any) {
	fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(fmt.Sprintf(format, args...)))
}

func warn(w io.Writer, msg string) {
	if msg != "" {
		fmt.Fprintln(w, warnStyle.Render("warning: "+msg))
	}
}

func printMatrix(w io.Writer, m laminate.Matrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range m {
		fmt.Fprintf(tw, "%.4g\t%.4g\t%.4g\t\n", row[0], row[1], row[2])
	}
	return tw.Flush()
}
