package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/addonkit/internal/plugin"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf(format, args...)))
}

func printDiagnostics(w io.Writer, diags []plugin.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	printTitle(w, "Diagnostics (%d)", len(diags))
	for _, d := range diags {
		style := warningStyle
		if d.Severity == plugin.SeverityError {
			style = errorStyle
		}
		fmt.Fprintf(w, "  %s %s\n", style.Render(string(d.Severity)), d.Message)
	}
}
