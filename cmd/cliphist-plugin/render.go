package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)

type detail struct {
	label string
	value string
}

// renderDetails writes a title followed by aligned label: value rows.
func renderDetails(w io.Writer, title string, rows []detail) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r.label))
		fmt.Fprintf(w, "  %s%s  %s\n", labelStyle.Render(r.label+":"), pad, r.value)
	}
}

func status(ok bool, s string) string {
	if ok {
		return okStyle.Render(s)
	}
	return badStyle.Render(s)
}
