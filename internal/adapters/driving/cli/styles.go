package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	// defaultWidth is the wrap width when the output is not a terminal.
	defaultWidth = 80

	// maxWidth keeps reading lines comfortable on wide terminals.
	maxWidth = 100
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5A50A"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9996"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E66100"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#26A269"))
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outputWidth returns the wrap width for w.
func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return min(width, maxWidth)
}

// render applies style only when w is a terminal, so piped output and
// tests see plain text.
func render(w io.Writer, style lipgloss.Style, s string) string {
	if !isTerminal(w) {
		return s
	}
	return style.Render(s)
}

// wrap word-wraps text to the width of a terminal w.
func wrap(w io.Writer, text string) string {
	if !isTerminal(w) {
		return text
	}
	return lipgloss.NewStyle().Width(outputWidth(w)).Render(text)
}
