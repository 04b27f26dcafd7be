package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var nameStyle = lipgloss.NewStyle().Bold(true)

// styledOutput reports whether stdout is an interactive terminal.
// Piped output stays free of escape sequences.
func styledOutput() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// highlight bolds a name when writing to a terminal.
func highlight(s string) string {
	if !styledOutput() {
		return s
	}
	return nameStyle.Render(s)
}

// snippet flattens whitespace and truncates to n characters.
func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
