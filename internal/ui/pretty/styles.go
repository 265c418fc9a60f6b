// Package pretty provides Lipgloss-based styled output utilities for the
// mdtree CLI.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style

	// Tree components.
	NodeKind lipgloss.Style
	NodeSpan lipgloss.Style
	NodeMeta lipgloss.Style
	Branch   lipgloss.Style

	// Misc.
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		NodeKind: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		NodeSpan: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		NodeMeta: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Branch:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:    plain,
		Success:  plain,
		NodeKind: plain,
		NodeSpan: plain,
		NodeMeta: plain,
		Branch:   plain,
		Dim:      plain,
		Bold:     plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
