// Package diagnostics renders Locate's suspect Ranges for a terminal: a
// styled caret-margin view of each range's source lines, and a unified diff
// of the file with those ranges excised.
//
// It is grounded on yaklabco-gomdlint/internal/ui/pretty (Styles,
// FormatSourceContext, IsColorEnabled) and
// edward-ap-class-collector/internal/diff (go-difflib wiring), scaled down
// from a multi-rule lint-diagnostic renderer to one that only ever has a
// line range and a "this is the suspect block" message to show.
package diagnostics

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the styled renderers diagnostics output uses.
type Styles struct {
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	Dim lipgloss.Style
}

// NewStyles returns Styles with ANSI colors if colorEnabled, plain otherwise.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		FilePath:    plain,
		Location:    plain,
		Message:     plain,
		SourceLine:  plain,
		Caret:       plain,
		DiffHeader:  plain,
		DiffHunk:    plain,
		DiffAdd:     plain,
		DiffRemove:  plain,
		DiffContext: plain,
		Dim:         plain,
	}
}

// IsColorEnabled decides whether color should be used for writer given mode
// ("auto", "always", "never"). In "auto" mode it honors NO_COLOR and checks
// whether writer is a terminal.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
