// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the renderers used by text, diff and summary output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Per-file status
	FilePath  lipgloss.Style
	Changed   lipgloss.Style
	Formatted lipgloss.Style
	Unchanged lipgloss.Style
	Skipped   lipgloss.Style

	// Unified diff
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// palette maps roles to ANSI colors. The zero palette renders plain text.
type palette struct {
	red, yellow, green, blue, cyan, grey lipgloss.TerminalColor

	emphasis bool
}

func ansiPalette() palette {
	return palette{
		red:      lipgloss.Color("9"),
		yellow:   lipgloss.Color("11"),
		green:    lipgloss.Color("10"),
		blue:     lipgloss.Color("12"),
		cyan:     lipgloss.Color("14"),
		grey:     lipgloss.Color("8"),
		emphasis: true,
	}
}

func plainPalette() palette {
	none := lipgloss.NoColor{}
	return palette{red: none, yellow: none, green: none, blue: none, cyan: none, grey: none}
}

// NewStyles creates the output styles, colored or plain.
func NewStyles(colorEnabled bool) *Styles {
	p := plainPalette()
	if colorEnabled {
		p = ansiPalette()
	}

	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	strong := func(c lipgloss.TerminalColor) lipgloss.Style { return fg(c).Bold(p.emphasis) }
	bold := lipgloss.NewStyle().Bold(p.emphasis)

	return &Styles{
		Error:   strong(p.red),
		Warning: strong(p.yellow),
		Info:    strong(p.blue),

		FilePath:  bold,
		Changed:   fg(p.yellow),
		Formatted: fg(p.green),
		Unchanged: fg(p.grey),
		Skipped:   fg(p.grey).Italic(p.emphasis),

		DiffHeader:  bold,
		DiffHunk:    fg(p.cyan),
		DiffAdd:     fg(p.green),
		DiffRemove:  fg(p.red),
		DiffContext: fg(p.grey),

		SummaryTitle: bold,
		SummaryValue: lipgloss.NewStyle(),
		Success:      strong(p.green),
		Failure:      strong(p.red),

		Dim:  fg(p.grey),
		Bold: bold,
	}
}

// IsColorEnabled resolves a color mode ("auto", "always" or "never") for
// writer. FORCE_COLOR turns color on unless the mode is "never"; in auto
// mode NO_COLOR turns it off, and otherwise only terminals get color.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch {
	case mode == "never":
		return false
	case mode == "always", os.Getenv("FORCE_COLOR") != "":
		return true
	case os.Getenv("NO_COLOR") != "":
		return false
	}

	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
