// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// DefaultTermWidth is used when the writer is not a terminal.
const DefaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Record kinds
	Kind       lipgloss.Style
	Token      lipgloss.Style
	Identifier lipgloss.Style
	Comment    lipgloss.Style
	Markup     lipgloss.Style
	String     lipgloss.Style
	Declared   lipgloss.Style
	SyntaxErr  lipgloss.Style
	LeafText   lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style

	FilePath lipgloss.Style
	Location lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
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

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Kind:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Token:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Identifier: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Comment:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Markup:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		String:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Declared:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		SyntaxErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		LeafText:   lipgloss.NewStyle(),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Kind:         plain,
		Token:        plain,
		Identifier:   plain,
		Comment:      plain,
		Markup:       plain,
		String:       plain,
		Declared:     plain,
		SyntaxErr:    plain,
		LeafText:     plain,
		Error:        plain,
		Warning:      plain,
		FilePath:     plain,
		Location:     plain,
		DiffHeader:   plain,
		DiffHunk:     plain,
		DiffAdd:      plain,
		DiffRemove:   plain,
		DiffContext:  plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// KindStyle picks the style used to print a record kind.
func (s *Styles) KindStyle(kind syntax.Kind) lipgloss.Style {
	switch kind.Family {
	case syntax.FamilyToken, syntax.FamilyEndOfFile:
		return s.Token
	case syntax.FamilyIdentifier:
		return s.Identifier
	case syntax.FamilyComment:
		return s.Comment
	case syntax.FamilyMarkupElement, syntax.FamilyMarkupSelfClosing,
		syntax.FamilyMarkupOpening, syntax.FamilyMarkupClosing:
		return s.Markup
	case syntax.FamilyString:
		return s.String
	case syntax.FamilyFunction, syntax.FamilyArrowFunction, syntax.FamilyExport:
		return s.Declared
	case syntax.FamilyError:
		return s.SyntaxErr
	default:
		return s.Kind
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

// TerminalWidth returns the column count of the terminal behind writer, or
// 0 when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}

// Truncate shortens text to at most width display cells, marking the cut
// with an ellipsis. A width of zero or less disables truncation.
func Truncate(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
