package styles

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess  = "✓"
	SymbolWarning  = "⚠"
	SymbolSortAsc  = "▲"
	SymbolSortDesc = "▼"
	SymbolChecked  = "[x]"
	SymbolEmpty    = "[ ]"
	SymbolPartial  = "[-]"
)

var forceNoColor atomic.Bool

// SetNoColor disables colors regardless of the environment (--no-color).
func SetNoColor(v bool) {
	forceNoColor.Store(v)
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return forceNoColor.Load() || os.Getenv("NO_COLOR") != "" || os.Getenv("MOTOMIND_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: ASCII symbols, no animations
func IsAccessible() bool {
	return os.Getenv("MOTOMIND_ACCESSIBLE") == "1" || os.Getenv("MOTOMIND_ACCESSIBLE") == "true"
}

// Base text styles
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Underline = lipgloss.NewStyle().Underline(true)
)

// Semantic styles - use these instead of raw colors
var (
	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Table display
	TitleStyle        = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	HeaderStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	SortedHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSortedHeader)
	SeparatorStyle    = lipgloss.NewStyle().Foreground(Muted)
	CursorRowStyle    = lipgloss.NewStyle().Background(BgHighlight)
	CursorCellStyle   = lipgloss.NewStyle().Background(Accent).Foreground(lipgloss.Color("#000000"))
	StripeStyle       = lipgloss.NewStyle().Background(BgStripe)
	SelectedMarkStyle = lipgloss.NewStyle().Foreground(ColorSelected)
	MatchStyle        = lipgloss.NewStyle().Foreground(ColorFilterMatch)
	PlaceholderStyle  = lipgloss.NewStyle().Foreground(ColorPlaceholder)
	CardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(BgBorder).Padding(0, 1)
	CardCursorStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Accent).Padding(0, 1)

	// Diff display
	DiffAddLine     = lipgloss.NewStyle().Foreground(ColorDiffAdd)
	DiffRemoveLine  = lipgloss.NewStyle().Foreground(ColorDiffRemove)
	DiffContextLine = lipgloss.NewStyle().Foreground(ColorDiffContext)

	// Help bar
	HelpKey   = lipgloss.NewStyle().Foreground(Accent)
)

// ═══════════════════════════════════════════════════════════════════════════
// Render functions - centralized formatting with NoColor support
// ═══════════════════════════════════════════════════════════════════════════

// Render applies a style if colors are enabled
func Render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// SortIndicator returns the header suffix for a sort direction ("asc",
// "desc" or anything else for none).
func SortIndicator(direction string) string {
	ascii := IsAccessible()
	switch direction {
	case "asc":
		if ascii {
			return " ^"
		}
		return " " + SymbolSortAsc
	case "desc":
		if ascii {
			return " v"
		}
		return " " + SymbolSortDesc
	}
	return ""
}

// Checkbox renders a selection mark.
func Checkbox(checked bool) string {
	if checked {
		return Render(SelectedMarkStyle, SymbolChecked)
	}
	return SymbolEmpty
}

// Score colors a 0-100 completion score.
func Score(score int) string {
	text := fmt.Sprintf("%d%%", score)
	switch {
	case score >= 80:
		return Render(lipgloss.NewStyle().Foreground(ColorScoreHigh), text)
	case score >= 50:
		return Render(lipgloss.NewStyle().Foreground(ColorScoreMid), text)
	default:
		return Render(lipgloss.NewStyle().Foreground(ColorScoreLow), text)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", Render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return Render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", Render(WarningStyle, symbol), msg)
}

// InfoMsg formats an info message
func InfoMsg(msg string) string {
	return Render(InfoStyle, msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return Render(MutedStyle, msg)
}

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return Render(Bold, title)
}

// HelpLine formats a help line (key description)
func HelpLine(key, description string) string {
	return fmt.Sprintf("  %s %s", Render(HelpKey, key), Render(MutedStyle, description))
}

// Indent returns text indented by n spaces
func Indent(text string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func Green(s string) string { return Render(DiffAddLine, s) }
func Red(s string) string   { return Render(DiffRemoveLine, s) }
func Mute(s string) string  { return Render(MutedStyle, s) }

func Errorf(format string, a ...any) string { return Render(ErrorStyle, fmt.Sprintf(format, a...)) }
