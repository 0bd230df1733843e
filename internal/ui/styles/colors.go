package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
// Dark mode optimized, semantic colors
var (
	// Primary semantic colors
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - success, additions
	Warning = lipgloss.Color("#F59E0B") // amber-500 - warnings, filter matches
	Error   = lipgloss.Color("#EF4444") // red-500 - errors, deletions
	Info    = lipgloss.Color("#3B82F6") // blue-500 - headers, links
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	// Background colors
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - cursor row
	BgStripe    = lipgloss.Color("#111827") // gray-900 - striped rows
	BgBorder    = lipgloss.Color("#374151") // gray-700 - borders
)

// Semantic color aliases for clarity
var (
	// Table chrome
	ColorHeader       = Info
	ColorSortedHeader = Accent
	ColorSelected     = Success
	ColorFilterMatch  = Warning
	ColorPlaceholder  = Muted

	// Completion score bands
	ColorScoreHigh = Success
	ColorScoreMid  = Warning
	ColorScoreLow  = Error

	// Diff colors
	ColorDiffAdd     = Success // Added lines
	ColorDiffRemove  = Error   // Removed lines
	ColorDiffContext = Muted   // Context lines
)
