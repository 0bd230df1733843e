package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/ui/styles"
)

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel[T]) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder

	sb.WriteString(m.renderTitle())
	sb.WriteString("\n")

	// Filter bar
	switch {
	case m.mode == tableModeFilter:
		sb.WriteString(fmt.Sprintf("%s: %s\n", m.filterLabel(m.filterKey), m.filterInput.View()))
	case len(m.tbl.Filters()) > 0:
		sb.WriteString(styles.MutedMsg("filter: "+m.describeFilters()) + "\n")
	default:
		sb.WriteString("\n")
	}

	switch {
	case m.mode == tableModeDetail:
		sb.WriteString(m.renderDetail())
	case m.tbl.IsEmpty():
		sb.WriteString(m.renderEmpty())
	case m.tbl.ViewMode() == datatable.ViewCards:
		sb.WriteString(m.renderCards())
	default:
		sb.WriteString(m.renderTable())
	}

	// Footer
	sb.WriteString("\n")
	switch {
	case m.statusMsg != "" && time.Now().Before(m.statusUntil):
		if m.statusErr {
			sb.WriteString(styles.Errorf("%s", m.statusMsg))
		} else {
			sb.WriteString(styles.SuccessMsg(m.statusMsg))
		}
	case m.mode == tableModeFilter:
		sb.WriteString(styles.MutedMsg("enter confirm  esc clear"))
	case m.mode == tableModeDetail:
		sb.WriteString(styles.MutedMsg("any key back"))
	default:
		sb.WriteString(styles.MutedMsg("↑↓←→ nav  s sort  / filter  space select  a page  n/p page  c hide  x expand  v layout  e export  y copy  J json  q quit"))
	}

	return sb.String()
}

func (m tableModel[T]) renderTitle() string {
	info := m.tbl.PageInfo()
	parts := []string{fmt.Sprintf("%d/%d rows", info.TotalRows, len(m.tbl.Data()))}
	if n := m.tbl.SelectedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if s := m.tbl.Sort(); s.Active() {
		parts = append(parts, fmt.Sprintf("by %s %s", m.filterLabel(s.Key), s.Direction))
	}
	if hidden := len(m.tbl.Columns()) - len(m.tbl.VisibleColumns()); hidden > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", hidden))
	}
	parts = append(parts, m.tbl.ViewMode().String())

	title := m.title
	if title == "" {
		title = "Table"
	}
	return styles.Render(styles.TitleStyle, title) + styles.MutedMsg("  "+strings.Join(parts, " · "))
}

func (m tableModel[T]) filterLabel(key string) string {
	if c, ok := m.tbl.Column(key); ok && c.Header != "" {
		return c.Header
	}
	return key
}

func (m tableModel[T]) describeFilters() string {
	filters := m.tbl.Filters()
	var parts []string
	for _, c := range m.tbl.Columns() {
		if q, ok := filters[c.Key]; ok {
			parts = append(parts, fmt.Sprintf("%s~%q", m.filterLabel(c.Key), q))
		}
	}
	return strings.Join(parts, " ")
}

func (m tableModel[T]) renderEmpty() string {
	lines := m.visibleRowCount() + 2
	msg := styles.Render(styles.PlaceholderStyle, m.tbl.EmptyState())
	box := lipgloss.Place(max(m.width-2, 1), lines, lipgloss.Center, lipgloss.Center, msg)
	return box + "\n" + styles.MutedMsg(pageCaption(m.tbl.PageInfo()))
}

// ═══════════════════════════════════════════════════════════════════════════
// Render Table
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel[T]) renderTable() string {
	var sb strings.Builder

	g := buildGrid(m.tbl)
	if len(g.keys) == 0 {
		return "No columns"
	}
	widths := m.colWidths(g)
	viewportWidth := m.width - 2

	sb.WriteString(viewport(m.headerLine(g, widths), m.scrollX, viewportWidth))
	sb.WriteString("\n")
	sb.WriteString(viewport(m.separatorLine(g, widths), m.scrollX, viewportWidth))
	sb.WriteString("\n")

	visibleRows := m.visibleRowCount()
	endRow := min(m.scrollY+visibleRows, len(g.cells))
	for r := m.scrollY; r < endRow; r++ {
		sb.WriteString(viewport(m.rowLine(g, widths, r), m.scrollX, viewportWidth))
		sb.WriteString("\n")
	}

	// Scroll indicators
	indicators := []string{pageCaption(m.tbl.PageInfo())}
	if m.scrollX > 0 {
		indicators = append(indicators, "◀")
	}
	if m.scrollX+viewportWidth < m.getTotalWidth(g) {
		indicators = append(indicators, "▶")
	}
	if m.scrollY > 0 {
		indicators = append(indicators, "▲")
	}
	if endRow < len(g.cells) {
		indicators = append(indicators, "▼")
	}
	sb.WriteString(styles.MutedMsg(strings.Join(indicators, " ")))

	return sb.String()
}

func (m tableModel[T]) headerLine(g grid, widths []int) string {
	var sb strings.Builder
	gap := strings.Repeat(" ", m.gap())

	if m.tbl.Features().Selectable {
		mark := styles.SymbolEmpty
		switch {
		case m.tbl.AllVisibleSelected():
			mark = styles.Render(styles.SelectedMarkStyle, styles.SymbolChecked)
		case m.pageHasSelection(g):
			mark = styles.Render(styles.SelectedMarkStyle, styles.SymbolPartial)
		}
		sb.WriteString(mark + gap)
	}

	for i, header := range g.headers {
		text := fit(header, widths[i], g.aligns[i])
		style := styles.HeaderStyle
		if i == g.sortCol {
			style = styles.SortedHeaderStyle
		}
		if i == m.colCursor {
			style = style.Underline(true)
		}
		sb.WriteString(styles.Render(style, text))
		sb.WriteString(gap)
	}
	return sb.String()
}

func (m tableModel[T]) separatorLine(g grid, widths []int) string {
	var sb strings.Builder
	gap := strings.Repeat(" ", m.gap())

	if m.tbl.Features().Selectable {
		sb.WriteString(styles.Render(styles.SeparatorStyle, strings.Repeat("─", checkboxWidth)) + gap)
	}
	for i := range g.keys {
		style := styles.SeparatorStyle
		if i == m.colCursor {
			style = styles.SortedHeaderStyle
		}
		sb.WriteString(styles.Render(style, strings.Repeat("─", widths[i])))
		sb.WriteString(gap)
	}
	return sb.String()
}

func (m tableModel[T]) rowLine(g grid, widths []int, r int) string {
	var sb strings.Builder
	features := m.tbl.Features()
	isCursor := r == m.cursor

	base := lipgloss.NewStyle()
	switch {
	case isCursor && features.Hoverable:
		base = styles.CursorRowStyle
	case features.Striped && r%2 == 1:
		base = styles.StripeStyle
	}
	gap := styles.Render(base, strings.Repeat(" ", m.gap()))

	if features.Selectable {
		mark := styles.SymbolEmpty
		if m.tbl.IsSelected(g.rowKeys[r]) {
			mark = styles.Render(styles.SelectedMarkStyle.Inherit(base), styles.SymbolChecked)
		} else {
			mark = styles.Render(base, mark)
		}
		sb.WriteString(mark + gap)
	}

	for i, val := range g.cells[r] {
		text := fit(val, widths[i], g.aligns[i])
		var style lipgloss.Style
		switch {
		case isCursor && i == m.colCursor:
			style = styles.CursorCellStyle
		case val == datatable.Placeholder:
			style = styles.PlaceholderStyle.Inherit(base)
		case g.matches(r, i):
			style = styles.MatchStyle.Inherit(base)
		default:
			style = base
		}
		sb.WriteString(styles.Render(style, text))
		sb.WriteString(gap)
	}
	return sb.String()
}

func (m tableModel[T]) pageHasSelection(g grid) bool {
	for _, k := range g.rowKeys {
		if m.tbl.IsSelected(k) {
			return true
		}
	}
	return false
}
