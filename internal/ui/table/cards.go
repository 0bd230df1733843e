package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/ui/styles"
)

const maxCardWidth = 72

// cardStyle keeps the border when colors are off.
func cardStyle(focused bool) lipgloss.Style {
	switch {
	case styles.NoColor():
		return lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	case focused:
		return styles.CardCursorStyle
	default:
		return styles.CardStyle
	}
}

// cardWidth is the content width inside border and padding.
func (m tableModel[T]) cardWidth() int {
	return max(min(m.width-2, maxCardWidth)-4, 10)
}

// cardHeight is the rendered height of one card.
func (m tableModel[T]) cardHeight(g grid) int {
	lines := len(g.keys)
	if m.tbl.Features().Selectable {
		lines++
	}
	return lines + 2
}

// cardLines renders the labeled fields of row r, one per line.
func (m tableModel[T]) cardLines(g grid, r int, focused bool) []string {
	width := m.cardWidth()
	labelWidth := 0
	for _, h := range g.headers {
		labelWidth = max(labelWidth, textWidth(h))
	}
	labelWidth = min(labelWidth, width/2)
	valueWidth := max(width-labelWidth-2, 1)

	var lines []string
	if m.tbl.Features().Selectable {
		lines = append(lines, styles.Checkbox(m.tbl.IsSelected(g.rowKeys[r])))
	}
	for i, h := range g.headers {
		label := styles.Render(styles.HeaderStyle, fit(h, labelWidth, datatable.AlignLeft))
		val := g.cells[r][i]
		text := fit(val, valueWidth, datatable.AlignLeft)
		switch {
		case focused && i == m.colCursor:
			text = styles.Render(styles.CursorCellStyle, text)
		case val == datatable.Placeholder:
			text = styles.Render(styles.PlaceholderStyle, text)
		case g.matches(r, i):
			text = styles.Render(styles.MatchStyle, text)
		}
		lines = append(lines, label+"  "+text)
	}
	return lines
}

// renderCards stacks one card per row, paged so the cursor card is visible.
func (m tableModel[T]) renderCards() string {
	g := buildGrid(m.tbl)
	if len(g.keys) == 0 {
		return "No columns"
	}

	avail := m.visibleRowCount() + 2 // cards reuse the header and separator lines
	perScreen := max(avail/m.cardHeight(g), 1)
	start := (m.cursor / perScreen) * perScreen
	end := min(start+perScreen, len(g.cells))

	var sb strings.Builder
	for r := start; r < end; r++ {
		focused := r == m.cursor
		card := cardStyle(focused).Width(m.cardWidth() + 2).Render(strings.Join(m.cardLines(g, r, focused), "\n"))
		sb.WriteString(card)
		sb.WriteString("\n")
	}

	caption := pageCaption(m.tbl.PageInfo())
	if len(g.cells) > perScreen {
		caption += fmt.Sprintf(" · card %d/%d", m.cursor+1, len(g.cells))
	}
	sb.WriteString(styles.MutedMsg(caption))
	return sb.String()
}

// renderDetail shows every column of the opened row, hidden ones included.
func (m tableModel[T]) renderDetail() string {
	row, ok := m.tbl.Row(m.currentKey())
	if !ok {
		return styles.MutedMsg("row no longer available")
	}

	cols := m.tbl.Columns()
	labelWidth := 0
	for _, c := range cols {
		labelWidth = max(labelWidth, textWidth(m.filterLabel(c.Key)))
	}

	lines := make([]string, 0, len(cols))
	for _, c := range cols {
		label := fit(m.filterLabel(c.Key), labelWidth, datatable.AlignLeft)
		val := sanitize(m.tbl.CellText(row, c.Key))
		if val == datatable.Placeholder {
			val = styles.Render(styles.PlaceholderStyle, val)
		}
		if !m.tbl.IsColumnVisible(c.Key) {
			label = styles.Render(styles.MutedStyle, label)
		} else {
			label = styles.Render(styles.HeaderStyle, label)
		}
		lines = append(lines, label+"  "+val)
	}
	width := max(min(m.width-2, maxCardWidth*2)-4, 10)
	return cardStyle(true).Width(width + 2).Render(strings.Join(lines, "\n"))
}
