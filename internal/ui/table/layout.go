package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/ui/styles"
)

// ═══════════════════════════════════════════════════════════════════════════
// Constants
// ═══════════════════════════════════════════════════════════════════════════

const (
	defaultColWidth = 24
	minColWidth     = 3
	checkboxWidth   = 3
	ellipsis        = "…"
)

// ═══════════════════════════════════════════════════════════════════════════
// Page grid: the text of the displayed page
// ═══════════════════════════════════════════════════════════════════════════

// grid holds the visible columns and cell text of the current page.
type grid struct {
	keys      []string
	headers   []string
	aligns    []datatable.Align
	hints     []int // Column.Width
	natural   []int // widest header or cell
	rowKeys   []string
	cells     [][]string
	sortCol   int // index into keys, -1 when unsorted
	filterCol map[int]string
}

func buildGrid[T any](tbl *datatable.Table[T]) grid {
	cols := tbl.VisibleColumns()
	sort := tbl.Sort()
	filters := tbl.Filters()

	g := grid{
		keys:      make([]string, len(cols)),
		headers:   make([]string, len(cols)),
		aligns:    make([]datatable.Align, len(cols)),
		hints:     make([]int, len(cols)),
		natural:   make([]int, len(cols)),
		rowKeys:   tbl.RowKeys(),
		sortCol:   -1,
		filterCol: make(map[int]string),
	}
	for i, c := range cols {
		header := c.Header
		if header == "" {
			header = c.Key
		}
		if sort.Active() && sort.Key == c.Key {
			header += styles.SortIndicator(sort.Direction.String())
			g.sortCol = i
		}
		if q := filters[c.Key]; q != "" {
			g.filterCol[i] = strings.ToLower(q)
		}
		g.keys[i] = c.Key
		g.headers[i] = header
		g.aligns[i] = c.Align
		g.hints[i] = c.Width
		g.natural[i] = textWidth(header)
	}

	rows := tbl.Rows()
	g.cells = make([][]string, len(rows))
	for r, row := range rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			text := sanitize(tbl.CellText(row, c.Key))
			line[i] = text
			g.natural[i] = max(g.natural[i], textWidth(text))
		}
		g.cells[r] = line
	}
	return g
}

// width is the display width of column i; expanded columns ignore the cap.
func (g grid) width(i int, expanded bool) int {
	w := g.natural[i]
	if !expanded {
		limit := defaultColWidth
		if g.hints[i] > 0 {
			limit = g.hints[i]
		}
		w = min(w, limit)
	}
	return max(w, minColWidth)
}

// matches reports whether cell (r, i) contains the column's filter query.
func (g grid) matches(r, i int) bool {
	q, ok := g.filterCol[i]
	return ok && strings.Contains(strings.ToLower(g.cells[r][i]), q)
}

// ═══════════════════════════════════════════════════════════════════════════
// Text helpers
// ═══════════════════════════════════════════════════════════════════════════

// textWidth is the terminal width of plain text.
func textWidth(s string) int {
	return runewidth.StringWidth(s)
}

// sanitize keeps cell text on one line.
func sanitize(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}

// fit pads or truncates plain text to exactly width cells.
func fit(s string, width int, align datatable.Align) string {
	if width <= 0 {
		return ""
	}
	w := textWidth(s)
	if w > width {
		return runewidth.Truncate(s, width, ellipsis)
	}
	gap := width - w
	switch align {
	case datatable.AlignRight:
		return strings.Repeat(" ", gap) + s
	case datatable.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	}
	return s + strings.Repeat(" ", gap)
}

// viewport cuts visual columns [startX, startX+width) out of a styled line
// and pads the result to width.
func viewport(s string, startX, width int) string {
	if width <= 0 {
		return ""
	}
	if startX > 0 {
		s = ansi.TruncateLeft(s, startX, "")
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// clip shortens styled text to width cells.
func clip(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}
