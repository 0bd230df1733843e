package table

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/ui/styles"
	"github.com/motomind/motomind/internal/util"
	"github.com/motomind/motomind/internal/watch"
)

// Table mode
type tableMode int

const (
	tableModeNormal tableMode = iota
	tableModeFilter
	tableModeDetail
)

// Exit mode — what to do after quitting TUI
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitRaw
	exitPlain
)

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type tableModel[T any] struct {
	title     string
	tbl       *datatable.Table[T]
	pager     *Pager
	exportDir string
	reload    func() ([]T, error)
	log       *zap.Logger

	expanded  map[string]bool // columns shown at full width
	cursor    int             // row within the current page
	colCursor int             // index into the visible columns
	scrollX   int             // horizontal scroll offset in characters
	scrollY   int             // vertical scroll offset in rows
	width     int
	height    int
	ready     bool
	mode      tableMode
	exitMode  exitMode

	filterInput textinput.Model
	filterKey   string

	// Animation state for smooth scrolling
	animating   bool
	animTargetX int
	animTargetY int

	// Status message (flash notification, e.g. after yank)
	statusMsg   string
	statusErr   bool
	statusUntil time.Time
}

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type tableKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	ShiftLeft   key.Binding
	ShiftRight  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Sort        key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Toggle      key.Binding
	SelectPage  key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	HideColumn  key.Binding
	ShowColumns key.Binding
	Expand      key.Binding
	ViewMode    key.Binding
	Open        key.Binding
	Export      key.Binding
	Bulk        key.Binding
	Quit        key.Binding
	YankCell    key.Binding
	YankRow     key.Binding
	ExportJSON  key.Binding
	ExportRaw   key.Binding
	ExportPlain key.Binding
}

var tableKeys = tableKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	ShiftLeft:   key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("⇧←", "scroll half left")),
	ShiftRight:  key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("⇧→", "scroll half right")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "screen up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "screen down")),
	Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
	End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter column")),
	ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filters")),
	Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	SelectPage:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
	NextPage:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next page")),
	PrevPage:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev page")),
	HideColumn:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "hide column")),
	ShowColumns: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "show all columns")),
	Expand:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "expand column")),
	ViewMode:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "layout")),
	Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open row")),
	Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
	Bulk:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bulk action")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	YankCell:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
	YankRow:     key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row")),
	ExportJSON:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportRaw:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "print raw")),
	ExportPlain: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry Point
// ═══════════════════════════════════════════════════════════════════════════

// reloadMsg is sent by the file watcher.
type reloadMsg struct{}

func newTableModel[T any](tbl *datatable.Table[T], opts DisplayOptions[T]) tableModel[T] {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 100
	ti.Width = 30

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	return tableModel[T]{
		title:       opts.Title,
		tbl:         tbl,
		pager:       opts.Pager,
		exportDir:   exportDir,
		reload:      opts.Reload,
		log:         log,
		expanded:    make(map[string]bool),
		mode:        tableModeNormal,
		filterInput: ti,
		exitMode:    exitNormal,
	}
}

// Run launches the interactive viewer. It blocks until the user quits. If
// the user requests a print (J/R/P), the displayed page is written to the
// output after the TUI exits.
func Run[T any](tbl *datatable.Table[T], opts DisplayOptions[T]) error {
	m := newTableModel(tbl, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if opts.WatchPath != "" && opts.Reload != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		w, err := watch.New(opts.WatchPath, 0, func(string) { p.Send(reloadMsg{}) }, m.log)
		if err != nil {
			return fmt.Errorf("watching %s: %w", opts.WatchPath, err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watching %s: %w", opts.WatchPath, err)
		}
		defer w.Stop()
	}

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Check if user requested output after exit
	if fm, ok := finalModel.(tableModel[T]); ok {
		switch fm.exitMode {
		case exitJSON:
			return PrintJSON(opts.out(), tbl)
		case exitRaw:
			return PrintRaw(opts.out(), tbl)
		case exitPlain:
			PrintPlain(opts.out(), tbl)
		}
	}

	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel[T]) Init() tea.Cmd {
	return nil
}

func (m tableModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.tbl.Resize(msg.Width)
		m.clampCursor()

	case animTickMsg:
		cmd := m.updateAnimation()
		return m, cmd

	case statusClearMsg:
		// Clear the flash message if it has expired
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case reloadMsg:
		return m, m.reloadData()

	case tea.KeyMsg:
		// Cancel any ongoing animation when user presses a key
		m.cancelAnimation()

		switch m.mode {
		case tableModeFilter:
			return m.updateFilter(msg)
		case tableModeDetail:
			if key.Matches(msg, tableKeys.Quit) && msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.mode = tableModeNormal
			return m, nil
		}

		switch {
		case key.Matches(msg, tableKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, tableKeys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.ensureRowVisible()
			}

		case key.Matches(msg, tableKeys.Down):
			if m.cursor < m.rowCount()-1 {
				m.cursor++
				m.ensureRowVisible()
			}

		case key.Matches(msg, tableKeys.Left):
			m.moveLeft()

		case key.Matches(msg, tableKeys.Right):
			m.moveRight()

		case key.Matches(msg, tableKeys.ShiftLeft):
			cmd := m.startAnimation(m.scrollX-max(m.width/2, 1), m.scrollY)
			return m, cmd

		case key.Matches(msg, tableKeys.ShiftRight):
			cmd := m.startAnimation(m.scrollX+max(m.width/2, 1), m.scrollY)
			return m, cmd

		case key.Matches(msg, tableKeys.PageUp):
			m.cursor = max(m.cursor-m.visibleRowCount(), 0)
			m.ensureRowVisible()

		case key.Matches(msg, tableKeys.PageDown):
			m.cursor = max(min(m.cursor+m.visibleRowCount(), m.rowCount()-1), 0)
			m.ensureRowVisible()

		case key.Matches(msg, tableKeys.Home):
			m.cursor = 0
			m.scrollY = 0
			m.scrollX = 0

		case key.Matches(msg, tableKeys.End):
			if n := m.rowCount(); n > 0 {
				m.cursor = n - 1
				m.ensureRowVisible()
			}

		case key.Matches(msg, tableKeys.Sort):
			return m, m.toggleSort()

		case key.Matches(msg, tableKeys.Filter):
			return m, m.startFilter()

		case key.Matches(msg, tableKeys.ClearFilter):
			if len(m.tbl.Filters()) > 0 {
				m.tbl.ClearFilters()
				m.afterDerive()
				return m, m.setStatus("Filters cleared")
			}

		case key.Matches(msg, tableKeys.Toggle):
			return m, m.toggleRow()

		case key.Matches(msg, tableKeys.SelectPage):
			if err := m.tbl.ToggleSelectAllVisible(); err != nil {
				return m, m.setError(err)
			}

		case key.Matches(msg, tableKeys.NextPage):
			return m, m.turnPage(m.tbl.NextPage)

		case key.Matches(msg, tableKeys.PrevPage):
			return m, m.turnPage(m.tbl.PrevPage)

		case key.Matches(msg, tableKeys.HideColumn):
			return m, m.hideColumn()

		case key.Matches(msg, tableKeys.ShowColumns):
			if err := m.showAllColumns(); err != nil {
				return m, m.setError(err)
			}

		case key.Matches(msg, tableKeys.Expand):
			if k := m.focusedKey(); k != "" {
				m.expanded[k] = !m.expanded[k]
				m.ensureColVisible()
			}

		case key.Matches(msg, tableKeys.ViewMode):
			return m, m.cycleViewMode()

		case key.Matches(msg, tableKeys.Open):
			return m, m.openRow()

		case key.Matches(msg, tableKeys.Export):
			return m, m.exportCSV()

		case key.Matches(msg, tableKeys.Bulk):
			return m, m.runBulkAction()

		case key.Matches(msg, tableKeys.YankCell):
			return m, m.yankCell()

		case key.Matches(msg, tableKeys.YankRow):
			return m, m.yankRow()

		case key.Matches(msg, tableKeys.ExportJSON):
			m.exitMode = exitJSON
			return m, tea.Quit

		case key.Matches(msg, tableKeys.ExportRaw):
			m.exitMode = exitRaw
			return m, tea.Quit

		case key.Matches(msg, tableKeys.ExportPlain):
			m.exitMode = exitPlain
			return m, tea.Quit
		}
	}

	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Table operations
// ═══════════════════════════════════════════════════════════════════════════

func (m *tableModel[T]) toggleSort() tea.Cmd {
	k := m.focusedKey()
	if k == "" {
		return nil
	}
	state, err := m.tbl.ToggleSort(k)
	if err != nil {
		return m.setError(err)
	}
	m.afterDerive()
	if !state.Active() {
		return m.setStatus("Sort cleared")
	}
	return m.setStatus(fmt.Sprintf("Sorted by %s %s", m.focusedHeader(), state.Direction))
}

func (m *tableModel[T]) startFilter() tea.Cmd {
	k := m.focusedKey()
	if k == "" {
		return nil
	}
	col, _ := m.tbl.Column(k)
	if !m.tbl.Features().Filterable {
		return m.setError(datatable.ErrFeatureDisabled)
	}
	if !col.Filterable {
		return m.setError(fmt.Errorf("%w: %s", datatable.ErrNotFilterable, m.focusedHeader()))
	}
	m.mode = tableModeFilter
	m.filterKey = k
	m.filterInput.SetValue(m.tbl.Filters()[k])
	m.filterInput.CursorEnd()
	m.filterInput.Focus()
	return textinput.Blink
}

func (m tableModel[T]) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = tableModeNormal
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.tbl.ClearFilter(m.filterKey)
		m.afterDerive()
		return m, nil
	case tea.KeyEnter:
		m.mode = tableModeNormal
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)

	// Live filter as user types
	if err := m.tbl.SetFilter(m.filterKey, m.filterInput.Value()); err != nil {
		return m, m.setError(err)
	}
	m.afterDerive()
	return m, cmd
}

func (m *tableModel[T]) toggleRow() tea.Cmd {
	k := m.currentKey()
	if k == "" {
		return nil
	}
	if _, err := m.tbl.ToggleRow(k); err != nil {
		return m.setError(err)
	}
	if m.cursor < m.rowCount()-1 {
		m.cursor++
		m.ensureRowVisible()
	}
	return nil
}

func (m *tableModel[T]) turnPage(turn func() error) tea.Cmd {
	if err := turn(); err != nil {
		return m.setError(err)
	}
	changed, err := Sync(m.pager, m.tbl)
	if err != nil {
		return m.setError(err)
	}
	if changed {
		m.cursor = 0
		m.scrollY = 0
	}
	return nil
}

func (m *tableModel[T]) hideColumn() tea.Cmd {
	k := m.focusedKey()
	if k == "" {
		return nil
	}
	header := m.focusedHeader()
	if _, err := m.tbl.ToggleColumn(k); err != nil {
		return m.setError(err)
	}
	m.colCursor = min(m.colCursor, len(m.tbl.VisibleColumns())-1)
	m.ensureColVisible()
	return m.setStatus(fmt.Sprintf("Hid %s (C shows all)", header))
}

func (m *tableModel[T]) showAllColumns() error {
	cols := m.tbl.Columns()
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return m.tbl.SetVisibleColumns(keys)
}

func (m *tableModel[T]) cycleViewMode() tea.Cmd {
	next := map[datatable.MobileView]datatable.MobileView{
		datatable.MobileAuto:  datatable.MobileTable,
		datatable.MobileTable: datatable.MobileCards,
		datatable.MobileCards: datatable.MobileAuto,
	}[m.tbl.MobileView()]
	m.tbl.SetMobileView(next)
	m.tbl.Resize(m.width)
	m.scrollX, m.scrollY = 0, 0
	m.ensureRowVisible()
	return m.setStatus(fmt.Sprintf("Layout: %s (%s)", next, m.tbl.ViewMode()))
}

func (m *tableModel[T]) openRow() tea.Cmd {
	k := m.currentKey()
	if k == "" {
		return nil
	}
	if err := m.tbl.ClickRow(k); err != nil {
		return m.setError(err)
	}
	m.mode = tableModeDetail
	return nil
}

func (m *tableModel[T]) exportCSV() tea.Cmd {
	name := util.ExportFileName(exportBase(m.title))
	path, err := ExportFile(m.tbl, m.exportDir, name)
	if err != nil {
		m.log.Warn("export failed", zap.String("dir", m.exportDir), zap.Error(err))
		return m.setError(err)
	}
	return m.setStatus(fmt.Sprintf("Exported %d rows to %s", m.tbl.PageInfo().TotalRows, path))
}

func (m *tableModel[T]) runBulkAction() tea.Cmd {
	actions := m.tbl.BulkActions()
	if len(actions) == 0 {
		return m.setError(errors.New("no bulk actions"))
	}
	n := m.tbl.SelectedCount()
	if n == 0 {
		return m.setError(errors.New("nothing selected"))
	}
	if err := m.tbl.RunBulkAction(actions[0].Label); err != nil {
		return m.setError(err)
	}
	return m.setStatus(fmt.Sprintf("%s: %d rows", actions[0].Label, n))
}

func (m *tableModel[T]) reloadData() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	data, err := m.reload()
	if err != nil {
		m.log.Warn("reload failed", zap.Error(err))
		return m.setError(fmt.Errorf("reload: %w", err))
	}
	if err := m.tbl.SetData(data); err != nil {
		m.log.Warn("reload rejected", zap.Error(err))
		return m.setError(fmt.Errorf("reload: %w", err))
	}
	m.afterDerive()
	return m.setStatus(fmt.Sprintf("Reloaded %d rows", len(data)))
}

// afterDerive runs after anything that changes the derived rows: echoes a
// clamped page back to the table and keeps the cursor on the page.
func (m *tableModel[T]) afterDerive() {
	if _, err := Sync(m.pager, m.tbl); err != nil {
		m.log.Warn("page sync failed", zap.Error(err))
	}
	m.clampCursor()
}

func (m *tableModel[T]) clampCursor() {
	n := m.rowCount()
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.scrollY > m.getMaxScrollY() {
		m.scrollY = m.getMaxScrollY()
	}
	m.colCursor = max(min(m.colCursor, len(m.tbl.VisibleColumns())-1), 0)
	m.ensureRowVisible()
}

func exportBase(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, base)
	if base == "" {
		base = "export"
	}
	return base + ".csv"
}

// ═══════════════════════════════════════════════════════════════════════════
// Row / Column Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel[T]) rowCount() int {
	return len(m.tbl.RowKeys())
}

func (m tableModel[T]) currentKey() string {
	keys := m.tbl.RowKeys()
	if m.cursor < 0 || m.cursor >= len(keys) {
		return ""
	}
	return keys[m.cursor]
}

func (m tableModel[T]) focusedKey() string {
	cols := m.tbl.VisibleColumns()
	if m.colCursor < 0 || m.colCursor >= len(cols) {
		return ""
	}
	return cols[m.colCursor].Key
}

func (m tableModel[T]) focusedHeader() string {
	cols := m.tbl.VisibleColumns()
	if m.colCursor < 0 || m.colCursor >= len(cols) {
		return ""
	}
	if cols[m.colCursor].Header != "" {
		return cols[m.colCursor].Header
	}
	return cols[m.colCursor].Key
}

func (m tableModel[T]) gap() int {
	if m.tbl.Features().Compact {
		return 1
	}
	return 2
}

// prefixWidth is the selection checkbox column.
func (m tableModel[T]) prefixWidth() int {
	if m.tbl.Features().Selectable {
		return checkboxWidth + m.gap()
	}
	return 0
}

func (m tableModel[T]) colWidths(g grid) []int {
	widths := make([]int, len(g.keys))
	for i, k := range g.keys {
		widths[i] = g.width(i, m.expanded[k])
	}
	return widths
}

func (m tableModel[T]) getColStartX(g grid, colIdx int) int {
	widths := m.colWidths(g)
	x := m.prefixWidth()
	for i := 0; i < colIdx && i < len(widths); i++ {
		x += widths[i] + m.gap()
	}
	return x
}

func (m tableModel[T]) getColEndX(g grid, colIdx int) int {
	if colIdx >= len(g.keys) {
		return m.getColStartX(g, colIdx)
	}
	return m.getColStartX(g, colIdx) + m.colWidths(g)[colIdx]
}

func (m tableModel[T]) getTotalWidth(g grid) int {
	return m.getColStartX(g, len(g.keys))
}

func (m tableModel[T]) getMaxScrollX() int {
	maxX := m.getTotalWidth(buildGrid(m.tbl)) - m.width + 2
	if maxX < 0 {
		return 0
	}
	return maxX
}

func (m tableModel[T]) getMaxScrollY() int {
	maxY := m.rowCount() - m.visibleRowCount()
	if maxY < 0 {
		return 0
	}
	return maxY
}

func (m tableModel[T]) visibleRowCount() int {
	count := m.height - 6 // title, filter bar, header, separator, indicators, footer
	if count < 1 {
		count = 1
	}
	return count
}

// ═══════════════════════════════════════════════════════════════════════════
// Animation
// ═══════════════════════════════════════════════════════════════════════════

type animTickMsg time.Time

const animationFrameInterval = 16 * time.Millisecond
const animationFraction = 0.25
const animationSnapThreshold = 1

func animTick() tea.Cmd {
	return tea.Tick(animationFrameInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

func (m *tableModel[T]) startAnimation(targetX, targetY int) tea.Cmd {
	targetX = max(min(targetX, m.getMaxScrollX()), 0)
	targetY = max(min(targetY, m.getMaxScrollY()), 0)

	m.animTargetX = targetX
	m.animTargetY = targetY

	if targetX == m.scrollX && targetY == m.scrollY {
		m.animating = false
		return nil
	}
	if styles.IsAccessible() {
		m.scrollX, m.scrollY = targetX, targetY
		return nil
	}

	if !m.animating {
		m.animating = true
		return animTick()
	}
	return nil
}

func (m *tableModel[T]) updateAnimation() tea.Cmd {
	if !m.animating {
		return nil
	}

	remainingX := m.animTargetX - m.scrollX
	remainingY := m.animTargetY - m.scrollY

	if abs(remainingX) <= animationSnapThreshold && abs(remainingY) <= animationSnapThreshold {
		m.scrollX = m.animTargetX
		m.scrollY = m.animTargetY
		m.animating = false
		return nil
	}

	m.scrollX += step(remainingX)
	m.scrollY += step(remainingY)
	return animTick()
}

// step moves a fraction of the remaining distance, at least one cell.
func step(remaining int) int {
	if remaining == 0 {
		return 0
	}
	d := int(float64(remaining) * animationFraction)
	if d == 0 {
		if remaining > 0 {
			return 1
		}
		return -1
	}
	return d
}

func (m *tableModel[T]) cancelAnimation() {
	m.animating = false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ═══════════════════════════════════════════════════════════════════════════
// Status Message (flash notification)
// ═══════════════════════════════════════════════════════════════════════════

type statusClearMsg struct{}

const statusDuration = 2 * time.Second

// setStatus sets a temporary status message that auto-clears.
func (m *tableModel[T]) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = false
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

func (m *tableModel[T]) setError(err error) tea.Cmd {
	cmd := m.setStatus(err.Error())
	m.statusErr = true
	return cmd
}

// ═══════════════════════════════════════════════════════════════════════════
// Clipboard (yank)
// ═══════════════════════════════════════════════════════════════════════════

// yankCell copies the raw value of the focused cell to the clipboard.
func (m *tableModel[T]) yankCell() tea.Cmd {
	row, ok := m.tbl.Row(m.currentKey())
	k := m.focusedKey()
	if !ok || k == "" {
		return nil
	}
	v, err := m.tbl.Value(row, k)
	if err != nil {
		return m.setError(err)
	}
	val := datatable.Stringify(v)
	if err := clipboard.WriteAll(val); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied: %s", clip(sanitize(val), 40)))
}

// yankRow copies the visible cells of the current row (tab-separated).
func (m *tableModel[T]) yankRow() tea.Cmd {
	row, ok := m.tbl.Row(m.currentKey())
	if !ok {
		return nil
	}
	cols := m.tbl.VisibleColumns()
	fields := make([]string, len(cols))
	for i, c := range cols {
		if v, err := m.tbl.Value(row, c.Key); err == nil {
			fields[i] = datatable.Stringify(v)
		}
	}
	if err := clipboard.WriteAll(strings.Join(fields, "\t")); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied row (%d columns)", len(fields)))
}

// ═══════════════════════════════════════════════════════════════════════════
// Scroll Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m *tableModel[T]) moveLeft() {
	if m.tbl.ViewMode() == datatable.ViewCards {
		m.colCursor = max(m.colCursor-1, 0)
		return
	}
	g := buildGrid(m.tbl)
	colStartX := m.getColStartX(g, m.colCursor)

	if colStartX < m.scrollX {
		m.scrollX = max(m.scrollX-3, colStartX, 0)
	} else if m.colCursor > 0 {
		m.colCursor--
		m.ensureColVisible()
	}
}

func (m *tableModel[T]) moveRight() {
	n := len(m.tbl.VisibleColumns())
	if m.tbl.ViewMode() == datatable.ViewCards {
		m.colCursor = min(m.colCursor+1, n-1)
		return
	}
	g := buildGrid(m.tbl)
	colEndX := m.getColEndX(g, m.colCursor)
	viewportEndX := m.scrollX + m.width - 2

	if colEndX > viewportEndX {
		m.scrollX = min(m.scrollX+3, m.getMaxScrollX())
	} else if m.colCursor < n-1 {
		m.colCursor++
		m.ensureColVisible()
	}
}

func (m *tableModel[T]) ensureRowVisible() {
	visibleRows := m.visibleRowCount()
	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	} else if m.cursor >= m.scrollY+visibleRows {
		m.scrollY = m.cursor - visibleRows + 1
	}
}

func (m *tableModel[T]) ensureColVisible() {
	g := buildGrid(m.tbl)
	colStartX := m.getColStartX(g, m.colCursor)
	colEndX := m.getColEndX(g, m.colCursor)
	colWidth := colEndX - colStartX
	viewportWidth := m.width - 2

	if colStartX < m.scrollX {
		m.scrollX = colStartX
	} else if colEndX > m.scrollX+viewportWidth {
		if colWidth <= viewportWidth {
			m.scrollX = colEndX - viewportWidth
		} else {
			m.scrollX = colStartX
		}
	}

	m.scrollX = max(min(m.scrollX, m.getMaxScrollX()), 0)
}
