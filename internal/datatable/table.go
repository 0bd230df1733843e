// Package datatable implements a render-agnostic tabular data view.
//
// A Table owns column visibility, single-column sort, per-column text
// filters, row selection, a caller-owned pagination window and the
// table/cards view mode. The displayed rows are always derived from the
// caller's data through a fixed pipeline:
//
//	Rows() == paginate(sort(filter(data)))
//
// The caller's slice is never mutated. Selection is keyed by row key and
// resolves against the full data set, so a row hidden by a filter or on
// another page stays selected.
//
// A Table is not safe for concurrent use; it has exactly one owner, usually
// a UI event loop.
package datatable

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"
)

// DefaultEmptyState is shown when no rows survive filtering.
const DefaultEmptyState = "No results"

// Features are the behavioral flags of a table. Striped, Hoverable and
// Compact are rendering hints; the rest gate operations.
type Features struct {
	Sortable     bool
	Filterable   bool
	Selectable   bool
	Exportable   bool
	ColumnToggle bool
	Striped      bool
	Hoverable    bool
	Compact      bool
}

// DefaultFeatures enables every operation and hover highlighting.
func DefaultFeatures() Features {
	return Features{
		Sortable:     true,
		Filterable:   true,
		Selectable:   true,
		Exportable:   true,
		ColumnToggle: true,
		Hoverable:    true,
	}
}

// ActionVariant is a rendering hint for bulk action buttons.
type ActionVariant string

const (
	VariantDefault ActionVariant = "default"
	VariantPrimary ActionVariant = "primary"
	VariantDanger  ActionVariant = "danger"
)

// BulkAction operates on the selected rows.
type BulkAction[T any] struct {
	Label   string
	Variant ActionVariant
	OnClick func(selected []T)
}

// Options configures a Table. The zero value is valid: default features,
// no pagination, automatic view mode.
type Options[T any] struct {
	// Features defaults to DefaultFeatures() when nil.
	Features *Features
	// Pagination is caller owned; nil shows every row.
	Pagination *Pagination
	MobileView MobileView
	// Breakpoint defaults to DefaultBreakpoint.
	Breakpoint *Breakpoint
	// AutoClampPage moves CurrentPage back inside range when the filtered
	// set shrinks, and reports the move through OnPageChange.
	AutoClampPage bool
	// EmptyState defaults to DefaultEmptyState.
	EmptyState        string
	OnRowClick        func(row T)
	OnSelectionChange func(selected []T)
	BulkActions       []BulkAction[T]
	// Logger receives per-cell failures. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Table is the stateful view over a data set. Create it with New.
type Table[T any] struct {
	columns  []Column[T]
	colIndex map[string]int
	hidden   map[string]bool

	data     []T
	keyFn    KeyFunc[T]
	keys     []string
	rowIndex map[string]int

	features   Features
	sort       SortState
	filters    map[string]string
	selected   map[string]struct{}
	pagination *Pagination
	autoClamp  bool

	mobile     MobileView
	breakpoint Breakpoint
	mode       ViewMode
	measured   bool

	emptyState        string
	onRowClick        func(T)
	onSelectionChange func([]T)
	bulkActions       []BulkAction[T]
	log               *zap.Logger

	// derived holds indices into data after filter and sort.
	derived []int
}

// New validates the configuration and builds a table. Columns and the
// options are copied; data is referenced read-only.
func New[T any](columns []Column[T], data []T, key KeyFunc[T], opts Options[T]) (*Table[T], error) {
	if key == nil {
		return nil, configErr(ErrNilKeyFunc, "")
	}
	colIndex, err := validateColumns(columns)
	if err != nil {
		return nil, err
	}

	t := &Table[T]{
		columns:           slices.Clone(columns),
		colIndex:          colIndex,
		hidden:            make(map[string]bool),
		keyFn:             key,
		features:          DefaultFeatures(),
		filters:           make(map[string]string),
		selected:          make(map[string]struct{}),
		autoClamp:         opts.AutoClampPage,
		mobile:            opts.MobileView,
		breakpoint:        DefaultBreakpoint,
		mode:              ViewTable,
		emptyState:        DefaultEmptyState,
		onRowClick:        opts.OnRowClick,
		onSelectionChange: opts.OnSelectionChange,
		bulkActions:       slices.Clone(opts.BulkActions),
		log:               opts.Logger,
	}
	if opts.Features != nil {
		t.features = *opts.Features
	}
	if opts.Breakpoint != nil {
		t.breakpoint = *opts.Breakpoint
	}
	if opts.EmptyState != "" {
		t.emptyState = opts.EmptyState
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	if t.mobile == MobileCards {
		t.mode = ViewCards
	}
	if opts.Pagination != nil {
		if err := validatePagination(*opts.Pagination); err != nil {
			return nil, err
		}
		p := *opts.Pagination
		t.pagination = &p
	}
	if err := t.setData(data); err != nil {
		return nil, err
	}
	t.refresh()
	return t, nil
}

// Features returns the table's behavioral flags.
func (t *Table[T]) Features() Features {
	return t.features
}

// Columns returns every column in declaration order, hidden ones included.
func (t *Table[T]) Columns() []Column[T] {
	return slices.Clone(t.columns)
}

// Column looks up a column by key.
func (t *Table[T]) Column(key string) (Column[T], bool) {
	i, ok := t.colIndex[key]
	if !ok {
		return Column[T]{}, false
	}
	return t.columns[i], true
}

// Data returns the caller's rows in original order.
func (t *Table[T]) Data() []T {
	return t.data
}

// Key returns the row key of row.
func (t *Table[T]) Key(row T) string {
	return t.keyFn(row)
}

// Row resolves a row key against the full data set.
func (t *Table[T]) Row(key string) (T, bool) {
	i, ok := t.rowIndex[key]
	if !ok {
		var zero T
		return zero, false
	}
	return t.data[i], true
}

// SetData replaces the data set. Every derived view is recomputed and
// selected keys that no longer exist are dropped. On error the table keeps
// its previous data.
func (t *Table[T]) SetData(data []T) error {
	if err := t.setData(data); err != nil {
		return err
	}
	t.refresh()
	return nil
}

func (t *Table[T]) setData(data []T) error {
	keys := make([]string, len(data))
	index := make(map[string]int, len(data))
	for i, row := range data {
		k := t.keyFn(row)
		if prev, dup := index[k]; dup {
			return configErr(ErrDuplicateRowKey, fmt.Sprintf("%q (rows %d and %d)", k, prev, i))
		}
		keys[i] = k
		index[k] = i
	}
	t.data = data
	t.keys = keys
	t.rowIndex = index

	pruned := false
	for k := range t.selected {
		if _, ok := index[k]; !ok {
			delete(t.selected, k)
			pruned = true
		}
	}
	if pruned {
		t.notifySelection()
	}
	return nil
}

// SetColumns replaces the column set. Sort, filter and visibility state
// referring to removed keys is discarded.
func (t *Table[T]) SetColumns(columns []Column[T]) error {
	colIndex, err := validateColumns(columns)
	if err != nil {
		return err
	}
	t.columns = slices.Clone(columns)
	t.colIndex = colIndex

	if _, ok := colIndex[t.sort.Key]; !ok || !t.columns[colIndex[t.sort.Key]].Sortable {
		t.sort = SortState{}
	}
	for k := range t.filters {
		if i, ok := colIndex[k]; !ok || !t.columns[i].Filterable {
			delete(t.filters, k)
		}
	}
	for k := range t.hidden {
		if _, ok := colIndex[k]; !ok {
			delete(t.hidden, k)
		}
	}
	if len(t.VisibleColumns()) == 0 {
		clear(t.hidden)
	}
	t.refresh()
	return nil
}

// Reset clears sort, filters, selection and column visibility.
func (t *Table[T]) Reset() {
	t.sort = SortState{}
	clear(t.filters)
	clear(t.hidden)
	hadSelection := len(t.selected) > 0
	clear(t.selected)
	if hadSelection {
		t.notifySelection()
	}
	t.refresh()
}

// Filtered returns every row that passes the filters, in sort order, without
// pagination. This is the set that export writes.
func (t *Table[T]) Filtered() []T {
	out := make([]T, len(t.derived))
	for i, idx := range t.derived {
		out[i] = t.data[idx]
	}
	return out
}

// Rows returns the displayed rows: the current page of the filtered and
// sorted data.
func (t *Table[T]) Rows() []T {
	lo, hi := t.pageBounds()
	out := make([]T, 0, hi-lo)
	for _, idx := range t.derived[lo:hi] {
		out = append(out, t.data[idx])
	}
	return out
}

// RowKeys returns the keys of Rows(), in the same order.
func (t *Table[T]) RowKeys() []string {
	lo, hi := t.pageBounds()
	out := make([]string, 0, hi-lo)
	for _, idx := range t.derived[lo:hi] {
		out = append(out, t.keys[idx])
	}
	return out
}

// IsEmpty reports whether no rows survive filtering. This is a normal state,
// rendered with EmptyState.
func (t *Table[T]) IsEmpty() bool {
	return len(t.derived) == 0
}

// EmptyState returns the placeholder for an empty result.
func (t *Table[T]) EmptyState() string {
	return t.emptyState
}

// ClickRow invokes the row click callback for the row with the given key.
func (t *Table[T]) ClickRow(key string) error {
	row, ok := t.Row(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRow, key)
	}
	if t.onRowClick != nil {
		t.onRowClick(row)
	}
	return nil
}

// refresh recomputes the derived index list: filter in data order, then a
// stable sort. Ties therefore always keep input order.
func (t *Table[T]) refresh() {
	t.derived = t.filterIndices()
	t.sortIndices(t.derived)
	t.clampPage()
}

// Filters returns a copy of the active filter queries.
func (t *Table[T]) Filters() map[string]string {
	return maps.Clone(t.filters)
}
