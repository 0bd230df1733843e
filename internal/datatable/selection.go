package datatable

import (
	"fmt"
	"slices"
)

// IsSelected reports whether the row with key is selected, regardless of
// whether it is currently visible.
func (t *Table[T]) IsSelected(key string) bool {
	_, ok := t.selected[key]
	return ok
}

// SelectedCount returns the number of selected rows.
func (t *Table[T]) SelectedCount() int {
	return len(t.selected)
}

// SelectedKeys returns the selected keys in data order.
func (t *Table[T]) SelectedKeys() []string {
	out := make([]string, 0, len(t.selected))
	for _, k := range t.keys {
		if _, ok := t.selected[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// SelectedRows resolves the selection against the full data set, in data
// order.
func (t *Table[T]) SelectedRows() []T {
	out := make([]T, 0, len(t.selected))
	for i, k := range t.keys {
		if _, ok := t.selected[k]; ok {
			out = append(out, t.data[i])
		}
	}
	return out
}

// ToggleRow flips the selection of one row and reports the new state.
func (t *Table[T]) ToggleRow(key string) (bool, error) {
	if err := t.checkSelectable(key); err != nil {
		return false, err
	}
	_, on := t.selected[key]
	if on {
		delete(t.selected, key)
	} else {
		t.selected[key] = struct{}{}
	}
	t.notifySelection()
	return !on, nil
}

// SelectRows adds rows to the selection.
func (t *Table[T]) SelectRows(keys ...string) error {
	return t.setSelected(keys, true)
}

// DeselectRows removes rows from the selection.
func (t *Table[T]) DeselectRows(keys ...string) error {
	return t.setSelected(keys, false)
}

func (t *Table[T]) setSelected(keys []string, on bool) error {
	for _, k := range keys {
		if err := t.checkSelectable(k); err != nil {
			return err
		}
	}
	changed := false
	for _, k := range keys {
		_, was := t.selected[k]
		switch {
		case on && !was:
			t.selected[k] = struct{}{}
			changed = true
		case !on && was:
			delete(t.selected, k)
			changed = true
		}
	}
	if changed {
		t.notifySelection()
	}
	return nil
}

// AllVisibleSelected reports whether every row on the current page is
// selected. It is false for an empty page.
func (t *Table[T]) AllVisibleSelected() bool {
	keys := t.RowKeys()
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if _, ok := t.selected[k]; !ok {
			return false
		}
	}
	return true
}

// ToggleSelectAllVisible is the header checkbox. It only affects the rows
// currently displayed (after filter, sort and pagination): when all of them
// are selected they are deselected, otherwise they are all selected. Rows on
// other pages keep their state.
func (t *Table[T]) ToggleSelectAllVisible() error {
	if !t.features.Selectable {
		return featureErr("select")
	}
	keys := t.RowKeys()
	if t.AllVisibleSelected() {
		return t.DeselectRows(keys...)
	}
	return t.SelectRows(keys...)
}

// ClearSelection deselects everything.
func (t *Table[T]) ClearSelection() {
	if len(t.selected) == 0 {
		return
	}
	clear(t.selected)
	t.notifySelection()
}

// BulkActions returns the configured bulk actions.
func (t *Table[T]) BulkActions() []BulkAction[T] {
	return slices.Clone(t.bulkActions)
}

// RunBulkAction invokes the action with the given label on the selected rows.
func (t *Table[T]) RunBulkAction(label string) error {
	for _, a := range t.bulkActions {
		if a.Label != label {
			continue
		}
		if a.OnClick != nil {
			a.OnClick(t.SelectedRows())
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, label)
}

func (t *Table[T]) checkSelectable(key string) error {
	if !t.features.Selectable {
		return featureErr("select")
	}
	if _, ok := t.rowIndex[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRow, key)
	}
	return nil
}

func (t *Table[T]) notifySelection() {
	if t.onSelectionChange != nil {
		t.onSelectionChange(t.SelectedRows())
	}
}
