package datatable

import "fmt"

// VisibleColumns returns the shown columns in declaration order.
func (t *Table[T]) VisibleColumns() []Column[T] {
	out := make([]Column[T], 0, len(t.columns))
	for _, c := range t.columns {
		if !t.hidden[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// IsColumnVisible reports whether key is shown.
func (t *Table[T]) IsColumnVisible(key string) bool {
	_, ok := t.colIndex[key]
	return ok && !t.hidden[key]
}

// ToggleColumn shows or hides a column and returns its new visibility.
// The last visible column cannot be hidden.
func (t *Table[T]) ToggleColumn(key string) (bool, error) {
	if !t.features.ColumnToggle {
		return t.IsColumnVisible(key), featureErr("column toggle")
	}
	if _, ok := t.colIndex[key]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if t.hidden[key] {
		delete(t.hidden, key)
		return true, nil
	}
	if len(t.VisibleColumns()) == 1 {
		return true, ErrLastColumn
	}
	t.hidden[key] = true
	return false, nil
}

// SetVisibleColumns shows exactly the given keys.
func (t *Table[T]) SetVisibleColumns(keys []string) error {
	if !t.features.ColumnToggle {
		return featureErr("column toggle")
	}
	if len(keys) == 0 {
		return ErrLastColumn
	}
	show := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := t.colIndex[k]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, k)
		}
		show[k] = true
	}
	clear(t.hidden)
	for _, c := range t.columns {
		if !show[c.Key] {
			t.hidden[c.Key] = true
		}
	}
	return nil
}
