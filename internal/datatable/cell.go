package datatable

import (
	"fmt"

	"go.uber.org/zap"
)

// Placeholder is displayed for cells whose accessor or renderer failed or
// produced no value.
const Placeholder = "—"

// value runs the accessor for data[i], converting a panic into an error.
func (t *Table[T]) value(col Column[T], i int) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: column %q: %v", ErrCellFailed, col.Key, r)
			t.log.Warn("accessor panicked",
				zap.String("column", col.Key),
				zap.String("row", t.keys[i]),
				zap.Any("panic", r))
		}
	}()
	return col.Accessor(t.data[i]), nil
}

// Cell renders the display text of one cell. Failures are contained: the
// returned text is Placeholder and the error says why. A nil value renders
// as Placeholder without an error.
func (t *Table[T]) Cell(row T, key string) (string, error) {
	i, ok := t.colIndex[key]
	if !ok {
		return Placeholder, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	col := t.columns[i]

	text, err := renderCell(col, row)
	if err != nil {
		t.log.Warn("cell render failed",
			zap.String("column", key),
			zap.String("row", t.safeKey(row)),
			zap.Error(err))
		return Placeholder, err
	}
	return text, nil
}

// Value returns the raw accessor value of one cell, the value that sort,
// filter and export see. A panicking accessor yields an ErrCellFailed error.
func (t *Table[T]) Value(row T, key string) (v any, err error) {
	i, ok := t.colIndex[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: column %q: %v", ErrCellFailed, key, r)
		}
	}()
	return t.columns[i].Accessor(row), nil
}

// CellText is Cell without the error, for renderers.
func (t *Table[T]) CellText(row T, key string) string {
	text, _ := t.Cell(row, key)
	return text
}

func renderCell[T any](col Column[T], row T) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = Placeholder, fmt.Errorf("%w: column %q: %v", ErrCellFailed, col.Key, r)
		}
	}()
	v := col.Accessor(row)
	if col.Render != nil {
		text = col.Render(v, row)
	} else {
		if deref(v) == nil {
			return Placeholder, nil
		}
		text = Stringify(v)
	}
	if text == "" && deref(v) == nil {
		return Placeholder, nil
	}
	return text, nil
}

func (t *Table[T]) safeKey(row T) (key string) {
	defer func() {
		if recover() != nil {
			key = "?"
		}
	}()
	return t.keyFn(row)
}
