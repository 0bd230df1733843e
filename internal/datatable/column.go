package datatable

import (
	"fmt"
	"strings"
)

// Align is the horizontal alignment hint for a column.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlign parses "left", "center" or "right" (empty means left).
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("invalid alignment %q (want left, center or right)", s)
}

// Column describes how to extract, label and render one field of a row.
type Column[T any] struct {
	// Key identifies the column; unique within a table.
	Key string
	// Header is the display label, also used as the export header.
	Header string
	// Accessor returns the raw value used for sorting, filtering and export.
	Accessor func(row T) any
	// Sortable and Filterable opt the column into those operations.
	Sortable   bool
	Filterable bool
	Align      Align
	// Width is a sizing hint in terminal cells; 0 lets the renderer decide.
	Width int
	// Render optionally formats the value for display. Export ignores it.
	Render func(value any, row T) string
}

// KeyFunc returns the unique key of a row.
type KeyFunc[T any] func(row T) string

// label returns the header, falling back to the key.
func (c Column[T]) label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Key
}

func validateColumns[T any](columns []Column[T]) (map[string]int, error) {
	if len(columns) == 0 {
		return nil, configErr(ErrNoColumns, "")
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Key == "" {
			return nil, configErr(ErrEmptyColumnKey, fmt.Sprintf("column %d", i))
		}
		if _, dup := index[c.Key]; dup {
			return nil, configErr(ErrDuplicateColumnKey, c.Key)
		}
		if c.Accessor == nil {
			return nil, configErr(ErrNilAccessor, c.Key)
		}
		index[c.Key] = i
	}
	return index, nil
}
