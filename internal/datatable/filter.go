package datatable

import (
	"fmt"
	"strings"
)

// SetFilter sets the substring query for a filterable column. An empty
// query removes the constraint.
func (t *Table[T]) SetFilter(key, query string) error {
	if err := t.checkFilterable(key); err != nil {
		return err
	}
	if query == "" {
		delete(t.filters, key)
	} else {
		t.filters[key] = query
	}
	t.refresh()
	return nil
}

// SetFilters replaces all queries at once. It validates every key before
// changing anything.
func (t *Table[T]) SetFilters(queries map[string]string) error {
	for k := range queries {
		if err := t.checkFilterable(k); err != nil {
			return err
		}
	}
	clear(t.filters)
	for k, q := range queries {
		if q != "" {
			t.filters[k] = q
		}
	}
	t.refresh()
	return nil
}

// ClearFilter removes the query on key, if any.
func (t *Table[T]) ClearFilter(key string) {
	if _, ok := t.filters[key]; !ok {
		return
	}
	delete(t.filters, key)
	t.refresh()
}

// ClearFilters removes every query.
func (t *Table[T]) ClearFilters() {
	if len(t.filters) == 0 {
		return
	}
	clear(t.filters)
	t.refresh()
}

func (t *Table[T]) checkFilterable(key string) error {
	if !t.features.Filterable {
		return featureErr("filter")
	}
	i, ok := t.colIndex[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if !t.columns[i].Filterable {
		return fmt.Errorf("%w: %q", ErrNotFilterable, key)
	}
	return nil
}

// filterIndices returns the data indices that pass every non-empty query
// (case-insensitive substring, AND across columns), in data order.
func (t *Table[T]) filterIndices() []int {
	type query struct {
		col    Column[T]
		needle string
	}
	var queries []query
	for k, q := range t.filters {
		if q == "" {
			continue
		}
		queries = append(queries, query{col: t.columns[t.colIndex[k]], needle: strings.ToLower(q)})
	}

	out := make([]int, 0, len(t.data))
rows:
	for i := range t.data {
		for _, q := range queries {
			v, err := t.value(q.col, i)
			if err != nil {
				continue rows
			}
			if !strings.Contains(strings.ToLower(Stringify(v)), q.needle) {
				continue rows
			}
		}
		out = append(out, i)
	}
	return out
}
