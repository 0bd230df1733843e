package datatable

import (
	"fmt"
	"slices"
)

// Direction of the active sort.
type Direction int

const (
	SortNone Direction = iota
	SortAscending
	SortDescending
)

func (d Direction) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// next cycles asc -> desc -> none.
func (d Direction) next() Direction {
	switch d {
	case SortAscending:
		return SortDescending
	case SortDescending:
		return SortNone
	default:
		return SortAscending
	}
}

// SortState is the single active sort column. The zero value means unsorted.
type SortState struct {
	Key       string
	Direction Direction
}

// Active reports whether a sort is applied.
func (s SortState) Active() bool {
	return s.Key != "" && s.Direction != SortNone
}

// Sort returns the current sort state.
func (t *Table[T]) Sort() SortState {
	return t.sort
}

// ToggleSort cycles the sort on key: a new column starts ascending, the
// same column goes ascending, descending, then back to unsorted.
func (t *Table[T]) ToggleSort(key string) (SortState, error) {
	if err := t.checkSortable(key); err != nil {
		return t.sort, err
	}
	next := SortState{Key: key, Direction: SortAscending}
	if t.sort.Key == key {
		next.Direction = t.sort.Direction.next()
	}
	if next.Direction == SortNone {
		next = SortState{}
	}
	t.sort = next
	t.refresh()
	return t.sort, nil
}

// SetSort applies a sort state directly. A zero state clears the sort.
func (t *Table[T]) SetSort(s SortState) error {
	if !s.Active() {
		t.sort = SortState{}
		t.refresh()
		return nil
	}
	if err := t.checkSortable(s.Key); err != nil {
		return err
	}
	t.sort = s
	t.refresh()
	return nil
}

func (t *Table[T]) checkSortable(key string) error {
	if !t.features.Sortable {
		return featureErr("sort")
	}
	i, ok := t.colIndex[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if !t.columns[i].Sortable {
		return fmt.Errorf("%w: %q", ErrNotSortable, key)
	}
	return nil
}

// sortIndices stable-sorts idx by the active sort column. Accessor values
// are computed once per row.
func (t *Table[T]) sortIndices(idx []int) {
	if !t.sort.Active() {
		return
	}
	col := t.columns[t.colIndex[t.sort.Key]]

	keys := make(map[int]sortKey, len(idx))
	for _, i := range idx {
		v, _ := t.value(col, i)
		keys[i] = makeSortKey(v)
	}
	desc := t.sort.Direction == SortDescending
	slices.SortStableFunc(idx, func(a, b int) int {
		c := compareKeys(keys[a], keys[b])
		if desc {
			return -c
		}
		return c
	})
}
