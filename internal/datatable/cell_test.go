package datatable

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCell_PanicIsIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cols := []Column[item]{
		{Key: "id", Header: "ID", Accessor: func(r item) any { return r.ID }, Sortable: true},
		{Key: "ratio", Header: "Ratio", Accessor: func(r item) any {
			if r.V == 0 {
				panic("division by zero")
			}
			return 10 / r.V
		}, Sortable: true},
	}
	rows := []item{{ID: 1, V: 2}, {ID: 2, V: 0}, {ID: 3, V: 5}}
	tbl, err := New(cols, rows, func(r item) string { return strconv.Itoa(r.ID) }, Options[item]{Logger: zap.New(core)})
	require.NoError(t, err)

	text, err := tbl.Cell(rows[1], "ratio")
	assert.Equal(t, Placeholder, text)
	assert.ErrorIs(t, err, ErrCellFailed)

	// the neighbours still render
	assert.Equal(t, "5", tbl.CellText(rows[0], "ratio"))
	assert.Equal(t, "2", tbl.CellText(rows[1], "id"))

	entries := logs.FilterMessage("cell render failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ratio", entries[0].ContextMap()["column"])
	assert.Equal(t, "2", entries[0].ContextMap()["row"])

	// sorting treats the failed value as nil (first ascending)
	_, err = tbl.ToggleSort("ratio")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, ids(tbl.Rows()))
}

func TestCell_RenderAndNil(t *testing.T) {
	type row struct {
		ID    string
		Cost  *float64
		Miles int
	}
	cost := 42.5
	cols := []Column[row]{
		{Key: "cost", Accessor: func(r row) any { return r.Cost }},
		{Key: "miles", Accessor: func(r row) any { return r.Miles }, Render: func(v any, _ row) string {
			return fmt.Sprintf("%d mi", v.(int))
		}},
		{Key: "bad", Accessor: func(r row) any { return r.ID }, Render: func(v any, _ row) string {
			return v.(fmt.Stringer).String()
		}},
	}
	rows := []row{{ID: "a", Cost: &cost, Miles: 1200}, {ID: "b"}}
	tbl, err := New(cols, rows, func(r row) string { return r.ID }, Options[row]{})
	require.NoError(t, err)

	assert.Equal(t, "42.5", tbl.CellText(rows[0], "cost"))
	assert.Equal(t, Placeholder, tbl.CellText(rows[1], "cost"))
	assert.Equal(t, "1200 mi", tbl.CellText(rows[0], "miles"))

	text, err := tbl.Cell(rows[0], "bad")
	assert.Equal(t, Placeholder, text)
	assert.ErrorIs(t, err, ErrCellFailed)

	_, err = tbl.Cell(rows[0], "missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestValue(t *testing.T) {
	cols := []Column[item]{
		{Key: "id", Accessor: func(r item) any { return r.ID }},
		{Key: "boom", Accessor: func(r item) any { panic("bad row") }},
	}
	tbl, err := New(cols, []item{{ID: 1}}, func(r item) string { return strconv.Itoa(r.ID) }, Options[item]{})
	require.NoError(t, err)
	row, _ := tbl.Row("1")

	v, err := tbl.Value(row, "id")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = tbl.Value(row, "boom")
	assert.ErrorIs(t, err, ErrCellFailed)

	_, err = tbl.Value(row, "nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
