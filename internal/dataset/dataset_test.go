package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/util"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_CSV(t *testing.T) {
	path := writeFile(t, "shops.csv", "\xEF\xBB\xBFid,vendor,cost\n1,M\xFCller Kfz,120\n2,\"Quick, Lube\",45.5\n")

	ds, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, util.FormatCSV, ds.Format)
	assert.Equal(t, []string{"id", "vendor", "cost"}, ds.Fields)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "Müller Kfz", ds.Records[0].Get("vendor"))
	assert.Equal(t, "Quick, Lube", ds.Records[1].Get("vendor"))
	assert.Equal(t, "45.5", ds.Records[1].Get("cost"))
}

func TestLoadFile_JSONKeepsKeyOrder(t *testing.T) {
	path := writeFile(t, "events.json", `[
		// first visit
		{"id": 7, "title": "Oil change", "cost": 49.99},
		{"id": 8, "vendor": "Dealer", "title": "Brakes",},
	]`)

	ds, err := LoadFile(path)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"id", "title", "cost", "vendor"}, ds.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(7), ds.Records[0].Get("id"))
	assert.Equal(t, 49.99, ds.Records[0].Get("cost"))
	assert.Nil(t, ds.Records[1].Get("cost"))
	assert.Equal(t, "Dealer", ds.Records[1].Get("vendor"))
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "events.yaml", "- id: a\n  mileage: 42000\n- id: b\n  mileage: 43000\n  notes: rattle\n")

	ds, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "mileage", "notes"}, ds.Fields)
	assert.Equal(t, 42000, ds.Records[0].Get("mileage"))
	v, ok := ds.Records[0].Lookup("notes")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, []any{"b", 43000, "rattle"}, ds.Records[1].Values())
}

func TestParse_NotTabular(t *testing.T) {
	_, err := Parse([]byte(`{"id": 1}`), util.FormatJSON)
	assert.ErrorIs(t, err, ErrNotTabular)

	_, err = Parse([]byte("id: 1\n"), util.FormatYAML)
	assert.ErrorIs(t, err, ErrNotTabular)

	_, err = Parse([]byte("a,b"), "xlsx")
	assert.ErrorIs(t, err, util.ErrUnsupportedFormat)
}

func TestParse_Empty(t *testing.T) {
	for _, format := range []string{util.FormatCSV, util.FormatJSON, util.FormatYAML} {
		ds, err := Parse(nil, format)
		require.NoError(t, err, format)
		assert.Empty(t, ds.Records, format)
	}
}

func TestHash_RepeatedRowsStayDistinct(t *testing.T) {
	ds, err := Parse([]byte("a,b\n1,2\n1,2\n3,4\n"), util.FormatCSV)
	require.NoError(t, err)

	h0, h1, h2 := ds.Records[0].Hash(), ds.Records[1].Hash(), ds.Records[2].Hash()
	assert.NotEqual(t, h0, h1)
	assert.Equal(t, h0+"#1", h1)
	assert.NotEqual(t, h0, h2)

	// A table over the dataset must accept the keys.
	spec := InferSpec(ds)
	cols, err := spec.Build(ds)
	require.NoError(t, err)
	_, err = datatable.New(cols, ds.Records, spec.KeyFunc(), datatable.Options[Record]{})
	require.NoError(t, err)
}

func TestInferSpec(t *testing.T) {
	ds, err := Parse([]byte("id,date,miles,vendor\nx,2024-01-02,\"1,200\",Dealer\ny,2024-02-03,,Shop\n"), util.FormatCSV)
	require.NoError(t, err)

	spec := InferSpec(ds)
	got := map[string]string{}
	for _, c := range spec.Columns {
		got[c.Key] = c.Format
	}
	assert.Equal(t, map[string]string{
		"id":     FormatText,
		"date":   FormatDate,
		"miles":  FormatNumber,
		"vendor": FormatText,
	}, got)
	assert.Equal(t, "right", spec.Columns[2].Align)
}

func TestSpec_NumericSortAndRender(t *testing.T) {
	ds, err := Parse([]byte("part,qty\nbolt,10\nnut,9\nwasher,100\nclip,\n"), util.FormatCSV)
	require.NoError(t, err)

	spec := InferSpec(ds)
	spec.KeyColumn = "part"
	cols, err := spec.Build(ds)
	require.NoError(t, err)

	tbl, err := datatable.New(cols, ds.Records, spec.KeyFunc(), datatable.Options[Record]{})
	require.NoError(t, err)
	_, err = tbl.ToggleSort("qty")
	require.NoError(t, err)

	assert.Equal(t, []string{"clip", "nut", "bolt", "washer"}, tbl.RowKeys())
	washer, _ := tbl.Row("washer")
	assert.Equal(t, "100", tbl.CellText(washer, "qty"))
	clip, _ := tbl.Row("clip")
	assert.Equal(t, datatable.Placeholder, tbl.CellText(clip, "qty"))
}

func TestSpec_Formats(t *testing.T) {
	defer func(orig func() time.Time) { now = orig }(now)
	now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }

	ds, err := Parse([]byte("id,cost,score,serviced\na,1234.5,85,2024-06-12\n"), util.FormatCSV)
	require.NoError(t, err)

	spec := &Spec{
		KeyColumn: "id",
		Columns: []ColumnSpec{
			{Key: "cost", Format: FormatCurrency},
			{Key: "score", Format: FormatPercent},
			{Key: "when", Field: "serviced", Format: FormatRelative},
			{Key: "day", Field: "serviced", Format: FormatDate},
		},
	}
	cols, err := spec.Build(ds)
	require.NoError(t, err)
	tbl, err := datatable.New(cols, ds.Records, spec.KeyFunc(), datatable.Options[Record]{})
	require.NoError(t, err)

	row, ok := tbl.Row("a")
	require.True(t, ok)
	assert.Equal(t, "$1,234.50", tbl.CellText(row, "cost"))
	assert.Equal(t, "85%", tbl.CellText(row, "score"))
	assert.Equal(t, "3 days ago", tbl.CellText(row, "when"))
	assert.Equal(t, "2024-06-12", tbl.CellText(row, "day"))
}

func TestSpec_BuildErrors(t *testing.T) {
	ds, err := Parse([]byte("id\n1\n"), util.FormatCSV)
	require.NoError(t, err)

	_, err = (&Spec{Columns: []ColumnSpec{{Key: "nope"}}}).Build(ds)
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = (&Spec{Columns: []ColumnSpec{{Key: "id", Align: "middle"}}}).Build(ds)
	assert.Error(t, err)

	_, err = (&Spec{Columns: []ColumnSpec{{Key: "id", Format: "roman"}}}).Build(ds)
	assert.Error(t, err)
}

func TestLoadSpec(t *testing.T) {
	path := writeFile(t, "columns.yaml", `key_column: id
hidden: [notes]
columns:
  - key: id
    sortable: false
  - key: cost
    header: Cost
    align: right
    format: currency
`)
	spec, err := LoadSpec(path)
	require.NoError(t, err)

	assert.Equal(t, "id", spec.KeyColumn)
	assert.Equal(t, []string{"notes"}, spec.Hidden)
	require.Len(t, spec.Columns, 2)
	require.NotNil(t, spec.Columns[0].Sortable)
	assert.False(t, *spec.Columns[0].Sortable)
	assert.Nil(t, spec.Columns[1].Filterable)

	bad := writeFile(t, "bad.yaml", "columns:\n  - key: id\n    colour: red\n")
	_, err = LoadSpec(bad)
	assert.Error(t, err)
}
