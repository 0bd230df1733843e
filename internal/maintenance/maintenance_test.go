package maintenance

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motomind/motomind/internal/datatable"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleEvents() []Event {
	return []Event{
		{ID: "e1", VehicleID: "v1", Vehicle: "Ducati Monster", Type: TypeService, Title: "Oil change", Date: testNow.Add(-72 * time.Hour), Mileage: 12000, Cost: 89.5, Vendor: "Dealer", CompletionScore: 100},
		{ID: "e2", VehicleID: "v2", Vehicle: "Honda CB500", Type: TypeRepair, Title: "Chain \"kit\"", Date: testNow.Add(-30 * 24 * time.Hour), Mileage: 30500, Cost: 240, Vendor: "Moto Shop", CompletionScore: 60},
		{ID: "e3", VehicleID: "v1", Vehicle: "Ducati Monster", Type: TypeInspection, Title: "Valve check", Mileage: 12500, Vendor: "Dealer"},
	}
}

func newEventTable(t *testing.T, events []Event) *datatable.Table[Event] {
	t.Helper()
	tbl, err := datatable.New(ColumnsAt(func() time.Time { return testNow }), events, Key, datatable.Options[Event]{})
	require.NoError(t, err)
	return tbl
}

func TestColumns_Render(t *testing.T) {
	tbl := newEventTable(t, sampleEvents())
	e1, _ := tbl.Row("e1")
	e3, _ := tbl.Row("e3")

	tests := []struct {
		row  Event
		key  string
		want string
	}{
		{e1, "date", "3 days ago"},
		{e1, "type", "Service"},
		{e1, "mileage", "12,000 mi"},
		{e1, "cost", "$89.50"},
		{e1, "score", "100%"},
		{e3, "date", datatable.Placeholder},
		{e3, "cost", "$0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tbl.CellText(tt.row, tt.key), "%s/%s", tt.row.ID, tt.key)
	}
}

func TestColumns_SortAndFilter(t *testing.T) {
	tbl := newEventTable(t, sampleEvents())

	_, err := tbl.ToggleSort("date")
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e2", "e1"}, tbl.RowKeys())

	require.NoError(t, tbl.SetFilter("vendor", "dealer"))
	assert.Equal(t, []string{"e3", "e1"}, tbl.RowKeys())

	_, err = tbl.ToggleSort("notes")
	assert.ErrorIs(t, err, datatable.ErrNotSortable)
}

func TestColumns_ExportUsesRawValues(t *testing.T) {
	tbl := newEventTable(t, sampleEvents())
	require.NoError(t, tbl.SetVisibleColumns([]string{"title", "cost"}))

	var buf bytes.Buffer
	require.NoError(t, tbl.ExportCSV(&buf))
	assert.Equal(t, "\"Title\",\"Cost\"\n\"Oil change\",\"89.5\"\n\"Chain \"\"kit\"\"\",\"240\"\n\"Valve check\",\"0\"\n", buf.String())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "events.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"ID,Vehicle ID,Vehicle,Type,Title,Date,Mileage,Cost,Vendor,Completion Score\n"+
			"e1,v1,Ducati Monster,Service,Oil change,2024-06-12,\"12,000\",$89.50,Dealer,100\n"), 0644))

	events, err := LoadFile(csvPath)
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "v1", e.VehicleID)
	assert.Equal(t, TypeService, e.Type)
	assert.Equal(t, 12000, e.Mileage)
	assert.Equal(t, 89.5, e.Cost)
	assert.Equal(t, 100, e.CompletionScore)
	assert.True(t, e.Date.Equal(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)))

	yamlPath := filepath.Join(dir, "events.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- id: e9\n  mileage: 500\n  cost: 12.25\n  date: 2024-01-02\n"), 0644))
	events, err = LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 500, events[0].Mileage)
	assert.Equal(t, 12.25, events[0].Cost)
	assert.Equal(t, 2024, events[0].Date.Year())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	noID := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(noID, []byte("title\nOil\n"), 0644))
	_, err := LoadFile(noID)
	assert.ErrorIs(t, err, ErrMissingID)

	badDate := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(badDate, []byte(`[{"id":"x","date":"last tuesday"}]`), 0644))
	_, err = LoadFile(badDate)
	assert.ErrorContains(t, err, "date")
}

func TestByVehicleAndTotal(t *testing.T) {
	events := sampleEvents()
	assert.Len(t, ByVehicle(events, "v1"), 2)
	assert.Len(t, ByVehicle(events, "honda cb500"), 1)
	assert.Len(t, ByVehicle(events, ""), 3)
	assert.InDelta(t, 329.5, TotalCost(events), 0.001)
}
