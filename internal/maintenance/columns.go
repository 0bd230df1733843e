package maintenance

import (
	"strings"
	"time"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/util"
)

// DefaultVisible lists the columns shown before the user toggles any.
var DefaultVisible = []string{"date", "vehicle", "type", "title", "mileage", "cost", "vendor", "score"}

// Columns returns the standard event columns with dates relative to the
// current time.
func Columns() []datatable.Column[Event] {
	return ColumnsAt(time.Now)
}

// ColumnsAt is Columns with an injectable clock.
func ColumnsAt(now func() time.Time) []datatable.Column[Event] {
	return []datatable.Column[Event]{
		{
			Key:        "id",
			Header:     "ID",
			Accessor:   func(e Event) any { return e.ID },
			Sortable:   true,
			Filterable: true,
		},
		{
			Key:      "date",
			Header:   "Date",
			Accessor: func(e Event) any { return nonZero(e.Date) },
			Sortable: true,
			Render: func(v any, _ Event) string {
				t, ok := v.(time.Time)
				if !ok {
					return ""
				}
				return util.RelativeTime(t, now())
			},
			Width: 14,
		},
		{
			Key:        "vehicle_id",
			Header:     "Vehicle ID",
			Accessor:   func(e Event) any { return e.VehicleID },
			Sortable:   true,
			Filterable: true,
		},
		{
			Key:        "vehicle",
			Header:     "Vehicle",
			Accessor:   func(e Event) any { return e.Vehicle },
			Sortable:   true,
			Filterable: true,
		},
		{
			Key:        "type",
			Header:     "Type",
			Accessor:   func(e Event) any { return e.Type },
			Sortable:   true,
			Filterable: true,
			Render: func(v any, _ Event) string {
				s, _ := v.(string)
				if s == "" {
					return ""
				}
				return strings.ToUpper(s[:1]) + s[1:]
			},
		},
		{
			Key:        "title",
			Header:     "Title",
			Accessor:   func(e Event) any { return e.Title },
			Sortable:   true,
			Filterable: true,
			Width:      32,
		},
		{
			Key:      "mileage",
			Header:   "Mileage",
			Accessor: func(e Event) any { return e.Mileage },
			Sortable: true,
			Align:    datatable.AlignRight,
			Render: func(v any, _ Event) string {
				n, _ := v.(int)
				return util.FormatNumber(float64(n)) + " mi"
			},
		},
		{
			Key:      "cost",
			Header:   "Cost",
			Accessor: func(e Event) any { return e.Cost },
			Sortable: true,
			Align:    datatable.AlignRight,
			Render: func(v any, _ Event) string {
				f, _ := v.(float64)
				return util.FormatCurrency(f)
			},
		},
		{
			Key:        "vendor",
			Header:     "Vendor",
			Accessor:   func(e Event) any { return e.Vendor },
			Sortable:   true,
			Filterable: true,
		},
		{
			Key:        "notes",
			Header:     "Notes",
			Accessor:   func(e Event) any { return e.Notes },
			Filterable: true,
			Width:      40,
		},
		{
			Key:      "score",
			Header:   "Complete",
			Accessor: func(e Event) any { return e.CompletionScore },
			Sortable: true,
			Align:    datatable.AlignCenter,
			Render: func(v any, _ Event) string {
				n, _ := v.(int)
				return util.FormatPercent(float64(n))
			},
		},
	}
}

// nonZero maps an unset date to nil so it renders as a placeholder and
// sorts first.
func nonZero(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
