// Package maintenance holds the vehicle maintenance event rows shown by
// `motomind events` and the standard column set for them.
package maintenance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/dataset"
	"github.com/motomind/motomind/internal/util"
)

// Event types recorded by the app.
const (
	TypeService    = "service"
	TypeRepair     = "repair"
	TypeInspection = "inspection"
	TypeFuel       = "fuel"
	TypeUpgrade    = "upgrade"
)

// ErrMissingID is returned for events without an id.
var ErrMissingID = errors.New("event has no id")

// Event is one maintenance log entry for a vehicle.
type Event struct {
	ID              string    `json:"id" yaml:"id"`
	VehicleID       string    `json:"vehicle_id" yaml:"vehicle_id"`
	Vehicle         string    `json:"vehicle" yaml:"vehicle"`
	Type            string    `json:"type" yaml:"type"`
	Title           string    `json:"title" yaml:"title"`
	Date            time.Time `json:"date" yaml:"date"`
	Mileage         int       `json:"mileage" yaml:"mileage"`
	Cost            float64   `json:"cost" yaml:"cost"`
	Vendor          string    `json:"vendor" yaml:"vendor"`
	Notes           string    `json:"notes" yaml:"notes"`
	CompletionScore int       `json:"completion_score" yaml:"completion_score"`
}

// Key is the row key of an event.
func Key(e Event) string {
	return e.ID
}

// LoadFile reads events from a CSV, JSON or YAML file. Header names are
// matched case-insensitively with spaces treated as underscores, so a
// spreadsheet column "Vehicle ID" fills VehicleID.
func LoadFile(path string) ([]Event, error) {
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(ds.Records))
	for i, r := range ds.Records {
		e, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i+1, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// FromRecord maps a dataset record onto an Event.
func FromRecord(r dataset.Record) (Event, error) {
	fields := make(map[string]any, len(r.Fields()))
	for _, name := range r.Fields() {
		fields[normalize(name)] = r.Get(name)
	}
	str := func(name string) string {
		return strings.TrimSpace(datatable.Stringify(fields[name]))
	}

	e := Event{
		ID:        str("id"),
		VehicleID: str("vehicle_id"),
		Vehicle:   str("vehicle"),
		Type:      strings.ToLower(str("type")),
		Title:     str("title"),
		Vendor:    str("vendor"),
		Notes:     str("notes"),
	}
	if e.ID == "" {
		return Event{}, ErrMissingID
	}

	var err error
	if e.Date, err = dateField(fields["date"]); err != nil {
		return Event{}, fmt.Errorf("date: %w", err)
	}
	if e.Mileage, err = intField(str("mileage")); err != nil {
		return Event{}, fmt.Errorf("mileage: %w", err)
	}
	if s := str("cost"); s != "" {
		cost, ok := util.ParseNumber(s)
		if !ok {
			return Event{}, fmt.Errorf("cost: invalid number %q", s)
		}
		e.Cost = cost
	}
	if e.CompletionScore, err = intField(str("completion_score")); err != nil {
		return Event{}, fmt.Errorf("completion_score: %w", err)
	}
	return e, nil
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func dateField(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return x, nil
	}
	s := strings.TrimSpace(datatable.Stringify(v))
	if s == "" {
		return time.Time{}, nil
	}
	t, ok := util.ParseDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	return t, nil
}

func intField(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, ok := util.ParseNumber(s)
	if !ok {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return int(f), nil
}

// ByVehicle returns the events of one vehicle, matched on vehicle id or
// name. An empty id returns all events.
func ByVehicle(events []Event, vehicle string) []Event {
	if vehicle == "" {
		return events
	}
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.VehicleID == vehicle || strings.EqualFold(e.Vehicle, vehicle) {
			out = append(out, e)
		}
	}
	return out
}

// TotalCost sums the cost of the given events.
func TotalCost(events []Event) float64 {
	var total float64
	for _, e := range events {
		total += e.Cost
	}
	return total
}
