package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/motomind/motomind/internal/maintenance"
)

var eventColumns = []string{
	"id", "vehicle_id", "vehicle", "type", "title", "date",
	"mileage", "cost", "vendor", "notes", "completion_score",
}

// EventQuery narrows ListEvents. Zero values mean no restriction.
type EventQuery struct {
	VehicleID string
	Since     time.Time
	Limit     int
}

// build returns the SELECT for q and its arguments. Rows come newest
// first; the table re-sorts as the user asks.
func (q EventQuery) build() (string, []any) {
	var (
		where []string
		args  []any
	)
	if q.VehicleID != "" {
		args = append(args, q.VehicleID)
		where = append(where, fmt.Sprintf("vehicle_id = $%d", len(args)))
	}
	if !q.Since.IsZero() {
		args = append(args, q.Since)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(eventColumns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(EventsTable)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY date DESC NULLS LAST, id")
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	return sb.String(), args
}

// ListEvents returns the events matching q.
func (db *DB) ListEvents(ctx context.Context, q EventQuery) ([]maintenance.Event, error) {
	sql, args := q.build()
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (maintenance.Event, error) {
		var (
			e    maintenance.Event
			date *time.Time
		)
		err := row.Scan(&e.ID, &e.VehicleID, &e.Vehicle, &e.Type, &e.Title, &date,
			&e.Mileage, &e.Cost, &e.Vendor, &e.Notes, &e.CompletionScore)
		if date != nil {
			e.Date = *date
		}
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return events, nil
}

// InsertEvents bulk loads events with COPY inside one transaction.
func (db *DB) InsertEvents(ctx context.Context, events []maintenance.Event) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(events))
	for i, e := range events {
		var date *time.Time
		if !e.Date.IsZero() {
			date = &e.Date
		}
		rows[i] = []any{
			e.ID, e.VehicleID, e.Vehicle, e.Type, e.Title, date,
			e.Mileage, e.Cost, e.Vendor, e.Notes, e.CompletionScore,
		}
	}

	var n int64
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		n, err = tx.CopyFrom(ctx, pgx.Identifier{EventsTable}, eventColumns, pgx.CopyFromRows(rows))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("copy events: %w", err)
	}
	return n, nil
}
