package db

import (
	"context"
	"fmt"
)

// EventsTable holds maintenance events.
const EventsTable = "maintenance_events"

// InitSchema creates the events and metadata tables and the indexes if
// missing.
func (db *DB) InitSchema(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS maintenance_events (
		id               TEXT PRIMARY KEY,
		vehicle_id       TEXT NOT NULL DEFAULT '',
		vehicle          TEXT NOT NULL DEFAULT '',
		type             TEXT NOT NULL DEFAULT '',
		title            TEXT NOT NULL DEFAULT '',
		date             TIMESTAMPTZ,
		mileage          INTEGER NOT NULL DEFAULT 0,
		cost             NUMERIC(12,2) NOT NULL DEFAULT 0,
		vendor           TEXT NOT NULL DEFAULT '',
		notes            TEXT NOT NULL DEFAULT '',
		completion_score INTEGER NOT NULL DEFAULT 0
	)`
	if err := db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create %s: %w", EventsTable, err)
	}

	if err := db.Exec(ctx, metadataTable); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_maintenance_events_vehicle ON maintenance_events(vehicle_id)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_events_date ON maintenance_events(date DESC)`,
	}
	for _, idx := range indexes {
		if err := db.Exec(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
