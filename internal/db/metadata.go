package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Metadata keys
const (
	MetaKeyLastImport       = "last_import"
	MetaKeyLastImportSource = "last_import_source"
)

const metadataTable = `
	CREATE TABLE IF NOT EXISTS motomind_metadata (
		key     TEXT PRIMARY KEY,
		value   TEXT NOT NULL
	)`

// GetMetadata retrieves a metadata value by key. A missing key is not an
// error and yields "".
func (db *DB) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRow(ctx, "SELECT value FROM motomind_metadata WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetMetadata sets a metadata key-value pair (upsert)
func (db *DB) SetMetadata(ctx context.Context, key, value string) error {
	return db.Exec(ctx, `
		INSERT INTO motomind_metadata (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
}

// ImportRecord describes the most recent import.
type ImportRecord struct {
	At     time.Time
	Source string
}

// RecordImport stores when and from where events were last imported.
func (db *DB) RecordImport(ctx context.Context, source string, at time.Time) error {
	if err := db.SetMetadata(ctx, MetaKeyLastImport, at.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return db.SetMetadata(ctx, MetaKeyLastImportSource, source)
}

// LastImport returns the most recent import, or nil if nothing was imported.
func (db *DB) LastImport(ctx context.Context) (*ImportRecord, error) {
	at, err := db.GetMetadata(ctx, MetaKeyLastImport)
	if err != nil || at == "" {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return nil, err
	}
	source, err := db.GetMetadata(ctx, MetaKeyLastImportSource)
	if err != nil {
		return nil, err
	}
	return &ImportRecord{At: t, Source: source}, nil
}
