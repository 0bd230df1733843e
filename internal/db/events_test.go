package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventQueryBuild(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		q         EventQuery
		wantWhere string
		wantTail  string
		wantArgs  []any
	}{
		{"all", EventQuery{}, "", " ORDER BY date DESC NULLS LAST, id", nil},
		{"vehicle", EventQuery{VehicleID: "v1"}, " WHERE vehicle_id = $1", " ORDER BY date DESC NULLS LAST, id", []any{"v1"}},
		{"since and limit", EventQuery{Since: since, Limit: 50}, " WHERE date >= $1", " ORDER BY date DESC NULLS LAST, id LIMIT $2", []any{since, 50}},
		{"everything", EventQuery{VehicleID: "v1", Since: since, Limit: 5}, " WHERE vehicle_id = $1 AND date >= $2", " ORDER BY date DESC NULLS LAST, id LIMIT $3", []any{"v1", since, 5}},
	}

	prefix := "SELECT id, vehicle_id, vehicle, type, title, date, mileage, cost, vendor, notes, completion_score FROM maintenance_events"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.q.build()
			assert.Equal(t, prefix+tt.wantWhere+tt.wantTail, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
