package datatable

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type miles int

func TestCompareValues(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	n := 7

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"nil equal", nil, nil, 0},
		{"nil before bool", nil, false, -1},
		{"false before true", false, true, -1},
		{"bool before number", true, -5, -1},
		{"int vs float", 2, 2.5, -1},
		{"named int", miles(10), 9, 1},
		{"negative int vs uint", -1, uint(0), -1},
		{"uint vs int", uint(3), 3, 0},
		{"pointer deref", &n, 7, 0},
		{"typed nil pointer", (*int)(nil), nil, 0},
		{"NaN first", math.NaN(), -1e9, -1},
		{"number before time", 1e12, now, -1},
		{"time before text", now, "a", -1},
		{"times", now, now.Add(time.Hour), -1},
		{"zero time equals nil", time.Time{}, nil, 0},
		{"zero time before bool", time.Time{}, false, -1},
		{"strings", "Amy", "Bob", -1},
		{"number before numeric string", 10, "2", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareValues(tt.a, tt.b))
			assert.Equal(t, -tt.want, CompareValues(tt.b, tt.a))
		})
	}
}

func TestCompareValues_TotalOrderOnMixedSlice(t *testing.T) {
	vals := []any{"b", 3, nil, true, 1.5, "a", false, nil, 2}
	slices.SortStableFunc(vals, CompareValues)
	assert.Equal(t, []any{nil, nil, false, true, 1.5, 2, 3, "a", "b"}, vals)
}

func TestStringify(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "", Stringify((*string)(nil)))
	assert.Equal(t, "2024-03-01T12:00:00Z", Stringify(ts))
	assert.Equal(t, "", Stringify(time.Time{}))
	assert.Equal(t, "1.25", Stringify(1.25))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "raw", Stringify([]byte("raw")))
}
