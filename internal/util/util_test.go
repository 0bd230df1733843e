package util

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-1 * time.Minute), "1 minute ago"},
		{now.Add(-5 * time.Hour), "5 hours ago"},
		{now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{now.Add(14 * 24 * time.Hour), "in 2 weeks"},
		{now.Add(-90 * 24 * time.Hour), "Mar 17, 2024"},
	}
	for _, tt := range tests {
		if got := RelativeTime(tt.t, now); got != tt.want {
			t.Errorf("RelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestRowHash(t *testing.T) {
	a := RowHash([]string{"ab", "c"})
	b := RowHash([]string{"a", "bc"})
	if a == b {
		t.Fatal("field boundaries must change the hash")
	}
	if a != RowHash([]string{"ab", "c"}) {
		t.Fatal("hash must be deterministic")
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(a))
	}
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]string{"a.csv": FormatCSV, "b.JSON": FormatJSON, "c.yml": FormatYAML} {
		got, err := DetectFormat(path)
		if err != nil || got != want {
			t.Errorf("DetectFormat(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := DetectFormat("d.xlsx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRedactURL(t *testing.T) {
	got := RedactURL("postgres://fleet:hunter2@db:5432/motomind")
	if got != "postgres://fleet:***@db:5432/motomind" {
		t.Fatalf("unexpected redaction: %s", got)
	}
	if RedactURL("postgres://db/motomind") != "postgres://db/motomind" {
		t.Fatal("URL without credentials must be unchanged")
	}
}

func TestExportFileName(t *testing.T) {
	name := ExportFileName("events.csv")
	if !strings.HasPrefix(name, "events-") || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("unexpected export name %q", name)
	}
	if len(name) != len("events-")+7+len(".csv") {
		t.Fatalf("unexpected export name length %q", name)
	}
	if next := ExportFileName("events"); next == name {
		t.Fatalf("export names repeat: %q", name)
	}
}

func TestMotoErrorFormat(t *testing.T) {
	err := NoDataSourceError()
	if !errors.Is(err, ErrNoDataSource) {
		t.Fatal("expected wrapped ErrNoDataSource")
	}
	out := err.Format()
	for _, want := range []string{"Error: No data source", "Try:", "$ motomind events --file events.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted error missing %q:\n%s", want, out)
		}
	}
}

func TestToValidUTF8(t *testing.T) {
	latin1 := string([]byte{'M', 0xFC, 'l', 'l', 'e', 'r'})
	if got := ToValidUTF8(latin1); got != "Müller" {
		t.Fatalf("got %q", got)
	}
	if got := string(TrimBOM([]byte("\xEF\xBB\xBFid"))); got != "id" {
		t.Fatalf("got %q", got)
	}
}

func TestNumberFormats(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatNumber(12345), "12,345"},
		{FormatNumber(1234.5), "1,234.50"},
		{FormatCurrency(1234.5), "$1,234.50"},
		{FormatCurrency(-40), "-$40.00"},
		{FormatPercent(85), "85%"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	for in, want := range map[string]float64{"1,234.5": 1234.5, "$40": 40, "85%": 85, " 7 ": 7} {
		got, ok := ParseNumber(in)
		if !ok || got != want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "abc", "$"} {
		if _, ok := ParseNumber(in); ok {
			t.Errorf("ParseNumber(%q) should fail", in)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-09", "03/09/2024", "Mar 9, 2024", "2024-03-09T00:00:00Z"} {
		got, ok := ParseDate(in)
		if !ok || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseDate("yesterday"); ok {
		t.Error("ParseDate should reject free text")
	}
}
