package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Table.PageSize != 25 || !cfg.Table.AutoClamp || cfg.Table.MobileView != "auto" {
		t.Fatalf("unexpected defaults: %+v", cfg.Table)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[table]\npage_size = 10\nstriped = true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Table.PageSize != 10 || !cfg.Table.Striped {
		t.Fatalf("file values not applied: %+v", cfg.Table)
	}
	if cfg.Table.Breakpoint != 100 || cfg.DB.Timeout != 30 {
		t.Fatalf("defaults lost: %+v %+v", cfg.Table, cfg.DB)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[table]\npage_size = 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "table.page_size") {
		t.Fatalf("expected page_size validation error, got %v", err)
	}
}

func TestSetValue(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"table.page_size", "50", false},
		{"table.pagesize", "10", false},
		{"table.page_size", "0", true},
		{"table.page_size", "abc", true},
		{"table.mobile_view", "cards", false},
		{"table.mobile_view", "grid", true},
		{"table.striped", "true", false},
		{"table.striped", "maybe", true},
		{"db.url", "postgres://localhost/motomind", false},
		{"nope.key", "1", true},
	}
	for _, tt := range tests {
		err := cfg.SetValue(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetValue(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}

	if v, _ := cfg.GetValue("table.page_size"); v != "10" {
		t.Errorf("page_size = %s, want 10", v)
	}
	if v, _ := cfg.GetValue("table.view"); v != "cards" {
		t.Errorf("mobile_view = %s, want cards", v)
	}
	if v, _ := cfg.GetValue("table.striped"); v != "true" {
		t.Errorf("striped = %s, want true", v)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Export.Dir = "~/exports"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Export.Dir != "~/exports" {
		t.Fatalf("export dir = %q", loaded.Export.Dir)
	}
}

func TestListKeysAndHelp(t *testing.T) {
	want := []string{
		"db.timeout", "db.url", "export.dir", "log.level",
		"table.auto_clamp", "table.breakpoint", "table.compact",
		"table.mobile_view", "table.page_size", "table.striped",
	}
	if diff := cmp.Diff(want, ListKeys()); diff != "" {
		t.Fatalf("ListKeys() mismatch (-want +got):\n%s", diff)
	}
	help := GenerateHelpText()
	for _, want := range []string{"Table:", "table.page_size", "(default: 25)", "Database:"} {
		if !strings.Contains(help, want) {
			t.Errorf("help text missing %q", want)
		}
	}
}
