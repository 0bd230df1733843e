// Package config loads and saves the user's motomind settings
// ($XDG_CONFIG_HOME/motomind/config.toml). Every settable field carries a
// `config:"section.key"` tag; reflection in reflect.go drives get/set,
// validation and the help text from those tags.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/motomind/motomind/internal/util"
)

// Config represents the config.toml file
type Config struct {
	Table  TableConfig  `toml:"table"`
	Export ExportConfig `toml:"export"`
	DB     DBConfig     `toml:"db"`
	Log    LogConfig    `toml:"log"`
}

// TableConfig contains defaults for the interactive table
type TableConfig struct {
	PageSize   int    `toml:"page_size" config:"table.page_size" default:"25" min:"1" max:"10000" desc:"Rows per page"`
	MobileView string `toml:"mobile_view" config:"table.mobile_view" default:"auto" enum:"auto,table,cards" desc:"Row layout: table, cards or auto by width"`
	Breakpoint int    `toml:"breakpoint" config:"table.breakpoint" default:"100" min:"20" max:"1000" desc:"Width below which auto layout shows cards"`
	Striped    bool   `toml:"striped" config:"table.striped" default:"false" desc:"Shade every other row"`
	Compact    bool   `toml:"compact" config:"table.compact" default:"false" desc:"Single-space column gaps"`
	AutoClamp  bool   `toml:"auto_clamp" config:"table.auto_clamp" default:"true" desc:"Jump back to the last page when a filter shrinks the result"`
}

// ExportConfig contains CSV export settings
type ExportConfig struct {
	Dir string `toml:"dir" config:"export.dir" default:"." desc:"Directory for CSV exports"`
}

// DBConfig contains the PostgreSQL source settings
type DBConfig struct {
	URL     string `toml:"url" config:"db.url" desc:"PostgreSQL connection URL for maintenance events"`
	Timeout int    `toml:"timeout" config:"db.timeout" default:"30" min:"1" max:"3600" desc:"Query timeout in seconds"`
}

// LogConfig contains diagnostic logging settings
type LogConfig struct {
	Level string `toml:"level" config:"log.level" default:"warn" enum:"debug,info,warn,error" desc:"Log level for diagnostics on stderr"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		Table: TableConfig{
			PageSize:   25,
			MobileView: "auto",
			Breakpoint: 100,
			AutoClamp:  true,
		},
		Export: ExportConfig{Dir: "."},
		DB:     DBConfig{Timeout: 30},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load reads the config file at path. A missing file yields the defaults.
// Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault reads the config from the standard location.
func LoadDefault() (*Config, error) {
	return Load(util.ConfigPath())
}

// Save writes the config file to path
func (c *Config) Save(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// GetValue returns a config value by key (uses reflection)
func (c *Config) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue sets a config value by key (uses reflection with validation)
func (c *Config) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}

// ExportDir returns the export directory with "~" expanded.
func (c *Config) ExportDir() string {
	return util.ExpandHome(c.Export.Dir)
}

// DatabaseURL prefers MOTOMIND_DB_URL over the file setting.
func (c *Config) DatabaseURL() string {
	if url := os.Getenv("MOTOMIND_DB_URL"); url != "" {
		return url
	}
	return c.DB.URL
}
