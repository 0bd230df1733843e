package util

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	AppName    = "motomind"
	ConfigFile = "config.toml"
)

// Data file formats recognised by extension.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ConfigDir returns the per-user config directory.
// Follows XDG Base Directory spec on Linux, platform conventions elsewhere
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", AppName)
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), AppName)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if p := os.Getenv("MOTOMIND_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), ConfigFile)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// DetectFormat maps a file extension to a data format.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", ErrUnsupportedFormat
}

// RedactURL hides the password of a connection URL for display.
func RedactURL(url string) string {
	scheme := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if scheme < 0 || at < scheme {
		return url
	}
	creds := url[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return url[:scheme+3] + creds[:colon] + ":***" + url[at:]
	}
	return url
}
