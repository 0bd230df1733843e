package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout motomind
var (
	ErrUnsupportedFormat = errors.New("unsupported data file format")
	ErrNoDataSource      = errors.New("no data source given")
	ErrInvalidFlag       = errors.New("invalid flag value")
)

// MotoError is a structured error with context and suggestions
type MotoError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *MotoError) Error() string {
	if e.Err != nil {
		return e.Title + ": " + e.Err.Error()
	}
	return e.Title
}

func (e *MotoError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *MotoError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}
	if e.Err != nil && e.Message == "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Err))
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new MotoError
func NewError(title string) *MotoError {
	return &MotoError{Title: title}
}

// WithMessage adds a detailed message
func (e *MotoError) WithMessage(msg string) *MotoError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *MotoError) WithContext(ctx string) *MotoError {
	e.Context = ctx
	return e
}

// WithCauses adds possible causes
func (e *MotoError) WithCauses(causes ...string) *MotoError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestions adds actionable suggestions
func (e *MotoError) WithSuggestions(sugs ...string) *MotoError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *MotoError) Wrap(err error) *MotoError {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for common cases
// ══════════════════════════════════════════════════════════════════════════

// DataFileError reports a data file that could not be read or parsed.
func DataFileError(path string, err error) *MotoError {
	return NewError("Cannot load data file").
		WithContext(path).
		WithCauses(
			"The file does not exist or is not readable",
			"The file extension does not match its contents",
		).
		WithSuggestions(
			"motomind view data.csv        # CSV with a header row",
			"motomind view data.json       # JSON array of objects",
		).
		Wrap(err)
}

// DatabaseConnectionError returns a structured error for DB connection issues
func DatabaseConnectionError(url string, err error) *MotoError {
	return NewError("Cannot connect to database").
		WithContext(RedactURL(url)).
		WithCauses(
			"Database server is not running",
			"Invalid connection credentials",
			"Network connectivity issues",
		).
		WithSuggestions(
			"motomind config db.url postgres://user@host/motomind",
			"motomind events --file events.csv   # use a file instead",
		).
		Wrap(err)
}

// TableConfigError reports an invalid table setup (columns, keys, paging).
func TableConfigError(err error) *MotoError {
	return NewError("Invalid table configuration").
		WithMessage(err.Error()).
		WithCauses(
			"Two rows share the same key column value",
			"A column spec repeats a key",
			"Page size is zero or negative",
		).
		WithSuggestions(
			"motomind view data.csv --key id   # pick a unique key column",
		).
		Wrap(err)
}

// InvalidFlagError returns an error for a malformed flag value
func InvalidFlagError(flag, value, example string) *MotoError {
	e := NewError(fmt.Sprintf("Invalid value for --%s: %q", flag, value)).Wrap(ErrInvalidFlag)
	if example != "" {
		e.WithSuggestions(example)
	}
	return e
}

// NoDataSourceError is returned when neither a file nor a database is given.
func NoDataSourceError() *MotoError {
	return NewError("No data source").
		WithMessage("Pass --file or --db, or set db.url in the config").
		WithSuggestions(
			"motomind events --file events.csv",
			"motomind config db.url postgres://user@host/motomind",
		).
		Wrap(ErrNoDataSource)
}
