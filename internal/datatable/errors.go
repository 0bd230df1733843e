package datatable

import (
	"errors"
	"fmt"
)

// ErrConfig is wrapped by every construction/update error caused by the
// caller handing the table an invalid configuration.
var ErrConfig = errors.New("invalid table configuration")

// Configuration errors. Each is returned wrapped together with ErrConfig.
var (
	ErrNoColumns          = errors.New("at least one column is required")
	ErrEmptyColumnKey     = errors.New("column key must not be empty")
	ErrDuplicateColumnKey = errors.New("duplicate column key")
	ErrNilAccessor        = errors.New("column accessor must not be nil")
	ErrNilKeyFunc         = errors.New("row key function must not be nil")
	ErrDuplicateRowKey    = errors.New("duplicate row key")
	ErrInvalidPageSize    = errors.New("page size must be positive")
	ErrInvalidPage        = errors.New("page must be at least 1")
)

// Operation errors.
var (
	ErrFeatureDisabled = errors.New("feature disabled for this table")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNotSortable     = errors.New("column is not sortable")
	ErrNotFilterable   = errors.New("column is not filterable")
	ErrLastColumn      = errors.New("cannot hide the last visible column")
	ErrUnknownRow      = errors.New("unknown row key")
	ErrUnknownAction   = errors.New("unknown bulk action")
	ErrNoPagination    = errors.New("table is not paginated")
	ErrExport          = errors.New("export failed")
	ErrCellFailed      = errors.New("cell render failed")
)

func configErr(err error, detail string) error {
	if detail == "" {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return fmt.Errorf("%w: %w: %s", ErrConfig, err, detail)
}

func featureErr(feature string) error {
	return fmt.Errorf("%w: %s", ErrFeatureDisabled, feature)
}
