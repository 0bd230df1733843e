// Package table renders a datatable.Table in the terminal. It provides an
// interactive viewer (sorting, per-column filters, selection, paging,
// column toggles, table and card layouts, CSV export) plus plain text,
// JSON and raw tab-separated printers for non-interactive output.
package table

import (
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/motomind/motomind/internal/datatable"
)

// DisplayOptions controls how a table is shown.
type DisplayOptions[T any] struct {
	// Title is shown in the interactive header.
	Title string
	// JSON outputs the displayed page as a JSON array of objects.
	JSON bool
	// Raw outputs the displayed page as tab-separated values (for piping).
	Raw bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool

	// Pager owns the page window when the table is paginated.
	Pager *Pager
	// ExportDir receives CSV exports started from the viewer.
	ExportDir string
	// WatchPath is reloaded through Reload whenever it changes on disk.
	WatchPath string
	Reload    func() ([]T, error)

	Logger *zap.Logger
	// Out defaults to os.Stdout.
	Out io.Writer
}

func (o DisplayOptions[T]) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// Display picks the output mode from the options and the environment, then
// renders the table.
func Display[T any](tbl *datatable.Table[T], opts DisplayOptions[T]) error {
	if opts.Raw {
		return PrintRaw(opts.out(), tbl)
	}

	if opts.JSON {
		return PrintJSON(opts.out(), tbl)
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if !isTTY || opts.NoPager || len(tbl.Data()) == 0 {
		PrintPlain(opts.out(), tbl)
		return nil
	}

	return Run(tbl, opts)
}
