package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/motomind/motomind/internal/datatable"
)

// PrintJSON writes the displayed page as a JSON array of objects keyed by
// column key. Values are the raw accessor results; failed cells are null.
func PrintJSON[T any](w io.Writer, tbl *datatable.Table[T]) error {
	cols := tbl.VisibleColumns()
	rows := tbl.Rows()
	results := make([]map[string]any, len(rows))

	for i, row := range rows {
		obj := make(map[string]any, len(cols))
		for _, c := range cols {
			v, err := tbl.Value(row, c.Key)
			if err != nil {
				v = nil
			}
			obj[c.Key] = v
		}
		results[i] = obj
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// PrintRaw writes the displayed page as tab-separated raw values, one row
// per line and no header, for piping.
func PrintRaw[T any](w io.Writer, tbl *datatable.Table[T]) error {
	cols := tbl.VisibleColumns()
	fields := make([]string, len(cols))
	for _, row := range tbl.Rows() {
		for i, c := range cols {
			v, err := tbl.Value(row, c.Key)
			if err != nil {
				fields[i] = ""
				continue
			}
			fields[i] = sanitize(datatable.Stringify(v))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// PrintPlain writes the displayed page as an aligned table for non-TTY
// output, followed by a caption with the page position.
func PrintPlain[T any](w io.Writer, tbl *datatable.Table[T]) {
	if tbl.IsEmpty() {
		fmt.Fprintf(w, "(%s)\n", tbl.EmptyState())
		return
	}

	g := buildGrid(tbl)
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(g.headers)

	alignment := make([]int, len(g.aligns))
	for i, a := range g.aligns {
		switch a {
		case datatable.AlignRight:
			alignment[i] = tablewriter.ALIGN_RIGHT
		case datatable.AlignCenter:
			alignment[i] = tablewriter.ALIGN_CENTER
		default:
			alignment[i] = tablewriter.ALIGN_LEFT
		}
	}
	table.SetColumnAlignment(alignment)
	table.AppendBulk(g.cells)
	table.Render()
	// tablewriter wraps captions to the table width; keep ours on one line
	fmt.Fprintln(w, pageCaption(tbl.PageInfo()))
}

// pageCaption summarizes the page window, e.g. "rows 26-50 of 112 (page 2/5)".
func pageCaption(info datatable.PageInfo) string {
	if info.TotalPages <= 1 {
		if info.TotalRows == 1 {
			return "(1 row)"
		}
		return fmt.Sprintf("(%d rows)", info.TotalRows)
	}
	if info.First == 0 {
		return fmt.Sprintf("page %d/%d is empty (%d rows)", info.CurrentPage, info.TotalPages, info.TotalRows)
	}
	return fmt.Sprintf("rows %d-%d of %d (page %d/%d)", info.First, info.Last, info.TotalRows, info.CurrentPage, info.TotalPages)
}
