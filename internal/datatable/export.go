package datatable

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ExportCSV writes the visible columns of every filtered row (sort order,
// pagination ignored) as CSV: one header line of column labels, then one
// line per row. Every field is double-quoted with inner quotes doubled;
// lines end in LF. Writer errors are returned wrapped in ErrExport.
func (t *Table[T]) ExportCSV(w io.Writer) error {
	if !t.features.Exportable {
		return featureErr("export")
	}
	cols := t.VisibleColumns()
	bw := bufio.NewWriter(w)

	fields := make([]string, len(cols))
	for i, c := range cols {
		fields[i] = c.label()
	}
	writeRecord(bw, fields)

	for _, idx := range t.derived {
		for i, c := range cols {
			v, err := t.value(c, idx)
			if err != nil {
				fields[i] = ""
				continue
			}
			fields[i] = Stringify(v)
		}
		writeRecord(bw, fields)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

// writeRecord ignores errors; bufio.Writer keeps the first one for Flush.
func writeRecord(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}
