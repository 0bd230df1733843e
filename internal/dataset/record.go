// Package dataset loads schemaless tabular files (CSV, JSON, YAML) as
// ordered records so any file can be shown in a datatable.
package dataset

import (
	"slices"
	"strconv"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/util"
)

// header is shared by every record of a dataset.
type header struct {
	names []string
	index map[string]int
}

func newHeader(names []string) *header {
	h := &header{names: names, index: make(map[string]int, len(names))}
	for i, n := range names {
		if _, dup := h.index[n]; !dup {
			h.index[n] = i
		}
	}
	return h
}

// Record is one row: values in header order. CSV values are strings;
// JSON and YAML values keep their decoded type.
type Record struct {
	header *header
	values []any
	hash   string
}

// Get returns the value of a field, nil when the field is absent.
func (r Record) Get(field string) any {
	v, _ := r.Lookup(field)
	return v
}

// Lookup returns the value of a field and whether the record has it.
func (r Record) Lookup(field string) (any, bool) {
	if r.header == nil {
		return nil, false
	}
	i, ok := r.header.index[field]
	if !ok || i >= len(r.values) {
		return nil, false
	}
	return r.values[i], true
}

// Fields returns the field names in file order.
func (r Record) Fields() []string {
	if r.header == nil {
		return nil
	}
	return slices.Clone(r.header.names)
}

// Values returns the values in field order.
func (r Record) Values() []any {
	return slices.Clone(r.values)
}

// Hash is a content key: blake3 over the stringified values, with an
// occurrence suffix for repeated rows.
func (r Record) Hash() string {
	return r.hash
}

// Dataset is a loaded file.
type Dataset struct {
	Path    string
	Format  string
	Fields  []string
	Records []Record
}

func build(names []string, rows [][]any) []Record {
	h := newHeader(names)
	records := make([]Record, len(rows))
	seen := make(map[string]int, len(rows))

	strs := make([]string, len(names))
	for i, values := range rows {
		for j := range strs {
			strs[j] = ""
			if j < len(values) {
				strs[j] = datatable.Stringify(values[j])
			}
		}
		hash := util.RowHash(strs)
		if n := seen[hash]; n > 0 {
			seen[hash] = n + 1
			hash = hash + "#" + strconv.Itoa(n)
		} else {
			seen[hash] = 1
		}
		records[i] = Record{header: h, values: values, hash: hash}
	}
	return records
}
