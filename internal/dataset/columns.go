package dataset

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/util"
)

// Column formats understood by column specs.
const (
	FormatText     = "text"
	FormatNumber   = "number"
	FormatCurrency = "currency"
	FormatPercent  = "percent"
	FormatDate     = "date"
	FormatRelative = "relative"
)

// ErrUnknownField is returned when a column spec names a field the dataset
// does not have.
var ErrUnknownField = errors.New("unknown field")

// now is replaced in tests.
var now = time.Now

// ColumnSpec is one entry of a column spec file.
type ColumnSpec struct {
	Key    string `yaml:"key"`
	Header string `yaml:"header,omitempty"`
	// Field defaults to Key.
	Field      string `yaml:"field,omitempty"`
	Sortable   *bool  `yaml:"sortable,omitempty"`
	Filterable *bool  `yaml:"filterable,omitempty"`
	Align      string `yaml:"align,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	Format     string `yaml:"format,omitempty"`
}

// Spec describes how to show a dataset:
//
//	key_column: id
//	hidden: [notes]
//	columns:
//	  - key: cost
//	    header: Cost
//	    format: currency
//	    align: right
type Spec struct {
	KeyColumn string       `yaml:"key_column,omitempty"`
	Hidden    []string     `yaml:"hidden,omitempty"`
	Columns   []ColumnSpec `yaml:"columns"`
}

// LoadSpec reads a YAML column spec. Unknown keys are rejected.
func LoadSpec(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &spec, nil
}

// InferSpec builds a spec with one sortable, filterable column per field.
// Fields whose non-empty values all parse as numbers are right aligned and
// sorted numerically; fields that all parse as dates sort chronologically.
func InferSpec(ds *Dataset) *Spec {
	spec := &Spec{Columns: make([]ColumnSpec, len(ds.Fields))}
	for i, name := range ds.Fields {
		cs := ColumnSpec{Key: name, Format: inferFormat(ds.Records, name)}
		if cs.Format == FormatNumber {
			cs.Align = "right"
		}
		spec.Columns[i] = cs
	}
	return spec
}

func inferFormat(records []Record, field string) string {
	numbers, dates, seen := true, true, 0
	for _, r := range records {
		v := r.Get(field)
		switch x := v.(type) {
		case nil:
			continue
		case string:
			if x == "" {
				continue
			}
			if _, ok := util.ParseNumber(x); !ok {
				numbers = false
			}
			if _, ok := util.ParseDate(x); !ok {
				dates = false
			}
		case int, int64, uint64, float64:
			dates = false
		case time.Time:
			numbers = false
		default:
			numbers, dates = false, false
		}
		seen++
		if !numbers && !dates {
			break
		}
	}
	switch {
	case seen == 0:
		return FormatText
	case numbers:
		return FormatNumber
	case dates:
		return FormatDate
	}
	return FormatText
}

// Build turns the column spec into table columns, checking fields against the
// dataset. Duplicate keys are left for datatable.New to reject.
func (s *Spec) Build(ds *Dataset) ([]datatable.Column[Record], error) {
	fields := make(map[string]bool, len(ds.Fields))
	for _, f := range ds.Fields {
		fields[f] = true
	}

	cols := make([]datatable.Column[Record], 0, len(s.Columns))
	for _, cs := range s.Columns {
		field := cs.Field
		if field == "" {
			field = cs.Key
		}
		if len(ds.Records) > 0 && !fields[field] {
			return nil, fmt.Errorf("column %q: %w %q", cs.Key, ErrUnknownField, field)
		}
		align, err := datatable.ParseAlign(cs.Align)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", cs.Key, err)
		}
		format := cs.Format
		if format == "" {
			format = FormatText
		}
		col := datatable.Column[Record]{
			Key:        cs.Key,
			Header:     cs.Header,
			Accessor:   accessor(field, format),
			Sortable:   cs.Sortable == nil || *cs.Sortable,
			Filterable: cs.Filterable == nil || *cs.Filterable,
			Align:      align,
			Width:      cs.Width,
		}
		if col.Render, err = renderer(format); err != nil {
			return nil, fmt.Errorf("column %q: %w", cs.Key, err)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// KeyFunc returns the row key function: the stringified key column when
// given, otherwise the content hash.
func (s *Spec) KeyFunc() datatable.KeyFunc[Record] {
	if s.KeyColumn == "" {
		return Record.Hash
	}
	field := s.KeyColumn
	return func(r Record) string {
		return datatable.Stringify(r.Get(field))
	}
}

func accessor(field, format string) func(Record) any {
	switch format {
	case FormatNumber, FormatCurrency, FormatPercent:
		return func(r Record) any { return toNumber(r.Get(field)) }
	case FormatDate, FormatRelative:
		return func(r Record) any { return toTime(r.Get(field)) }
	}
	return func(r Record) any { return r.Get(field) }
}

func renderer(format string) (func(any, Record) string, error) {
	switch format {
	case FormatText:
		return nil, nil
	case FormatNumber:
		return numberRender(util.FormatNumber), nil
	case FormatCurrency:
		return numberRender(util.FormatCurrency), nil
	case FormatPercent:
		return numberRender(util.FormatPercent), nil
	case FormatDate:
		return timeRender(func(t time.Time) string { return t.Format("2006-01-02") }), nil
	case FormatRelative:
		return timeRender(func(t time.Time) string { return util.RelativeTime(t, now()) }), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func numberRender(format func(float64) string) func(any, Record) string {
	return func(v any, _ Record) string {
		if f, ok := v.(float64); ok {
			return format(f)
		}
		return datatable.Stringify(v)
	}
}

func timeRender(format func(time.Time) string) func(any, Record) string {
	return func(v any, _ Record) string {
		if t, ok := v.(time.Time); ok && !t.IsZero() {
			return format(t)
		}
		return datatable.Stringify(v)
	}
}

// toNumber converts to float64; empty values become nil and text that is
// not a number is kept so it still shows.
func toNumber(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case float64:
		return x
	case string:
		if x == "" {
			return nil
		}
		if f, ok := util.ParseNumber(x); ok {
			return f
		}
	}
	return v
}

func toTime(v any) any {
	switch x := v.(type) {
	case string:
		if x == "" {
			return nil
		}
		if t, ok := util.ParseDate(x); ok {
			return t
		}
	}
	return v
}
