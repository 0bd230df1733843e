package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/motomind/motomind/internal/util"
)

// ErrNotTabular is returned for JSON/YAML documents that are not a list of
// objects.
var ErrNotTabular = errors.New("document is not a list of objects")

// LoadFile reads a CSV, JSON (comments allowed) or YAML file, chosen by
// extension.
func LoadFile(path string) (*Dataset, error) {
	format, err := util.DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ds, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ds.Path = path
	return ds, nil
}

// Parse decodes data in the given format (util.FormatCSV, FormatJSON or
// FormatYAML).
func Parse(data []byte, format string) (*Dataset, error) {
	var (
		names []string
		rows  [][]any
		err   error
	)
	switch format {
	case util.FormatCSV:
		names, rows, err = parseCSV(data)
	case util.FormatJSON:
		names, rows, err = parseJSON(data)
	case util.FormatYAML:
		names, rows, err = parseYAML(data)
	default:
		return nil, util.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return &Dataset{Format: format, Fields: names, Records: build(names, rows)}, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// CSV
// ═══════════════════════════════════════════════════════════════════════════

func parseCSV(data []byte) ([]string, [][]any, error) {
	r := csv.NewReader(bytes.NewReader(util.TrimBOM(data)))
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parsing csv header: %w", err)
	}
	names := make([]string, len(head))
	for i, h := range head {
		names[i] = util.ToValidUTF8(h)
	}

	var rows [][]any
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parsing csv: %w", err)
		}
		values := make([]any, len(rec))
		for i, f := range rec {
			values[i] = util.ToValidUTF8(f)
		}
		rows = append(rows, values)
	}
	return names, rows, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// JSON / YAML: union of object keys in first-seen order
// ═══════════════════════════════════════════════════════════════════════════

type columnSet struct {
	names []string
	index map[string]int
}

func (c *columnSet) add(name string) int {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		return i
	}
	c.index[name] = len(c.names)
	c.names = append(c.names, name)
	return len(c.names) - 1
}

// pad extends every row to the final column count; missing keys stay nil.
func (c *columnSet) pad(rows [][]any) [][]any {
	for i, r := range rows {
		if len(r) < len(c.names) {
			rows[i] = append(r, make([]any, len(c.names)-len(r))...)
		}
	}
	return rows
}

func parseJSON(data []byte) ([]string, [][]any, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(util.TrimBOM(data))))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parsing json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, nil, ErrNotTabular
	}

	var cols columnSet
	var rows [][]any
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("parsing json: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, nil, ErrNotTabular
		}
		var row []any
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, nil, fmt.Errorf("parsing json: %w", err)
			}
			key, _ := keyTok.(string)
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, nil, fmt.Errorf("parsing json field %q: %w", key, err)
			}
			i := cols.add(key)
			for len(row) <= i {
				row = append(row, nil)
			}
			row[i] = jsonValue(v)
		}
		if _, err := dec.Token(); err != nil { // '}'
			return nil, nil, fmt.Errorf("parsing json: %w", err)
		}
		rows = append(rows, row)
	}
	return cols.names, cols.pad(rows), nil
}

// jsonValue turns json.Number into int64 when exact, float64 otherwise.
func jsonValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return string(n)
}

func parseYAML(data []byte) ([]string, [][]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, nil, ErrNotTabular
	}

	var cols columnSet
	rows := make([][]any, 0, len(root.Content))
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, nil, fmt.Errorf("line %d: %w", item.Line, ErrNotTabular)
		}
		var row []any
		for k := 0; k+1 < len(item.Content); k += 2 {
			key := item.Content[k].Value
			var v any
			if err := item.Content[k+1].Decode(&v); err != nil {
				return nil, nil, fmt.Errorf("line %d: field %q: %w", item.Content[k+1].Line, key, err)
			}
			i := cols.add(key)
			for len(row) <= i {
				row = append(row, nil)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return cols.names, cols.pad(rows), nil
}
