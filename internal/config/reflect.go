package config

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ConfigField represents metadata about a config field extracted from struct tags
type ConfigField struct {
	Key      string   // e.g., "table.page_size"
	Default  string   // default value as string
	Desc     string   // description for help text
	Min      int      // minimum value for int fields (0 = no limit)
	Max      int      // maximum value for int fields (0 = no limit)
	Enum     []string // allowed values for string fields (nil = any)
	Type     string   // "string", "int" or "bool"
	Category string   // e.g., "table", "export", "db"
}

var (
	fieldsOnce  sync.Once
	fieldsCache []ConfigField
)

// configFields extracts all config fields from Config using reflection
func configFields() []ConfigField {
	fieldsOnce.Do(func() {
		var fields []ConfigField
		extractFields(reflect.TypeOf(Config{}), &fields)

		// Sort by key for consistent ordering
		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})
		fieldsCache = fields
	})
	return fieldsCache
}

// extractFields recursively extracts config fields from a struct
func extractFields(t reflect.Type, fields *[]ConfigField) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		configKey := field.Tag.Get("config")
		if configKey == "" {
			if field.Type.Kind() == reflect.Struct {
				extractFields(field.Type, fields)
			}
			continue
		}

		cf := ConfigField{
			Key:      configKey,
			Default:  field.Tag.Get("default"),
			Desc:     field.Tag.Get("desc"),
			Category: strings.Split(configKey, ".")[0],
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			cf.Enum = strings.Split(enum, ",")
		}

		// Parse min/max for validation
		if minStr := field.Tag.Get("min"); minStr != "" {
			cf.Min, _ = strconv.Atoi(minStr)
		}
		if maxStr := field.Tag.Get("max"); maxStr != "" {
			cf.Max, _ = strconv.Atoi(maxStr)
		}

		switch field.Type.Kind() {
		case reflect.Int:
			cf.Type = "int"
		case reflect.Bool:
			cf.Type = "bool"
		case reflect.String:
			cf.Type = "string"
		}

		*fields = append(*fields, cf)
	}
}

// findField finds a config field by key
func findField(key string) *ConfigField {
	key = normalizeKey(key)
	for _, f := range configFields() {
		if f.Key == key {
			return &f
		}
	}
	return nil
}

// normalizeKey handles key aliases
func normalizeKey(key string) string {
	aliases := map[string]string{
		"table.pagesize":   "table.page_size",
		"table.mobileview": "table.mobile_view",
		"table.view":       "table.mobile_view",
	}
	key = strings.ToLower(key)
	if normalized, ok := aliases[key]; ok {
		return normalized
	}
	return key
}

// lookup navigates "section.key" to the tagged struct field.
func lookup(cfg *Config, key string) (reflect.Value, bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	// Find the nested struct by toml tag
	var section reflect.Value
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == parts[0] {
			section = v.Field(i)
			break
		}
	}
	if !section.IsValid() || section.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	st := section.Type()
	for i := 0; i < st.NumField(); i++ {
		if st.Field(i).Tag.Get("config") == key {
			return section.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// getFieldValue gets a field value from the config using reflection
func getFieldValue(cfg *Config, key string) (string, bool) {
	fv, ok := lookup(cfg, normalizeKey(key))
	if !ok {
		return "", false
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String(), true
	case reflect.Int:
		return strconv.FormatInt(fv.Int(), 10), true
	case reflect.Bool:
		return strconv.FormatBool(fv.Bool()), true
	}
	return "", false
}

// setFieldValue sets a field value on the config using reflection
func setFieldValue(cfg *Config, key, value string) error {
	key = normalizeKey(key)

	field := findField(key)
	if field == nil {
		return fmt.Errorf("unknown config key: %s", key)
	}
	fv, ok := lookup(cfg, key)
	if !ok {
		return fmt.Errorf("field not found: %s", key)
	}

	switch fv.Kind() {
	case reflect.String:
		if err := field.checkEnum(value); err != nil {
			return err
		}
		fv.SetString(value)

	case reflect.Int:
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		if err := field.checkRange(intVal); err != nil {
			return err
		}
		fv.SetInt(int64(intVal))

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		fv.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type for %s", key)
	}
	return nil
}

func (f ConfigField) checkRange(v int) error {
	if f.Min != 0 && v < f.Min {
		return fmt.Errorf("%s: value %d is below minimum %d", f.Key, v, f.Min)
	}
	if f.Max != 0 && v > f.Max {
		return fmt.Errorf("%s: value %d exceeds maximum %d", f.Key, v, f.Max)
	}
	return nil
}

func (f ConfigField) checkEnum(v string) error {
	if f.Enum == nil || slices.Contains(f.Enum, v) {
		return nil
	}
	return fmt.Errorf("%s: %q is not one of %s", f.Key, v, strings.Join(f.Enum, ", "))
}

// Validate checks every field against its min/max/enum tags. A config read
// from disk goes through the same rules as one set from the CLI.
func (c *Config) Validate() error {
	for _, f := range configFields() {
		fv, ok := lookup(c, f.Key)
		if !ok {
			continue
		}
		switch fv.Kind() {
		case reflect.Int:
			if err := f.checkRange(int(fv.Int())); err != nil {
				return err
			}
		case reflect.String:
			if err := f.checkEnum(fv.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListKeys returns all available config keys
func ListKeys() []string {
	fields := configFields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// GenerateHelpText generates help text for config options
func GenerateHelpText() string {
	var sb strings.Builder

	byCategory := make(map[string][]ConfigField)
	for _, f := range configFields() {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	// Define category order and titles
	categories := []struct {
		key   string
		title string
	}{
		{"table", "Table"},
		{"export", "Export"},
		{"db", "Database"},
		{"log", "Logging"},
	}

	for _, cat := range categories {
		fields, ok := byCategory[cat.key]
		if !ok || len(fields) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("  %s:\n", cat.title))
		for _, f := range fields {
			defaultStr := ""
			if f.Default != "" {
				defaultStr = fmt.Sprintf(" (default: %s)", f.Default)
			}
			// Pad key to align descriptions
			sb.WriteString(fmt.Sprintf("    %-22s %s%s\n", f.Key, f.Desc, defaultStr))
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
