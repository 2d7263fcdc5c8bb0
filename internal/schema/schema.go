// Package schema loads the level-record schema that fixes the column order
// and value types of the external decoder's output. The field order is a hard
// contract with the decode routine: it must match the decoder's column
// emission order and is not re-validated at runtime.
package schema

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field types accepted in a schema file.
const (
	TypeFloat  = "float"
	TypeInt    = "int"
	TypeString = "string"
)

// Field is one decoder output column.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Schema is the ordered list of decoder output columns.
type Schema struct {
	Fields []Field `yaml:"fields"`
}

// Load reads and validates a schema file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	if len(s.Fields) == 0 {
		return nil, fmt.Errorf("schema %s: no fields defined", path)
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema %s: field %d has no name", path, i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("schema %s: duplicate field %q", path, f.Name)
		}
		seen[f.Name] = true
		switch f.Type {
		case TypeFloat, TypeInt, TypeString:
		default:
			return nil, fmt.Errorf("schema %s: field %q has unknown type %q", path, f.Name, f.Type)
		}
	}

	return &s, nil
}

// Record holds one decoded level line keyed by field name. Numeric fields are
// float64, string fields are string.
type Record map[string]any

// Record splits a decoded line on whitespace and zips it positionally against
// the schema's field order, coercing each token per its field type. A line
// with fewer tokens than schema fields is malformed.
func (s *Schema) Record(line string) (Record, error) {
	tokens := strings.Fields(line)
	if len(tokens) < len(s.Fields) {
		return nil, fmt.Errorf("decoded line has %d fields, schema expects %d: %q",
			len(tokens), len(s.Fields), strings.TrimSpace(line))
	}

	rec := make(Record, len(s.Fields))
	for i, f := range s.Fields {
		switch f.Type {
		case TypeFloat, TypeInt:
			v, err := strconv.ParseFloat(tokens[i], 64)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			rec[f.Name] = v
		default:
			rec[f.Name] = tokens[i]
		}
	}
	return rec, nil
}

// Float returns a numeric field by name.
func (r Record) Float(name string) (float64, error) {
	v, ok := r[name]
	if !ok {
		return 0, fmt.Errorf("record has no field %q", name)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %q is not numeric", name)
	}
	return f, nil
}

// String returns a string field by name.
func (r Record) String(name string) (string, error) {
	v, ok := r[name]
	if !ok {
		return "", fmt.Errorf("record has no field %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", name)
	}
	return s, nil
}
