package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Schema describes the records one extraction task is expected to produce.
// Field order is significant: prompts enumerate fields in declared order and
// tabular output uses the same order for its columns.
type Schema struct {
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields" validate:"min=1,dive"`
}

var validate = validator.New()

// New creates a Schema and checks its invariants: at least one field, unique
// field names, at least one required field.
func New(name string, fields ...Field) (Schema, error) {
	s := Schema{Name: name, Fields: fields}
	if err := s.Check(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Check validates the schema definition itself. It is called by New and by
// the file loaders; callers who build a Schema literal should call it once
// before use.
func (s Schema) Check() error {
	if err := validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("schema %q: field %s failed %q validation", s.Name, e.Namespace(), e.Tag())
		}
		return fmt.Errorf("schema %q: %w", s.Name, err)
	}

	seen := make(map[string]struct{}, len(s.Fields))
	anyRequired := false
	for _, f := range s.Fields {
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("schema %q: duplicate field name %q", s.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.Required {
			anyRequired = true
		}
	}
	if !anyRequired {
		return fmt.Errorf("schema %q: at least one field must be required", s.Name)
	}
	return nil
}

// FieldByName returns the field descriptor for name.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in declared order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// FromFile loads a schema from a JSON or YAML file.
func FromFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to read schema file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FromJSON(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return Schema{}, fmt.Errorf("unsupported schema file format: %s", ext)
	}
}

// FromJSON creates a schema from JSON data.
func FromJSON(data []byte) (Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("failed to parse JSON schema: %w", err)
	}
	if err := s.Check(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// FromYAML creates a schema from YAML data.
func FromYAML(data []byte) (Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("failed to parse YAML schema: %w", err)
	}
	if err := s.Check(); err != nil {
		return Schema{}, err
	}
	return s, nil
}
