// Package schema defines extraction schemas: named, ordered sets of
// expected output fields and their kinds for one extraction task.
package schema

// Kind represents the expected kind of an extracted field value.
type Kind string

const (
	KindString Kind = "string" // short string, trimmed on validation
	KindDate   Kind = "date"   // calendar date in yyyy-mm-dd form
	KindNumber Kind = "number" // decimal number
	KindText   Kind = "text"   // free text, accepted verbatim
)

// DateLayout is the only accepted layout for date-kind fields. Models are
// asked for this exact format and no fallback layouts are tried, so format
// drift surfaces as a validation failure instead of being silently absorbed.
const DateLayout = "2006-01-02"

// Field represents a single field in an extraction schema.
type Field struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Kind        Kind   `json:"kind" yaml:"kind" validate:"required,oneof=string date number text"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}
