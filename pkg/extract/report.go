package extract

// FailureReason classifies a per-field validation failure.
type FailureReason string

const (
	// MissingField means a required field is absent from the record.
	MissingField FailureReason = "missing_field"
	// InvalidDate means a date field does not parse as strict yyyy-mm-dd.
	InvalidDate FailureReason = "invalid_date"
	// InvalidNumber means a number field does not parse as a decimal.
	InvalidNumber FailureReason = "invalid_number"
	// UnexpectedField flags a key not declared in the schema. Informational
	// only: the value is preserved and the record stays valid.
	UnexpectedField FailureReason = "unexpected_field"
)

// FieldFailure locates one validation failure within a report.
type FieldFailure struct {
	Record int           `json:"record" yaml:"record"` // index into Report.Records
	Field  string        `json:"field" yaml:"field"`
	Reason FailureReason `json:"reason" yaml:"reason"`
	Detail string        `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Fatal reports whether this failure marks the whole record invalid.
func (f FieldFailure) Fatal() bool {
	return f.Reason != UnexpectedField
}

// ValidatedRecord is one record after kind coercion. Fields holds the coerced
// values (time.Time for dates, float64 for numbers, trimmed strings) plus any
// undeclared keys as-is. Invalid records keep their raw values so callers can
// review what the model actually produced.
type ValidatedRecord struct {
	Fields   Record         `json:"fields" yaml:"fields"`
	Valid    bool           `json:"valid" yaml:"valid"`
	Failures []FieldFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Report is the complete outcome of one extraction call. Callers always get
// a full report (possibly all-invalid) or a ModelCallError, never a partial
// state.
type Report struct {
	Schema  string            `json:"schema" yaml:"schema"`
	Records []ValidatedRecord `json:"records" yaml:"records"`
	Total   int               `json:"total" yaml:"total"`
	Valid   int               `json:"valid" yaml:"valid"`
	Invalid int               `json:"invalid" yaml:"invalid"`
	// Failures aggregates every per-field failure across Records, in record
	// order.
	Failures []FieldFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	// Raw is the unparsed model response, always retained for debugging.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`
	// ParseFailure is set when the response could not be parsed at all; the
	// report then carries zero records.
	ParseFailure *ParseError `json:"parse_failure,omitempty" yaml:"parse_failure,omitempty"`
}

// ValidRecords returns the coerced field maps of the valid records, in order.
func (r Report) ValidRecords() []Record {
	out := make([]Record, 0, r.Valid)
	for _, rec := range r.Records {
		if rec.Valid {
			out = append(out, rec.Fields)
		}
	}
	return out
}
