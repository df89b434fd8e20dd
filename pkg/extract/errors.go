package extract

import "fmt"

// ParseErrorKind classifies why a raw model response could not be parsed.
type ParseErrorKind string

const (
	// NoJSONFound means the response contains no JSON array at all.
	NoJSONFound ParseErrorKind = "no_json_found"
	// MalformedJSON means a candidate array was found but is not valid JSON.
	MalformedJSON ParseErrorKind = "malformed_json"
	// UnexpectedShape means the JSON parsed but is not an array of objects.
	UnexpectedShape ParseErrorKind = "unexpected_shape"
)

// ParseError reports a failure to turn a raw model response into records.
// It is never raised past the orchestrator: Extract folds it into the report
// so callers can still inspect the raw response.
type ParseError struct {
	Kind   ParseErrorKind `json:"kind" yaml:"kind"`
	Detail string         `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("parse error: %s", e.Kind)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Kind, e.Detail)
}

// ModelCallError reports a transport or provider failure from the injected
// model-call capability. The pipeline surfaces it unmodified: unlike shape
// problems it cannot be folded into a report, because there is no response
// to report on.
type ModelCallError struct {
	Status  int    // HTTP-ish status when known, zero otherwise
	Message string
	Err     error // underlying SDK or transport error, may be nil
}

func (e *ModelCallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model call failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("model call failed: %s", e.Message)
}

func (e *ModelCallError) Unwrap() error { return e.Err }
