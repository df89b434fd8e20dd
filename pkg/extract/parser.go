package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is one parsed item from a model response: field name to raw value,
// exactly as the model produced it. No schema knowledge is applied here;
// semantic checking is the validator's job.
type Record map[string]any

// Parse extracts an ordered sequence of records from a raw model response.
//
// Models frequently wrap JSON in prose or markdown code fences despite
// instructions, so Parse slices between the first '[' and the last ']' before
// attempting a JSON array parse. Failures are reported precisely via
// ParseError; nothing is dropped or guessed.
func Parse(raw string) ([]Record, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, &ParseError{Kind: NoJSONFound, Detail: "no JSON array found in response"}
	}

	candidate := raw[start : end+1]

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &elems); err != nil {
		return nil, &ParseError{Kind: MalformedJSON, Detail: err.Error()}
	}

	records := make([]Record, 0, len(elems))
	for i, elem := range elems {
		var rec Record
		if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, &ParseError{
				Kind:   UnexpectedShape,
				Detail: fmt.Sprintf("element %d is not a JSON object", i),
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
