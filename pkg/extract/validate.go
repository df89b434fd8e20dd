package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gleanerhq/gleaner/pkg/schema"
)

// Validate checks parsed records against the schema and partitions them into
// valid and invalid. A required-field failure marks that record invalid but
// never aborts processing of subsequent records: partial success is the
// expected common case given model unreliability.
func Validate(records []Record, s schema.Schema) Report {
	report := Report{
		Schema:  s.Name,
		Records: make([]ValidatedRecord, 0, len(records)),
		Total:   len(records),
	}

	for i, rec := range records {
		vr := validateRecord(i, rec, s)
		report.Records = append(report.Records, vr)
		report.Failures = append(report.Failures, vr.Failures...)
		if vr.Valid {
			report.Valid++
		} else {
			report.Invalid++
		}
	}

	return report
}

func validateRecord(index int, rec Record, s schema.Schema) ValidatedRecord {
	out := ValidatedRecord{
		Fields: make(Record, len(rec)),
		Valid:  true,
	}

	for _, f := range s.Fields {
		raw, present := rec[f.Name]
		if !present {
			if f.Required {
				out.Failures = append(out.Failures, FieldFailure{
					Record: index,
					Field:  f.Name,
					Reason: MissingField,
					Detail: "required field is missing",
				})
			}
			continue
		}

		coerced, failure := coerce(f, raw)
		if failure != nil {
			failure.Record = index
			out.Failures = append(out.Failures, *failure)
			// Keep the raw value so reviewers can see what the model sent.
			out.Fields[f.Name] = raw
			continue
		}
		out.Fields[f.Name] = coerced
	}

	// Undeclared keys are preserved and flagged, but never invalidate the
	// record.
	for key, val := range rec {
		if _, declared := s.FieldByName(key); !declared {
			out.Fields[key] = val
			out.Failures = append(out.Failures, FieldFailure{
				Record: index,
				Field:  key,
				Reason: UnexpectedField,
				Detail: "field is not declared in the schema",
			})
		}
	}

	for _, failure := range out.Failures {
		if failure.Fatal() {
			out.Valid = false
			break
		}
	}

	return out
}

// coerce converts a raw value to its declared kind. The returned failure has
// Record unset; the caller fills it in.
func coerce(f schema.Field, raw any) (any, *FieldFailure) {
	switch f.Kind {
	case schema.KindString:
		if s, ok := raw.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return fmt.Sprintf("%v", raw), nil

	case schema.KindText:
		return raw, nil

	case schema.KindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, &FieldFailure{
				Field:  f.Name,
				Reason: InvalidDate,
				Detail: fmt.Sprintf("expected a yyyy-mm-dd string, got %T", raw),
			}
		}
		t, err := time.Parse(schema.DateLayout, strings.TrimSpace(s))
		if err != nil {
			return nil, &FieldFailure{
				Field:  f.Name,
				Reason: InvalidDate,
				Detail: fmt.Sprintf("%q does not parse as yyyy-mm-dd", s),
			}
		}
		return t, nil

	case schema.KindNumber:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case string:
			// Models quote numbers inconsistently; a quoted decimal is not
			// the kind of drift the review step needs surfaced.
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, &FieldFailure{
					Field:  f.Name,
					Reason: InvalidNumber,
					Detail: fmt.Sprintf("%q does not parse as a decimal", v),
				}
			}
			return n, nil
		default:
			return nil, &FieldFailure{
				Field:  f.Name,
				Reason: InvalidNumber,
				Detail: fmt.Sprintf("expected a number, got %T", raw),
			}
		}

	default:
		// Unreachable for schemas that passed Check.
		return raw, nil
	}
}
