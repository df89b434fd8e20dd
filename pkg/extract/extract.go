package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/gleanerhq/gleaner/internal/logger"
	"github.com/gleanerhq/gleaner/pkg/schema"
)

// ModelCall is the injected capability that sends one extraction request to
// a model and returns the raw response text. Implementations own transport,
// credentials, timeouts, and attachment resolution; on failure they return a
// *ModelCallError. The pipeline treats the call as a black box and imposes no
// timeout or retry of its own: a single extraction is a single attempt, so a
// validation failure is always traceable to one specific raw response.
type ModelCall func(ctx context.Context, req Request) (string, error)

// Extractor ties the pipeline together: prompt building, the model call,
// parsing, and validation.
type Extractor struct {
	registry *schema.Registry
	call     ModelCall
}

// New creates an Extractor over a schema registry and a model-call
// capability.
func New(registry *schema.Registry, call ModelCall) *Extractor {
	return &Extractor{
		registry: registry,
		call:     call,
	}
}

// Extract runs one extraction against the named schema.
//
// Failures about the shape or content of the response are absorbed into the
// Report (ParseFailure set, zero valid records, raw response retained) so a
// stylistically drifting model never crashes the pipeline. Failures reaching
// the provider propagate unchanged: UnknownSchemaError when the schema is
// not registered, and the capability's ModelCallError on transport trouble.
func (e *Extractor) Extract(ctx context.Context, schemaName, sourceText string, opts ...RequestOption) (Report, error) {
	s, err := e.registry.Get(schemaName)
	if err != nil {
		return Report{}, err
	}

	req, err := NewRequest(s, sourceText, opts...)
	if err != nil {
		return Report{}, fmt.Errorf("build request for schema %q: %w", schemaName, err)
	}

	logger.Debug("extraction starting",
		"schema", s.Name,
		"source_size", len(sourceText),
		"attachment", req.Attachment() != "")

	raw, err := e.call(ctx, req)
	if err != nil {
		var mcErr *ModelCallError
		if errors.As(err, &mcErr) {
			return Report{}, mcErr
		}
		// Capabilities should return *ModelCallError; wrap stragglers so
		// callers still get the documented taxonomy.
		return Report{}, &ModelCallError{Message: err.Error(), Err: err}
	}

	logger.Debug("model response received", "schema", s.Name, "response_size", len(raw))

	records, err := Parse(raw)
	if err != nil {
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			parseErr = &ParseError{Kind: MalformedJSON, Detail: err.Error()}
		}
		logger.Debug("response parse failed",
			"schema", s.Name,
			"kind", string(parseErr.Kind),
			"detail", parseErr.Detail)
		return Report{
			Schema:       s.Name,
			Raw:          raw,
			ParseFailure: parseErr,
		}, nil
	}

	report := Validate(records, s)
	report.Raw = raw

	logger.Debug("extraction complete",
		"schema", s.Name,
		"total", report.Total,
		"valid", report.Valid,
		"invalid", report.Invalid)

	return report, nil
}
