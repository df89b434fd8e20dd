// Package extract implements a provider-agnostic structured-extraction
// pipeline: build an extraction prompt from a schema, send it through an
// injected model-call capability, parse the raw response into records, and
// validate the records against the schema.
package extract

import (
	"fmt"
	"strings"

	"github.com/gleanerhq/gleaner/pkg/schema"
)

const systemPrompt = `You are a data extraction assistant. Your task is to extract structured records from source material.

Rules:
1. Extract only the fields that are requested
2. Return a JSON array of objects, one object per record
3. Use exactly the requested field names as keys
4. If a record does not contain a requested field, omit that key
5. Output dates in yyyy-mm-dd format
6. For numbers, output the numeric value only (no currency symbols or units)`

// SystemPrompt returns the system prompt used for extraction requests.
func SystemPrompt() string {
	return systemPrompt
}

// Request is one extraction request: the target schema, the source material,
// and the instruction text derived from the schema. Immutable once built.
type Request struct {
	schema      schema.Schema
	sourceText  string
	attachment  string
	instruction string
}

// RequestOption configures request construction.
type RequestOption func(*requestConfig)

type requestConfig struct {
	attachment string
	preamble   string
}

// WithAttachment supplies an opaque attachment reference (file path, URL, or
// uploaded-resource identifier). The pipeline never opens or decodes it; the
// model-call capability resolves it.
func WithAttachment(ref string) RequestOption {
	return func(c *requestConfig) {
		c.attachment = ref
	}
}

// WithPreamble prepends task-specific context to the generated instruction.
func WithPreamble(text string) RequestOption {
	return func(c *requestConfig) {
		c.preamble = text
	}
}

// NewRequest builds an extraction request for the given schema and source
// text. Source text must be non-empty unless an attachment is supplied.
func NewRequest(s schema.Schema, sourceText string, opts ...RequestOption) (Request, error) {
	cfg := &requestConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if strings.TrimSpace(sourceText) == "" && cfg.attachment == "" {
		return Request{}, fmt.Errorf("source text is empty and no attachment was supplied")
	}

	return Request{
		schema:      s,
		sourceText:  sourceText,
		attachment:  cfg.attachment,
		instruction: buildInstruction(s, cfg.preamble),
	}, nil
}

// Schema returns the target schema.
func (r Request) Schema() schema.Schema { return r.schema }

// SourceText returns the raw source material.
func (r Request) SourceText() string { return r.sourceText }

// Attachment returns the opaque attachment reference, or "" if none.
func (r Request) Attachment() string { return r.attachment }

// Instruction returns the generated instruction text.
func (r Request) Instruction() string { return r.instruction }

// Prompt returns the full user prompt: instruction plus source material.
func (r Request) Prompt() string {
	var sb strings.Builder
	sb.WriteString(r.instruction)

	if strings.TrimSpace(r.sourceText) != "" {
		sb.WriteString("\n## Source\n")
		sb.WriteString("```\n")
		sb.WriteString(r.sourceText)
		sb.WriteString("\n```\n")
	} else {
		sb.WriteString("\nThe source material is supplied as an attachment.\n")
	}

	return sb.String()
}

// buildInstruction enumerates the schema's fields in declared order, names
// the required date format for date-kind fields, and instructs the model to
// emit only the JSON array.
func buildInstruction(s schema.Schema, preamble string) string {
	var sb strings.Builder

	if preamble != "" {
		sb.WriteString(preamble)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Extract every matching record from the source material.\n")
	if s.Description != "" {
		sb.WriteString(s.Description)
		sb.WriteString("\n")
	}

	sb.WriteString("\n## Fields to Extract\n")
	for _, f := range s.Fields {
		sb.WriteString("- ")
		sb.WriteString(f.Name)
		sb.WriteString(" (")
		sb.WriteString(string(f.Kind))
		if f.Required {
			sb.WriteString(", required")
		}
		sb.WriteString(")")
		if f.Kind == schema.KindDate {
			sb.WriteString(" in yyyy-mm-dd format")
		}
		if f.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(f.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nReturn one JSON object per record, collected in a single JSON array.\n")
	sb.WriteString("Output only the JSON array, no explanatory text.\n")

	return sb.String()
}
