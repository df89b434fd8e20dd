package llm

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"

	"github.com/gleanerhq/gleaner/pkg/extract"
)

// CallConfig tunes the completion parameters one model call uses.
type CallConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultCallConfig returns sensible defaults for extraction work: low
// temperature, enough output budget for multi-record responses.
func DefaultCallConfig() CallConfig {
	return CallConfig{
		MaxTokens:   8192,
		Temperature: 0.1,
	}
}

// AsModelCall adapts a Provider into the extraction pipeline's injected
// model-call capability. Provider failures are mapped to ModelCallError with
// the HTTP status surfaced when the SDK exposes one.
func AsModelCall(p Provider, cfg CallConfig) extract.ModelCall {
	return func(ctx context.Context, req extract.Request) (string, error) {
		resp, err := p.Complete(ctx, CompletionRequest{
			Messages: []Message{
				{Role: RoleSystem, Content: extract.SystemPrompt()},
				{Role: RoleUser, Content: req.Prompt()},
			},
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Attachment:  req.Attachment(),
		})
		if err != nil {
			return "", &extract.ModelCallError{
				Status:  statusOf(err),
				Message: err.Error(),
				Err:     err,
			}
		}
		return resp.Content, nil
	}
}

// statusOf digs an HTTP status out of the SDK error chains, zero when none
// is available.
func statusOf(err error) int {
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return openaiErr.StatusCode
	}

	var ollamaErr *statusError
	if errors.As(err, &ollamaErr) {
		return ollamaErr.StatusCode
	}

	return 0
}
