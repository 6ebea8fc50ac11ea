package ai

import (
	"context"
)

// CompletionRequest represents a prompt to the AI.
type CompletionRequest struct {
	Prompt      string
	System      string
	Temperature float32
	MaxTokens   int

	// ResponseMIMEType and ResponseSchema constrain the output format when the
	// backend supports structured output. The schema is a JSON Schema document.
	ResponseMIMEType string
	ResponseSchema   map[string]any
}

// CompletionResponse represents the AI's answer.
type CompletionResponse struct {
	Text  string
	Usage TokenUsage
	Model string
}

// TokenUsage tracks costs.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// Provider is the interface for all AI backends.
type Provider interface {
	ID() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// StatusError reports a non-2xx answer from a provider API.
type StatusError struct {
	Provider   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return e.Provider + " API returned status: " + e.Status
}

// ConfigError reports a provider that cannot be called as configured,
// for example a missing API key.
type ConfigError struct {
	Provider string
	Message  string
}

func (e *ConfigError) Error() string {
	return e.Provider + ": " + e.Message
}
