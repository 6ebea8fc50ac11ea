package ai

import (
	"context"
	"errors"
	"sync"

	"github.com/felixgeelhaar/tasker/pkg/domain/ai"
)

// MockProvider answers with canned text. It backs the "mock" provider setting
// for offline use and serves as the fake in tests.
type MockProvider struct {
	Model string
	Text  string
	Err   error

	mu       sync.Mutex
	calls    int
	requests []ai.CompletionRequest
}

func (m *MockProvider) ID() string {
	return "mock:" + m.Model
}

func (m *MockProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	m.mu.Lock()
	m.calls++
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	text := m.Text
	if text == "" {
		text = `["Define the first step","Schedule time for it","Review progress"]`
	}
	return &ai.CompletionResponse{
		Text:  text,
		Model: m.Model,
		Usage: ai.TokenUsage{InputTokens: len(req.Prompt) / 4, OutputTokens: len(text) / 4},
	}, nil
}

// Calls returns how many times Complete was invoked.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastRequest returns the most recent request, or an error if none was made.
func (m *MockProvider) LastRequest() (ai.CompletionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return ai.CompletionRequest{}, errors.New("no requests recorded")
	}
	return m.requests[len(m.requests)-1], nil
}
