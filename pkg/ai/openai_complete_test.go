package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	infraAI "github.com/felixgeelhaar/tasker/pkg/ai"
	"github.com/felixgeelhaar/tasker/pkg/domain/ai"
)

func openAIReply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"prompt_tokens": 12, "completion_tokens": 7},
	})
}

func TestOpenAIProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		openAIReply(w, "Hello from OpenAI!")
	}))
	defer server.Close()

	p := infraAI.NewOpenAIProviderWithClient("gpt-4o", "test-key", server.URL, server.Client())
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Hello"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != "Hello from OpenAI!" {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 7 {
		t.Errorf("unexpected usage %+v", resp.Usage)
	}
}

func TestOpenAIProvider_Complete_ArraySchemaIsWrapped(t *testing.T) {
	var receivedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&receivedBody)
		openAIReply(w, `{"items":["Book flights","Reserve hotel"]}`)
	}))
	defer server.Close()

	p := infraAI.NewOpenAIProviderWithClient("", "test-key", server.URL, server.Client())
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{
		Prompt:         "Plan a vacation",
		Temperature:    0.3,
		ResponseSchema: map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != `["Book flights","Reserve hotel"]` {
		t.Errorf("expected unwrapped array, got %q", resp.Text)
	}

	format := receivedBody["response_format"].(map[string]interface{})
	if format["type"] != "json_schema" {
		t.Errorf("unexpected response_format type %v", format["type"])
	}
	schema := format["json_schema"].(map[string]interface{})["schema"].(map[string]interface{})
	if schema["type"] != "object" {
		t.Errorf("expected object root, got %v", schema["type"])
	}
}

func TestOpenAIProvider_Complete_UnwrapLeavesOtherShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		openAIReply(w, `"not a list"`)
	}))
	defer server.Close()

	p := infraAI.NewOpenAIProviderWithClient("", "test-key", server.URL, server.Client())
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{
		Prompt:         "x",
		ResponseSchema: map[string]any{"type": "array"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != `"not a list"` {
		t.Errorf("expected text unchanged, got %q", resp.Text)
	}
}

func TestOpenAIProvider_Complete_NoAPIKey(t *testing.T) {
	p := infraAI.NewOpenAIProvider("", "")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Hello"})

	var cfgErr *ai.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestOpenAIProvider_Complete_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p := infraAI.NewOpenAIProviderWithClient("", "bad-key", server.URL, server.Client())
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Hello"})

	var statusErr *ai.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
}

func TestOpenAIProvider_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	p := infraAI.NewOpenAIProviderWithClient("", "test-key", server.URL, server.Client())
	if _, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Hello"}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAIProvider_DefaultModel(t *testing.T) {
	p := infraAI.NewOpenAIProviderWithClient("", "k", "", nil)
	if p.ID() != "openai:gpt-4o-mini" {
		t.Errorf("unexpected ID %s", p.ID())
	}
}
