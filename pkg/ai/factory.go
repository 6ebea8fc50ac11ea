package ai

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/tasker/pkg/domain/ai"
)

// Provider names accepted in ai.yaml and TASKER_AI_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderMock   = "mock"
)

// NewProvider builds a provider by name. An empty name selects Gemini.
// A missing API key is not an error here; it surfaces when Complete is called.
func NewProvider(providerName, modelName, apiKey string) (ai.Provider, error) {
	switch providerName {
	case ProviderGemini, "":
		return NewGeminiProvider(modelName, apiKey), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(modelName, apiKey), nil
	case ProviderOllama:
		return NewOllamaProvider(modelName), nil
	case ProviderMock:
		return &MockProvider{Model: modelName}, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", providerName)
	}
}

// KeyLookup returns the API key for a provider name, or "" when none is set.
type KeyLookup func(provider string) string

// GetDefaultProvider applies TASKER_AI_PROVIDER and TASKER_AI_MODEL on top of
// the configured values, then builds the provider with the key for the final
// provider name.
func GetDefaultProvider(providerName, modelName string, lookup KeyLookup) (ai.Provider, error) {
	if envProvider := os.Getenv("TASKER_AI_PROVIDER"); envProvider != "" {
		providerName = envProvider
	}
	if envModel := os.Getenv("TASKER_AI_MODEL"); envModel != "" {
		modelName = envModel
	}

	apiKey := ""
	if lookup != nil {
		apiKey = lookup(providerName)
	}
	return NewProvider(providerName, modelName, apiKey)
}
