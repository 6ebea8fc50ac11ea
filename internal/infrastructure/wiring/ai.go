package wiring

import (
	"github.com/felixgeelhaar/tasker/internal/infrastructure/config"
	infraai "github.com/felixgeelhaar/tasker/pkg/ai"
	domainai "github.com/felixgeelhaar/tasker/pkg/domain/ai"
)

// LoadAIConfig returns ai.yaml merged over the defaults.
func LoadAIConfig(root string) (*config.AIConfig, error) {
	cfg, err := config.LoadAIConfig(root)
	if err != nil {
		return nil, err
	}
	return cfg.Merge(config.DefaultAIConfig()), nil
}

// LoadAIProvider builds the configured provider. The API key is read from the
// environment once, here; a missing key only fails when a request is made.
func LoadAIProvider(cfg *config.AIConfig) (domainai.Provider, error) {
	if cfg == nil {
		cfg = config.DefaultAIConfig()
	}
	return infraai.GetDefaultProvider(cfg.Provider, cfg.Model, config.APIKey)
}
