package config

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/tasker/pkg/storage"
	"gopkg.in/yaml.v3"
)

// AIConfig stores provider defaults for goal expansion.
type AIConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature,omitempty"`
	// MaxTasks caps generated batches; 0 leaves the count to the model.
	MaxTasks int `yaml:"max_tasks,omitempty"`
}

// DefaultAIConfig returns the settings used when ai.yaml is absent.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		Provider:    "gemini",
		Model:       "gemini-2.5-flash",
		Temperature: 0.3,
		MaxTasks:    0,
	}
}

// Merge fills zero fields of cfg from defaults.
func (c *AIConfig) Merge(defaults *AIConfig) *AIConfig {
	out := *defaults
	if c == nil {
		return &out
	}
	if c.Provider != "" {
		out.Provider = c.Provider
		// A provider change without a model falls back to that provider's default.
		if c.Model == "" && c.Provider != defaults.Provider {
			out.Model = ""
		}
	}
	if c.Model != "" {
		out.Model = c.Model
	}
	if c.Temperature > 0 {
		out.Temperature = c.Temperature
	}
	if c.MaxTasks > 0 {
		out.MaxTasks = c.MaxTasks
	}
	return &out
}

func LoadAIConfig(root string) (*AIConfig, error) {
	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(storage.AIConfigFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read AI config: %w", err)
	}

	var cfg AIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal AI config: %w", err)
	}
	if cfg.MaxTasks < 0 {
		return nil, fmt.Errorf("invalid AI config: max_tasks must not be negative")
	}

	return &cfg, nil
}

func SaveAIConfig(root string, cfg *AIConfig) error {
	if cfg == nil {
		return fmt.Errorf("AI config is nil")
	}

	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(storage.AIConfigFile)
	if err != nil {
		return err
	}
	if err := repo.Initialize(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal AI config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
