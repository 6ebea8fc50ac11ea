package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAIConfigMissing(t *testing.T) {
	cfg, err := LoadAIConfig(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config for missing file")
	}
}

func TestSaveAndLoadAIConfig(t *testing.T) {
	tempDir := t.TempDir()

	input := &AIConfig{Provider: "openai", Model: "gpt-4o-mini", Temperature: 0.5, MaxTasks: 6}
	if err := SaveAIConfig(tempDir, input); err != nil {
		t.Fatalf("save config: %v", err)
	}

	cfg, err := LoadAIConfig(tempDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected config")
	}
	if *cfg != *input {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	info, err := os.Stat(filepath.Join(tempDir, ".tasker", "ai.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadAIConfigInvalid(t *testing.T) {
	tempDir := t.TempDir()
	stateDir := filepath.Join(tempDir, ".tasker")
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		t.Fatalf("mkdir .tasker: %v", err)
	}

	tests := []struct {
		name string
		body string
	}{
		{"syntax", "::bad"},
		{"negative max", "provider: gemini\nmax_tasks: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(filepath.Join(stateDir, "ai.yaml"), []byte(tt.body), 0600); err != nil {
				t.Fatalf("write bad config: %v", err)
			}
			if _, err := LoadAIConfig(tempDir); err == nil {
				t.Fatalf("expected error for %q", tt.body)
			}
		})
	}
}

func TestSaveAIConfigNil(t *testing.T) {
	if err := SaveAIConfig(t.TempDir(), nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestDefaultAIConfig(t *testing.T) {
	cfg := DefaultAIConfig()
	if cfg.Provider != "gemini" || cfg.Model != "gemini-2.5-flash" || cfg.Temperature != 0.3 || cfg.MaxTasks != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestAIConfigMerge(t *testing.T) {
	defaults := DefaultAIConfig()

	tests := []struct {
		name string
		cfg  *AIConfig
		want AIConfig
	}{
		{"nil", nil, *defaults},
		{"model only", &AIConfig{Model: "gemini-2.0-pro"}, AIConfig{Provider: "gemini", Model: "gemini-2.0-pro", Temperature: 0.3}},
		{"provider switch drops default model", &AIConfig{Provider: "ollama"}, AIConfig{Provider: "ollama", Temperature: 0.3}},
		{"all fields", &AIConfig{Provider: "openai", Model: "gpt-4o", Temperature: 0.9, MaxTasks: 4}, AIConfig{Provider: "openai", Model: "gpt-4o", Temperature: 0.9, MaxTasks: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.Merge(defaults)
			if *got != tt.want {
				t.Errorf("Merge = %+v, want %+v", *got, tt.want)
			}
		})
	}
}
