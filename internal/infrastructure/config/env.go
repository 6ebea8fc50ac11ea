package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables read by tasker.
const (
	EnvHome        = "TASKER_HOME"
	EnvDebug       = "TASKER_DEBUG"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvFallbackKey = "API_KEY"
)

// ResolveRoot picks the workspace root: the flag value, then TASKER_HOME,
// then the user's home directory.
func ResolveRoot(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(EnvHome)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home, nil
}

// APIKey returns the credential for a provider from the environment. The
// provider specific variable wins over API_KEY. An empty result is not an
// error here; the provider reports it when called.
func APIKey(provider string) string {
	var specific string
	switch strings.ToLower(provider) {
	case "gemini", "":
		specific = EnvGeminiKey
	case "openai":
		specific = EnvOpenAIKey
	}
	if specific != "" {
		if v := strings.TrimSpace(os.Getenv(specific)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(os.Getenv(EnvFallbackKey))
}

// DebugEnabled reports whether TASKER_DEBUG is set to a truthy value.
func DebugEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvDebug))) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
