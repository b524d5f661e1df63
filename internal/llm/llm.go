// Package llm provides the text-generation capability behind documentation
// generation. A single Client interface abstracts every backend; concrete
// implementations are selected at construction time.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNotConfigured is returned when no backend is configured.
var ErrNotConfigured = errors.New("llm: backend not configured")

// ErrUnsupportedBackend is returned when an unknown backend is specified.
var ErrUnsupportedBackend = errors.New("llm: unsupported backend")

// Client defines the interface for text generation. Any failure returned
// from Complete (transport, quota, malformed response) is treated by the
// generator as a backend failure and triggers its degrade policy.
type Client interface {
	// Complete generates a text completion for the given prompt.
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)

	// Model returns the model identifier being used.
	Model() string

	// Backend returns the backend type (e.g. "openai", "deepseek", "ollama").
	Backend() string
}

// CompletionOptions configures a single completion call.
type CompletionOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness. 0.0 is deterministic.
	Temperature float64

	// SystemPrompt is an optional system-level instruction.
	SystemPrompt string
}

// defaultTimeout bounds every backend call; a timed-out call surfaces as a
// backend failure, never as a hang.
const defaultTimeout = 120 * time.Second

// Config holds backend provider configuration.
type Config struct {
	// Backend is the provider: "openai", "deepseek", "ollama", or "disabled".
	Backend string

	// Model is the model identifier, e.g. "gpt-4o-mini", "deepseek-chat",
	// "llama3.2".
	Model string

	// URL is the base URL for the API (primarily for Ollama).
	URL string

	// APIKey is the API key for hosted providers. Falls back to the
	// provider's environment variable if not set.
	APIKey string

	// Timeout bounds each backend call. Zero means the 120s default.
	Timeout time.Duration
}

// NewClient creates a backend client based on the configuration. A missing
// credential for a hosted provider is a configuration error surfaced
// immediately, not a runtime degrade.
func NewClient(cfg Config) (Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	switch cfg.Backend {
	case "", "disabled":
		return nil, ErrNotConfigured

	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("llm: OpenAI API key required (set ai.apiKey or OPENAI_API_KEY)")
		}
		model := cfg.Model
		if model == "" {
			model = "gpt-3.5-turbo"
		}
		return NewOpenAIClient(apiKey, model, timeout), nil

	case "deepseek":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("DEEPSEEK_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("llm: DeepSeek API key required (set ai.apiKey or DEEPSEEK_API_KEY)")
		}
		model := cfg.Model
		if model == "" {
			model = "deepseek-chat"
		}
		return NewDeepSeekClient(apiKey, model, timeout), nil

	case "ollama":
		url := cfg.URL
		if url == "" {
			url = "http://localhost:11434"
		}
		model := cfg.Model
		if model == "" {
			model = "llama3.2"
		}
		return NewOllamaClient(url, model, timeout), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, cfg.Backend)
	}
}

// ProviderInfo describes an available backend for discovery surfaces.
type ProviderInfo struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RequiresAPIKey bool     `json:"requires_api_key"`
	Models         []string `json:"models"`
}

// Providers returns metadata for every selectable backend.
func Providers() map[string]ProviderInfo {
	return map[string]ProviderInfo{
		"openai": {
			Name:           "OpenAI GPT",
			Description:    "High-quality documentation using OpenAI GPT models",
			RequiresAPIKey: true,
			Models:         []string{"gpt-3.5-turbo", "gpt-4", "gpt-4o-mini"},
		},
		"deepseek": {
			Name:           "DeepSeek",
			Description:    "OpenAI-compatible documentation generation via DeepSeek",
			RequiresAPIKey: true,
			Models:         []string{"deepseek-chat", "deepseek-coder"},
		},
		"ollama": {
			Name:           "Ollama",
			Description:    "Free local models served by an Ollama instance",
			RequiresAPIKey: false,
			Models:         []string{"llama3.2", "codellama"},
		},
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
