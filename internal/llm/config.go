package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all provider gateway configuration.
type Config struct {
	// Provider selects the backend.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// RequestsPerMinute bounds the call rate; the limiter enforces a
	// minimum inter-call interval of 60s/RPM. Zero disables limiting.
	RequestsPerMinute int

	// Timeout is the per-call deadline.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration. Models is the
// quota-rotation list: generation starts on Models[0] and advances on
// quota exhaustion.
type AnthropicConfig struct {
	APIKey string
	Models []string
}

// OpenAIConfig holds OpenAI-specific configuration. BaseURL supports
// OpenAI-compatible gateways (Azure-style proxies, DIAL).
type OpenAIConfig struct {
	APIKey  string
	Models  []string
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Models []string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Models  []string
	BaseURL string
}

// RetryConfig bounds transport-level retries (transient failures and
// per-minute rate limits). Validation retries are a separate budget owned
// by the orchestrator.
type RetryConfig struct {
	TransportAttempts int
	InitialWait       time.Duration
	MaxWait           time.Duration
}

// DefaultConfig returns a Config with the stock rotation lists.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Models: []string{"claude-haiku-4-5", "claude-sonnet-4-5"},
		},
		OpenAI: OpenAIConfig{
			Models: []string{"gpt-4o-mini", "gpt-4o"},
		},
		Gemini: GeminiConfig{
			Models: []string{"gemini-2.5-flash", "gemini-2.0-flash"},
		},
		OpenRouter: OpenRouterConfig{
			Models: []string{"google/gemini-2.0-flash-exp"},
		},
		Retry: RetryConfig{
			TransportAttempts: 3,
			InitialWait:       10 * time.Second,
			MaxWait:           2 * time.Minute,
		},
		RequestsPerMinute: 15,
		Timeout:           2 * time.Minute,
	}
}

// ApplyEnv overlays FIILGEN_* environment variables onto the config.
// Model lists are comma-separated.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("FIILGEN_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}
	if k := os.Getenv("FIILGEN_ANTHROPIC_API_KEY"); k != "" {
		c.Anthropic.APIKey = k
	}
	if m := splitModels(os.Getenv("FIILGEN_ANTHROPIC_MODELS")); m != nil {
		c.Anthropic.Models = m
	}
	if k := os.Getenv("FIILGEN_OPENAI_API_KEY"); k != "" {
		c.OpenAI.APIKey = k
	}
	if m := splitModels(os.Getenv("FIILGEN_OPENAI_MODELS")); m != nil {
		c.OpenAI.Models = m
	}
	if u := os.Getenv("FIILGEN_OPENAI_BASE_URL"); u != "" {
		c.OpenAI.BaseURL = u
	}
	if k := os.Getenv("FIILGEN_GEMINI_API_KEY"); k != "" {
		c.Gemini.APIKey = k
	}
	if m := splitModels(os.Getenv("FIILGEN_GEMINI_MODELS")); m != nil {
		c.Gemini.Models = m
	}
	if k := os.Getenv("FIILGEN_OPENROUTER_API_KEY"); k != "" {
		c.OpenRouter.APIKey = k
	}
	if m := splitModels(os.Getenv("FIILGEN_OPENROUTER_MODELS")); m != nil {
		c.OpenRouter.Models = m
	}
}

// DiscoverKey probes the standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and fills in the provider and
// key for the first one found. Returns false if none is set.
func (c *Config) DiscoverKey() bool {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = "gemini"
		c.Gemini.APIKey = k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = "openai"
		c.OpenAI.APIKey = k
		return true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		c.Provider = "anthropic"
		c.Anthropic.APIKey = k
		return true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		c.Provider = "openrouter"
		c.OpenRouter.APIKey = k
		return true
	}
	return false
}

// Validate checks that the selected provider has an API key and at least
// one model in its rotation list.
func (c Config) Validate() error {
	key, models := "", []string(nil)
	switch c.Provider {
	case "anthropic":
		key, models = c.Anthropic.APIKey, c.Anthropic.Models
	case "openai":
		key, models = c.OpenAI.APIKey, c.OpenAI.Models
	case "gemini":
		key, models = c.Gemini.APIKey, c.Gemini.Models
	case "openrouter":
		key, models = c.OpenRouter.APIKey, c.OpenRouter.Models
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("API key is required for the %s provider", c.Provider)
	}
	if len(models) == 0 {
		return fmt.Errorf("at least one model is required for the %s provider", c.Provider)
	}
	return nil
}

func splitModels(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
