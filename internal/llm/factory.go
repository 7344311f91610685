package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the full gateway chain from configuration:
//
//	retry → rotation → per-model(rate limit → logging → timeout → backend)
//
// One Limiter is shared across the rotation so reissued requests after a
// model switch still respect the run's call budget. The per-call deadline
// sits inside the rate limiter so limiter waits do not eat into it.
// onRotate is invoked whenever quota exhaustion advances the rotation.
func NewProvider(ctx context.Context, cfg Config, rec CallRecorder, onRotate func(from, to string)) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limiter := NewLimiter(cfg.RequestsPerMinute)

	var models []string
	build := func(model string) (Provider, error) {
		switch cfg.Provider {
		case "anthropic":
			return NewAnthropicProvider(cfg.Anthropic, model)
		case "openai":
			return NewOpenAIProvider(cfg.OpenAI, model)
		case "gemini":
			return NewGeminiProvider(ctx, cfg.Gemini, model)
		case "openrouter":
			return NewOpenRouterProvider(cfg.OpenRouter, model)
		default:
			return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
		}
	}

	switch cfg.Provider {
	case "anthropic":
		models = cfg.Anthropic.Models
	case "openai":
		models = cfg.OpenAI.Models
	case "gemini":
		models = cfg.Gemini.Models
	case "openrouter":
		models = cfg.OpenRouter.Models
	}

	chain := make([]Provider, 0, len(models))
	for _, model := range models {
		base, err := build(model)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider for %s: %w", cfg.Provider, model, err)
		}
		p := WithTimeout(base, cfg.Timeout)
		if rec != nil {
			p = WithLogging(p, rec)
		}
		p = WithRateLimit(p, limiter)
		chain = append(chain, p)
	}

	return WithRetry(WithRotation(chain, onRotate), cfg.Retry), nil
}
