package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/mcqgen/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and logging
// middleware. A nil eventRepo skips request logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	p := base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo)
	}
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)

	return p, nil
}

// NewProviderFromEnv builds a provider from MCQGEN_* variables, falling
// back to DiscoverConfig when the default provider has no key.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil {
		if discovered, ok := DiscoverConfig(); ok {
			cfg = discovered
		}
	}
	return NewProvider(ctx, cfg, eventRepo)
}
