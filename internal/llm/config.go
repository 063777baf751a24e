package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openrouter", "anthropic", "openai", "gemini", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 60s. Zero disables the bound.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemma-3-27b-it:free"
	BaseURL string // Default: "https://openrouter.ai/api/v1"

	// Referer and Title populate OpenRouter's optional attribution headers.
	Referer string
	Title   string
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openrouter",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemma-3-27b-it:free",
			Title: "mcqgen",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overlays MCQGEN_* environment variables onto cfg. Keys still
// missing afterwards are filled from the providers' standard variables
// (OPENROUTER_API_KEY, OPENAI_API_KEY, ...).
func ApplyEnv(cfg Config) Config {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&cfg.Provider, "MCQGEN_LLM_PROVIDER")

	setString(&cfg.Anthropic.APIKey, "MCQGEN_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "MCQGEN_ANTHROPIC_MODEL")

	setString(&cfg.OpenAI.APIKey, "MCQGEN_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "MCQGEN_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "MCQGEN_OPENAI_BASE_URL")

	setString(&cfg.Gemini.APIKey, "MCQGEN_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "MCQGEN_GEMINI_MODEL")

	setString(&cfg.OpenRouter.APIKey, "MCQGEN_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "MCQGEN_OPENROUTER_MODEL")
	setString(&cfg.OpenRouter.BaseURL, "MCQGEN_OPENROUTER_BASE_URL")

	if v := os.Getenv("MCQGEN_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("MCQGEN_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}

	fillEmpty := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fillEmpty(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	fillEmpty(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	fillEmpty(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fillEmpty(&cfg.Gemini.APIKey, "GEMINI_API_KEY")

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (OpenRouter → Gemini → OpenAI → Anthropic) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Model returns the model configured for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.Model
	case "openai":
		return c.OpenAI.Model
	case "gemini":
		return c.Gemini.Model
	case "openrouter":
		return c.OpenRouter.Model
	case "mock":
		return "mock"
	}
	return ""
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("MCQGEN_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("MCQGEN_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("MCQGEN_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("MCQGEN_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
