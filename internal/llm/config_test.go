package llm

import (
	"testing"
	"time"
)

// clearLLMEnv blanks every variable ApplyEnv reads so host settings
// cannot leak into a test.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MCQGEN_LLM_PROVIDER", "MCQGEN_LLM_TIMEOUT", "MCQGEN_LLM_MAX_ATTEMPTS",
		"MCQGEN_ANTHROPIC_API_KEY", "MCQGEN_ANTHROPIC_MODEL",
		"MCQGEN_OPENAI_API_KEY", "MCQGEN_OPENAI_MODEL", "MCQGEN_OPENAI_BASE_URL",
		"MCQGEN_GEMINI_API_KEY", "MCQGEN_GEMINI_MODEL",
		"MCQGEN_OPENROUTER_API_KEY", "MCQGEN_OPENROUTER_MODEL", "MCQGEN_OPENROUTER_BASE_URL",
		"OPENROUTER_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "openrouter" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Model() != "google/gemma-3-27b-it:free" {
		t.Errorf("model = %q", cfg.Model())
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("max attempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("MCQGEN_LLM_PROVIDER", "openai")
	t.Setenv("MCQGEN_OPENAI_API_KEY", "sk-test")
	t.Setenv("MCQGEN_OPENAI_MODEL", "gpt-4o")
	t.Setenv("MCQGEN_LLM_TIMEOUT", "15s")
	t.Setenv("MCQGEN_LLM_MAX_ATTEMPTS", "3")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.Model() != "gpt-4o" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("max attempts = %d", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnv_StandardKeyFallback(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-standard")

	cfg := ConfigFromEnv()
	if cfg.OpenRouter.APIKey != "sk-or-standard" {
		t.Fatalf("expected standard key fallback, got %q", cfg.OpenRouter.APIKey)
	}

	t.Setenv("MCQGEN_OPENROUTER_API_KEY", "sk-or-prefixed")
	cfg = ConfigFromEnv()
	if cfg.OpenRouter.APIKey != "sk-or-prefixed" {
		t.Fatalf("prefixed key should win, got %q", cfg.OpenRouter.APIKey)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearLLMEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("GEMINI_API_KEY", "gm")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Fatalf("expected gemini to win over anthropic, got %q", cfg.Provider)
	}
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetModel("meta-llama/llama-3-8b")
	if cfg.OpenRouter.Model != "meta-llama/llama-3-8b" {
		t.Fatalf("model = %q", cfg.OpenRouter.Model)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
