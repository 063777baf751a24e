package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// OpenRouter is OpenAI-compatible but relays upstream errors and envelope
// variants verbatim, so it runs on ChatProvider rather than the SDK.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*ChatProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	headers := map[string]string{}
	if cfg.Referer != "" {
		headers["HTTP-Referer"] = cfg.Referer
	}
	if cfg.Title != "" {
		headers["X-Title"] = cfg.Title
	}

	return NewChatProvider(ChatConfig{
		Name:    "openrouter",
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
		Headers: headers,
	})
}
