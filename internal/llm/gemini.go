package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiModels maps short aliases to Gemini API model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
	"gemma":        "gemma-3-27b-it",
}

// GeminiProvider talks to the Gemini API through the genai SDK. Gemma
// models served there reject system instructions, so the system prompt is
// folded into the first user turn for them.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider. OpenRouter-style names such
// as "google/gemma-3-27b-it:free" are accepted so one model setting can be
// shared across providers.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: geminiModelID(cfg.Model)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config, contents := p.buildCall(req)

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, mapGeminiError(err)
	}

	resp := &Response{
		Text:       result.Text(),
		Model:      p.model,
		StopReason: mapGeminiStopReason(result),
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}

	switch {
	case resp.StopReason == "max_tokens":
		return resp, &ErrMaxTokensExceeded{Text: resp.Text}
	case strings.TrimSpace(resp.Text) == "":
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no text in Gemini response (finish reason %s)", resp.StopReason)}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// Name returns the provider label used in request logs.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) buildCall(req Request) (*genai.GenerateContentConfig, []*genai.Content) {
	config := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	msgs := req.Messages
	if req.System != "" {
		if strings.HasPrefix(p.model, "gemma") && len(msgs) > 0 {
			first := Message{Role: msgs[0].Role, Content: req.System + "\n\n" + msgs[0].Content}
			msgs = append([]Message{first}, msgs[1:]...)
		} else {
			config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
		}
	}
	return config, buildGeminiContents(msgs)
}

// geminiModelID strips an OpenRouter vendor prefix and variant suffix,
// then resolves aliases.
func geminiModelID(name string) string {
	name = strings.TrimPrefix(name, "google/")
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return resolveModel(name, geminiModels)
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) == 0 {
		return "blocked"
	}
	switch result.Candidates[0].FinishReason {
	case genai.FinishReasonMaxTokens:
		return "max_tokens"
	case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
		return "blocked"
	}
	return "end"
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code > 0 {
		return &ErrStatus{StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
