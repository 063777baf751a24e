package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// maxBodyBytes bounds how much of a provider response is read.
const maxBodyBytes = 8 << 20

// ChatConfig configures a ChatProvider.
type ChatConfig struct {
	Name    string // provider label for logs, e.g. "openrouter"
	APIKey  string
	Model   string
	BaseURL string // endpoint root; "/chat/completions" is appended

	// Headers are sent with every request in addition to auth and content type.
	Headers map[string]string

	HTTPClient *http.Client
}

// ChatProvider speaks the chat-completions wire format directly over HTTP.
// Unlike the SDK-backed providers it sees the raw envelope, so it can
// recover text from non-standard response shapes and surface the exact
// error message a gateway returned.
type ChatProvider struct {
	name    string
	apiKey  string
	model   string
	url     string
	headers map[string]string
	client  *http.Client
}

// NewChatProvider creates a provider for an OpenAI-compatible endpoint.
func NewChatProvider(cfg ChatConfig) (*ChatProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Name)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s base URL is required", cfg.Name)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &ChatProvider{
		name:    cfg.Name,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		url:     strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		headers: cfg.Headers,
		client:  client,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

func (p *ChatProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    buildChatMessages(req),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	for k, v := range p.headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("read response: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &ErrStatus{
			StatusCode: httpResp.StatusCode,
			Message:    extractErrorMessage(body, httpResp.StatusCode),
			RetryAfter: parseRetryAfter(httpResp.Header.Get("Retry-After")),
		}
	}

	text, _, ok := extractText(body)
	if !ok {
		return nil, &ErrInvalidResponse{
			Body: string(body),
			Err:  errors.New("empty response body"),
		}
	}

	model := gjson.GetBytes(body, "model").String()
	if model == "" {
		model = p.model
	}

	resp := &Response{
		Text:       text,
		Model:      model,
		StopReason: mapChatStopReason(gjson.GetBytes(body, "choices.0.finish_reason").String()),
		Usage: Usage{
			InputTokens:  int(gjson.GetBytes(body, "usage.prompt_tokens").Int()),
			OutputTokens: int(gjson.GetBytes(body, "usage.completion_tokens").Int()),
			TotalTokens:  int(gjson.GetBytes(body, "usage.total_tokens").Int()),
		},
	}
	if resp.StopReason == "max_tokens" {
		return resp, &ErrMaxTokensExceeded{Text: text}
	}
	return resp, nil
}

func (p *ChatProvider) ModelID() string {
	return p.model
}

// Name returns the provider label used in request logs.
func (p *ChatProvider) Name() string {
	return p.name
}

func buildChatMessages(req Request) []chatMessage {
	var out []chatMessage
	if req.System != "" {
		out = append(out, chatMessage{Role: string(RoleSystem), Content: req.System})
	}
	for _, m := range req.Messages {
		role := m.Role
		if role == "" {
			role = RoleUser
		}
		out = append(out, chatMessage{Role: string(role), Content: m.Content})
	}
	return out
}

func mapChatStopReason(reason string) string {
	switch reason {
	case "length":
		return "max_tokens"
	case "error":
		return "error"
	default:
		return "end"
	}
}

// parseRetryAfter understands the delay-seconds form of Retry-After.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
