package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "google/gemma-3-27b-it:free",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "google/gemma-3-27b-it:free" {
			t.Errorf("model = %q, want %q", p.ModelID(), "google/gemma-3-27b-it:free")
		}
		if p.Name() != "openrouter" {
			t.Errorf("name = %q, want openrouter", p.Name())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{
			Model: "google/gemma-3-27b-it:free",
		})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("default base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "meta-llama/llama-3-8b",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.url != "https://openrouter.ai/api/v1/chat/completions" {
			t.Errorf("url = %q", p.url)
		}
	})

	t.Run("custom base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "google/gemma-3-27b-it:free",
			BaseURL: "https://custom.openrouter.example/v1/",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.url != "https://custom.openrouter.example/v1/chat/completions" {
			t.Errorf("url = %q", p.url)
		}
	})
}

func TestOpenRouterAttributionHeaders(t *testing.T) {
	var gotReferer, gotTitle string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemma-3-27b-it:free",
		BaseURL: server.URL,
		Referer: "https://example.com",
		Title:   "mcqgen",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(context.Background(), UserPrompt("hi", 0.7, 0)); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gotReferer != "https://example.com" || gotTitle != "mcqgen" {
		t.Errorf("headers = %q / %q", gotReferer, gotTitle)
	}
}
