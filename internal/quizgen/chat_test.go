package quizgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhisek/mcqgen/internal/llm"
)

func TestGenerate_EmptyContentFallsThroughToText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{"role": "assistant", "content": ""},
				"text":    validSetJSON,
			}},
		})
	}))
	t.Cleanup(server.Close)

	p, err := llm.NewChatProvider(llm.ChatConfig{
		Name:    "openrouter",
		APIKey:  "test-key",
		Model:   "google/gemma-3-27b-it:free",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new chat provider: %v", err)
	}
	gen, err := New(p, DefaultConfig())
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	set, err := gen.Generate(context.Background(), "The sky is blue. Spiders have eight legs.", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 2 || set.At(0).CorrectOption != "Blue" {
		t.Fatalf("unexpected set: %+v", set.Questions())
	}
}
