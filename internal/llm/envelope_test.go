package llm

import "testing"

func TestExtractText(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantText     string
		wantStrategy string
	}{
		{"chat message", `{"choices":[{"message":{"content":"[1]"}}]}`, "[1]", "choices.message.content"},
		{"empty content falls through", `{"choices":[{"message":{"content":""},"text":"[2]"}]}`, "[2]", "choices.text"},
		{"empty text falls to output", `{"choices":[{"message":{"content":""},"text":""}],"output":"[3]"}`, "[3]", "output"},
		{"empty output falls to raw", `{"output":""}`, `{"output":""}`, "raw"},
		{"legacy completion", `{"choices":[{"text":"abc"}]}`, "abc", "choices.text"},
		{"null content falls through", `{"choices":[{"message":{"content":null},"text":"t"}]}`, "t", "choices.text"},
		{"output string", `{"output":"[]"}`, "[]", "output"},
		{"output array", `{"output":[{"question":"q"}]}`, `[{"question":"q"}]`, "output"},
		{"json string body", `"just text"`, "just text", "raw"},
		{"plain text body", "  hello there \n", "hello there", "raw"},
		{"unknown object", `{"id":"x"}`, `{"id":"x"}`, "raw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, strategy, ok := extractText([]byte(tt.body))
			if !ok {
				t.Fatal("expected extraction to succeed")
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if strategy != tt.wantStrategy {
				t.Errorf("strategy = %q, want %q", strategy, tt.wantStrategy)
			}
		})
	}
}

func TestExtractText_EmptyBody(t *testing.T) {
	if _, _, ok := extractText([]byte("   ")); ok {
		t.Fatal("expected empty body to fail extraction")
	}
}
