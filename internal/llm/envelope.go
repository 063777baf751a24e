package llm

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// textStrategy pulls the assistant text out of a chat completion body.
type textStrategy struct {
	name    string
	extract func(body []byte) (string, bool)
}

// textStrategies are tried in order; the first non-empty hit wins.
var textStrategies = []textStrategy{
	{name: "choices.message.content", extract: pathString("choices.0.message.content")},
	{name: "choices.text", extract: pathString("choices.0.text")},
	{name: "output", extract: pathAny("output")},
	{name: "raw", extract: rawBody},
}

func pathString(path string) func([]byte) (string, bool) {
	return func(body []byte) (string, bool) {
		r := gjson.GetBytes(body, path)
		if r.Type != gjson.String {
			return "", false
		}
		return r.Str, r.Str != ""
	}
}

func pathAny(path string) func([]byte) (string, bool) {
	return func(body []byte) (string, bool) {
		r := gjson.GetBytes(body, path)
		if !r.Exists() || r.Type == gjson.Null {
			return "", false
		}
		if r.Type == gjson.String {
			return r.Str, r.Str != ""
		}
		return r.Raw, true
	}
}

// rawBody treats the whole body as the text. A body that is itself a JSON
// string literal is unquoted first.
func rawBody(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", false
	}
	if gjson.ValidBytes(trimmed) {
		if r := gjson.ParseBytes(trimmed); r.Type == gjson.String {
			return r.Str, true
		}
	}
	return string(trimmed), true
}

// extractText runs textStrategies over body and reports which one matched.
func extractText(body []byte) (text, strategy string, ok bool) {
	for _, s := range textStrategies {
		if text, ok := s.extract(body); ok {
			return text, s.name, true
		}
	}
	return "", "", false
}

// extractErrorMessage returns the most specific message an error body
// carries: error.message, then message, then a string-valued error, then
// the body itself.
func extractErrorMessage(body []byte, status int) string {
	trimmed := bytes.TrimSpace(body)
	if gjson.ValidBytes(trimmed) {
		for _, path := range []string{"error.message", "message", "error"} {
			r := gjson.GetBytes(trimmed, path)
			if r.Type == gjson.String && r.Str != "" {
				return r.Str
			}
		}
	}
	if len(trimmed) > 0 {
		return strings.TrimSpace(string(trimmed))
	}
	return http.StatusText(status)
}
