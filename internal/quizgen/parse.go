package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// parseQuestions turns model text into validated questions, classifying
// the first problem found as MalformedOutputError or SchemaError.
func parseQuestions(text string, input GenerateInput, cfg Config) ([]Question, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &MalformedOutputError{Snippet: snippet(text, cfg.SnippetLimit), Err: err}
	}
	if dec.More() {
		return nil, &MalformedOutputError{
			Snippet: snippet(text, cfg.SnippetLimit),
			Err:     fmt.Errorf("trailing data after JSON value"),
		}
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, &SchemaError{Index: -1, Item: snippet(compact(doc), cfg.SnippetLimit)}
	}
	if len(items) == 0 {
		return nil, &SchemaError{Index: -1, Reason: "AI output is an empty array", Item: "[]"}
	}

	structural := &StructuralValidator{}
	questions := make([]Question, 0, len(items))
	for i, item := range items {
		if verr := structural.ValidateRaw(item); verr != nil {
			return nil, itemError(i, item, verr, cfg)
		}

		q, err := decodeQuestion(item)
		if err != nil {
			return nil, itemError(i, item, &ValidationError{Validator: structural.Name(), Message: err.Error()}, cfg)
		}

		for _, v := range cfg.Validators {
			if verr := v.Validate(&q, input); verr != nil {
				return nil, itemError(i, item, verr, cfg)
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// decodeQuestion converts a structurally valid item into a Question.
func decodeQuestion(item any) (Question, error) {
	var q Question
	raw, err := json.Marshal(item)
	if err != nil {
		return q, fmt.Errorf("re-encode item: %w", err)
	}
	if err := json.Unmarshal(raw, &q); err != nil {
		return q, err
	}
	return q, nil
}

func itemError(index int, item any, verr *ValidationError, cfg Config) *SchemaError {
	return &SchemaError{
		Index:  index,
		Reason: verr.Message,
		Item:   snippet(compact(item), cfg.SnippetLimit),
	}
}

// compact renders a decoded JSON value back to text for error messages.
func compact(v any) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(b.String(), "\n")
}

// snippet truncates s to at most limit characters. A non-positive limit
// disables truncation.
func snippet(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
