package quizgen

import (
	"errors"
	"fmt"
)

// ErrCanceled is returned when a generation was superseded by a newer one,
// the generator was closed, or the caller's context was cancelled. It is
// not a failure and should not be shown to the user.
var ErrCanceled = errors.New("generation canceled")

// ConstraintError reports invalid input caught before any network call.
type ConstraintError struct {
	Field   string
	Message string
}

func (e *ConstraintError) Error() string {
	return e.Message
}

// ProviderError reports a transport or HTTP-level failure. Status is zero
// when no response was received.
type ProviderError struct {
	Status  int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("Provider unreachable: %s", e.Message)
	}
	return fmt.Sprintf("Provider error (%d): %s", e.Status, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedOutputError reports model text that is not valid JSON.
// Snippet holds at most the configured number of characters of it.
type MalformedOutputError struct {
	Reason  string
	Snippet string
	Err     error
}

func (e *MalformedOutputError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "AI returned invalid JSON"
	}
	return fmt.Sprintf("%s. Response content: %s", reason, e.Snippet)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// SchemaError reports JSON of the wrong shape. Index is -1 when the top
// level is at fault, otherwise the position of the first bad element.
type SchemaError struct {
	Index  int
	Reason string
	Item   string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		reason := e.Reason
		if reason == "" {
			reason = "AI output is not a JSON array"
		}
		return fmt.Sprintf("%s. Output: %s", reason, e.Item)
	}
	return fmt.Sprintf("AI output has unexpected structure at index %d: %s. Item: %s",
		e.Index, e.Reason, e.Item)
}

// UserMessage renders err as the single line shown to the user. It returns
// "" for ErrCanceled.
func UserMessage(err error) string {
	if err == nil || errors.Is(err, ErrCanceled) {
		return ""
	}
	return err.Error()
}
