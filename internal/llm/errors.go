package llm

import (
	"fmt"
	"net/http"
	"time"
)

// ErrStatus indicates the provider answered with a non-success HTTP status.
// Message is the most specific human-readable error the body carried.
type ErrStatus struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *ErrStatus) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("provider error (%d): %s", e.StatusCode, msg)
}

func (e *ErrStatus) Unwrap() error { return e.Err }

// Temporary reports whether the status is worth retrying.
func (e *ErrStatus) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ErrInvalidResponse indicates the provider answered successfully but the
// envelope carried no usable text.
type ErrInvalidResponse struct {
	Body string
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Text string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
