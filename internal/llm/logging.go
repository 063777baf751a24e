package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/mcqgen/internal/store"
)

// EventSink receives one record per provider call. store.EventRepo
// satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every call made through it, including calls
// abandoned because a newer generation superseded them.
type LoggingProvider struct {
	inner Provider
	sink  EventSink
	warn  io.Writer
	now   func() time.Time
}

// WithLogging wraps p so each request lands in sink. A failing sink only
// produces a warning on stderr.
func WithLogging(p Provider, sink EventSink) Provider {
	return &LoggingProvider{inner: p, sink: sink, warn: os.Stderr, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	started := l.now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    ProviderName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		SessionID:   SessionIDFrom(ctx),
		LatencyMs:   l.now().Sub(started).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text
	}
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		ev.ErrorMessage = "canceled before completion"
	default:
		ev.ErrorMessage = err.Error()
	}

	// The caller's context may be cancelled already; the write must still land.
	if werr := l.sink.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
		fmt.Fprintf(l.warn, "warning: could not record %s request: %v\n", ev.Purpose, werr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders a request as role-tagged blocks for `mcqgen llm view`.
func describeRequest(req Request) string {
	var b strings.Builder
	block := func(role, content string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", role, content)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	fmt.Fprintf(&b, "[params] temperature=%.2f max_tokens=%d\n", req.Temperature, req.MaxTokens)
	return b.String()
}
