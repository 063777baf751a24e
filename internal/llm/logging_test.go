package llm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/mcqgen/internal/store"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Text: "[]", Usage: Usage{InputTokens: 7, OutputTokens: 2}})
	p := WithLogging(mock, repo)

	ctx := WithSessionID(WithPurpose(context.Background(), PurposeQuestionGen), "quiz-1")
	if _, err := p.Generate(ctx, UserPrompt("Text: hello", 0.7, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != "question-gen" || !e.Success || e.InputTokens != 7 || e.ResponseBody != "[]" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.SessionID != "quiz-1" {
		t.Fatalf("session id = %q", e.SessionID)
	}
	if !strings.Contains(e.RequestBody, "[user]\nText: hello") {
		t.Fatalf("request body missing prompt: %q", e.RequestBody)
	}
}

func TestLogging_RecordsFailureAndSurvivesRepoError(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrStatus{StatusCode: 401, Message: "bad key"}})
	var warn bytes.Buffer
	p := &LoggingProvider{inner: mock, sink: repo, warn: &warn, now: time.Now}

	_, err := p.Generate(WithPurpose(context.Background(), PurposeExplanation), Request{})
	var se *ErrStatus
	if !errors.As(err, &se) {
		t.Fatalf("expected the provider error to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", repo.events)
	}
	if repo.events[0].ErrorMessage != "provider error (401): bad key" {
		t.Fatalf("error message = %q", repo.events[0].ErrorMessage)
	}
	if !strings.Contains(warn.String(), "could not record explanation request: disk full") {
		t.Fatalf("warning = %q", warn.String())
	}
}

func TestLogging_CanceledRequest(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: context.Canceled})
	p := WithLogging(mock, repo)

	_, err := p.Generate(WithPurpose(context.Background(), PurposeQuestionGen), Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := repo.events[0].ErrorMessage; got != "canceled before completion" {
		t.Fatalf("error message = %q", got)
	}
}

func TestLogging_LatencyFromClock(t *testing.T) {
	repo := &recordingRepo{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 250 * time.Millisecond)
	}
	p := &LoggingProvider{inner: NewMockProvider(MockResponse{Text: "ok"}), sink: repo, warn: io.Discard, now: clock}

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	if repo.events[0].LatencyMs != 250 {
		t.Fatalf("latency = %d, want 250", repo.events[0].LatencyMs)
	}
	if repo.events[0].Purpose != "unknown" {
		t.Fatalf("purpose = %q", repo.events[0].Purpose)
	}
}
