package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTimeout_CancelsSlowCall(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	mock := NewMockProvider(MockResponse{Text: "late", Block: block})
	p := WithTimeout(mock, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestTimeout_ZeroIsPassThrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatal("expected the inner provider back")
	}
}
