package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider re-issues a request after transient failures. The default
// configuration makes a single attempt, so generation failures surface
// immediately unless the user opts into retries.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p with the backoff policy in cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	malformedSeen := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		retry, wait := r.decide(err, attempt, &malformedSeen)
		if !retry || attempt == attempts-1 {
			return nil, err
		}
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// decide reports whether err is worth another attempt and how long to
// wait first. An unreadable envelope is retried at most once per call.
func (r *RetryProvider) decide(err error, attempt int, malformedSeen *bool) (bool, time.Duration) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false, 0
	}

	var (
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
		status  *ErrStatus
	)
	switch {
	case errors.As(err, &maxTok):
		return false, 0
	case errors.As(err, &invalid):
		if *malformedSeen {
			return false, 0
		}
		*malformedSeen = true
	case errors.As(err, &status):
		if !status.Temporary() {
			return false, 0
		}
		if status.RetryAfter > 0 {
			return true, min(status.RetryAfter, r.config.MaxWait)
		}
	}
	return true, r.backoff(attempt)
}

// backoff is InitialWait * Multiplier^attempt, capped at MaxWait, with
// ±20% jitter.
func (r *RetryProvider) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait)
	for range attempt {
		wait *= r.config.Multiplier
	}
	wait = min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
