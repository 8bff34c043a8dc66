package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fastRetry returns a retry config that doesn't slow tests down.
func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     2 * time.Millisecond,
		Multiplier:  1.0,
	}
}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithRetry(mock, fastRetry(3))

	resp, err := p.Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("unexpected text: %q", resp.Text)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_RetriesTransientErrors(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Text: "recovered"},
	)
	p := WithRetry(mock, fastRetry(3))

	resp, err := p.Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "recovered" {
		t.Errorf("unexpected text: %q", resp.Text)
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ExhaustsBudget(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Err: &ErrUnavailable{}},
	)
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Complete(context.Background(), Request{})
	var unavail *ErrUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", mock.CallCount())
	}
}

func TestRetry_NeverRetriesMissingCredentials(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMissingCredentials{Provider: "anthropic"}},
		MockResponse{Text: "should not be reached"},
	)
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Complete(context.Background(), Request{})
	var creds *ErrMissingCredentials
	if !errors.As(err, &creds) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("config errors must not be retried, got %d calls", mock.CallCount())
	}
}

func TestRetry_StopsOnCanceledContext(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Text: "late"},
	)
	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Hour, // the canceled ctx must win, not the sleep
		MaxWait:     time.Hour,
		Multiplier:  1.0,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Complete(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	r := &RetryProvider{config: fastRetry(3)}
	wait := r.backoff(0, &ErrRateLimit{RetryAfter: 5 * time.Millisecond})
	if wait != 5*time.Millisecond {
		t.Errorf("expected RetryAfter to be honored, got %v", wait)
	}
}

func TestBackoff_CapsAtMaxWait(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{
		MaxAttempts: 5,
		InitialWait: 4 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  3.0,
	}}
	// attempt 2: 4s * 3^2 = 36s, capped at 10s, ±20% jitter.
	wait := r.backoff(2, &ErrUnavailable{})
	if wait > 12*time.Second {
		t.Errorf("backoff exceeded cap+jitter: %v", wait)
	}
}
