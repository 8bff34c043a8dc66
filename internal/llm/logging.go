package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/mathtutor/internal/store"
)

// LoggingProvider is a decorator that records every completion call in the
// store as an llm_requests row.
type LoggingProvider struct {
	inner  Provider
	events store.LLMEventRepo
}

// WithLogging wraps a Provider with request logging. A nil events repo
// returns the provider unwrapped.
func WithLogging(p Provider, events store.LLMEventRepo) Provider {
	if events == nil {
		return p
	}
	return &LoggingProvider{inner: p, events: events}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Complete(ctx, req)

	rec := store.LLMRequest{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Log the call but don't fail the request if logging fails.
	if logErr := l.events.Append(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log completion request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
