package llm

import (
	"fmt"
	"time"
)

// ErrMissingCredentials indicates the selected provider has no API key
// configured. This is a configuration error: it is surfaced immediately and
// never retried.
type ErrMissingCredentials struct {
	Provider string
}

func (e *ErrMissingCredentials) Error() string {
	return fmt.Sprintf("%s provider has no API key configured", e.Provider)
}

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnavailable indicates the completion service is down or unreachable.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion service unavailable: %v", e.Err)
	}
	return "completion service unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates the service answered but produced no usable
// text content.
type ErrEmptyResponse struct {
	Err error
}

func (e *ErrEmptyResponse) Error() string {
	return fmt.Sprintf("empty completion response: %v", e.Err)
}

func (e *ErrEmptyResponse) Unwrap() error { return e.Err }
