package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/mathtutor/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// Configuration errors (missing credentials, unknown provider) are returned
// immediately; no network contact is attempted.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "dryrun":
		return NewDryRunProvider(), nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base.
	// The timeout bounds the whole call, retries included.
	logged := WithLogging(base, events)
	retried := WithRetry(logged, cfg.Retry)

	return WithTimeout(retried, cfg.Timeout), nil
}
