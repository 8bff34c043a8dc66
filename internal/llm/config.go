package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all completion provider configuration.
type Config struct {
	// Provider selects which completion provider to use.
	// Values: "anthropic", "openai", "gemini", "dryrun", "mock"
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout is the maximum duration for a single completion request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-sonnet"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
// The retry schedule is 3 attempts with a 4s base wait capped at 10s.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 4 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  1.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("MATHTUTOR_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("MATHTUTOR_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("MATHTUTOR_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("MATHTUTOR_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("MATHTUTOR_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if t := os.Getenv("MATHTUTOR_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// Validate checks that the selected provider has its required API key set.
// A missing key is returned as *ErrMissingCredentials so callers can fail
// fast instead of attempting the call.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return &ErrMissingCredentials{Provider: "anthropic"}
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &ErrMissingCredentials{Provider: "openai"}
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return &ErrMissingCredentials{Provider: "gemini"}
		}
	case "dryrun", "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown completion provider: %q", c.Provider)
	}
	return nil
}
