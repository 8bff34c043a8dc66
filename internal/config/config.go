// Package config assembles the application configuration from the
// environment.
package config

import (
	"os"
	"strings"

	"github.com/abhisek/mathtutor/internal/i18n"
	"github.com/abhisek/mathtutor/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret  string
	CORSOrigins []string

	// DefaultLanguage is used for accounts that have not picked one.
	DefaultLanguage i18n.Language

	// ScorePolicy selects the session scoring formula: "ratio" or "flat".
	ScorePolicy string

	// CorrectnessMode selects how correctness is read from tutor replies:
	// "marker" or "keyword".
	CorrectnessMode string

	LLM llm.Config
}

// FromEnv builds the configuration from environment variables, falling
// back to local-development defaults.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOr("MATHTUTOR_HTTP_ADDR", ":8080"),
		DBDriver:        envOr("MATHTUTOR_DB_DRIVER", "sqlite"),
		DBDSN:           envOr("MATHTUTOR_DB_DSN", ""),
		AuthSecret:      envOr("MATHTUTOR_AUTH_SECRET", "dev-secret-change-me"),
		CORSOrigins:     csvOr("MATHTUTOR_CORS_ORIGINS", "http://localhost:3000"),
		DefaultLanguage: i18n.Parse(envOr("MATHTUTOR_DEFAULT_LANGUAGE", "en")),
		ScorePolicy:     envOr("MATHTUTOR_SCORE_POLICY", "ratio"),
		CorrectnessMode: envOr("MATHTUTOR_CORRECTNESS_MODE", "marker"),
		LLM:             llm.ConfigFromEnv(),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func csvOr(key, def string) []string {
	raw := envOr(key, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
