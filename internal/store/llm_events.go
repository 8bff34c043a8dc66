package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMRequest is one completion call observation: which provider and model
// served it, what flow triggered it, and how it went.
type LLMRequest struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEventRepo records completion calls.
type LLMEventRepo interface {
	Append(ctx context.Context, req LLMRequest) error
}

type llmEventRepo struct {
	db *sql.DB
}

func (r *llmEventRepo) Append(ctx context.Context, req LLMRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		req.Provider, req.Model, req.Purpose, req.InputTokens, req.OutputTokens,
		req.LatencyMs, req.Success, req.ErrorMessage, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

// CountEvents returns the total number of logged completion calls.
// Used by the stats surfaces.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM llm_events`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count llm events: %w", err)
	}
	return n, nil
}
