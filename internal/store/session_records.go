package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRecord is one persisted tutoring session for a user and subject.
// EndTime is nil while the session is still open.
type SessionRecord struct {
	ID                string
	UserID            string
	Subject           string
	StartTime         time.Time
	EndTime           *time.Time
	ProblemsAttempted int
	ProblemsSolved    int
	HintsUsed         int
	Score             int
}

// SessionRepo persists session records.
type SessionRepo struct {
	db *sql.DB
}

// Insert creates a new open session record and fills in its ID.
func (r *SessionRepo) Insert(ctx context.Context, rec *SessionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartTime.IsZero() {
		rec.StartTime = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_records (id, user_id, subject, start_time, end_time, problems_attempted, problems_solved, hints_used, score)
		VALUES ($1,$2,$3,$4,NULL,$5,$6,$7,$8)`,
		rec.ID, rec.UserID, rec.Subject, rec.StartTime.Unix(),
		rec.ProblemsAttempted, rec.ProblemsSolved, rec.HintsUsed, rec.Score)
	if err != nil {
		return fmt.Errorf("insert session record: %w", err)
	}
	return nil
}

// Update writes the current counters and score back to the record.
func (r *SessionRepo) Update(ctx context.Context, rec *SessionRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE session_records
		SET problems_attempted=$1, problems_solved=$2, hints_used=$3, score=$4
		WHERE id=$5`,
		rec.ProblemsAttempted, rec.ProblemsSolved, rec.HintsUsed, rec.Score, rec.ID)
	if err != nil {
		return fmt.Errorf("update session record: %w", err)
	}
	return requireRow(res)
}

// End stamps the record's end time.
func (r *SessionRepo) End(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE session_records SET end_time=$1 WHERE id=$2`, at.Unix(), id)
	if err != nil {
		return fmt.Errorf("end session record: %w", err)
	}
	return requireRow(res)
}

// EndOpen stamps every open record for the user. Returns the number of
// records closed.
func (r *SessionRepo) EndOpen(ctx context.Context, userID string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE session_records SET end_time=$1 WHERE user_id=$2 AND end_time IS NULL`,
		at.Unix(), userID)
	if err != nil {
		return 0, fmt.Errorf("end open session records: %w", err)
	}
	return res.RowsAffected()
}

// ListByUser returns the user's session records, newest first.
func (r *SessionRepo) ListByUser(ctx context.Context, userID string) ([]SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, subject, start_time, end_time, problems_attempted, problems_solved, hints_used, score
		FROM session_records WHERE user_id=$1 ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list session records: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var start int64
		var end sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Subject, &start, &end,
			&rec.ProblemsAttempted, &rec.ProblemsSolved, &rec.HintsUsed, &rec.Score); err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		rec.StartTime = time.Unix(start, 0)
		if end.Valid {
			t := time.Unix(end.Int64, 0)
			rec.EndTime = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ByID looks a record up by ID.
func (r *SessionRepo) ByID(ctx context.Context, id string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, subject, start_time, end_time, problems_attempted, problems_solved, hints_used, score
		FROM session_records WHERE id=$1`, id)

	var rec SessionRecord
	var start int64
	var end sql.NullInt64
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Subject, &start, &end,
		&rec.ProblemsAttempted, &rec.ProblemsSolved, &rec.HintsUsed, &rec.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session record: %w", err)
	}
	rec.StartTime = time.Unix(start, 0)
	if end.Valid {
		t := time.Unix(end.Int64, 0)
		rec.EndTime = &t
	}
	return &rec, nil
}
