package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathtutor/internal/i18n"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// User is a registered student account.
type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      string
	PreferredLanguage i18n.Language
	TotalScore        int
	CreatedAt         time.Time
}

// UserRepo persists user accounts.
type UserRepo struct {
	db *sql.DB
}

// Create inserts a new user and fills in its generated ID.
func (r *UserRepo) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.PreferredLanguage == "" {
		u.PreferredLanguage = i18n.LangEnglish
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, preferred_language, total_score, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.PreferredLanguage), u.TotalScore, u.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// ByUsername looks a user up by username.
func (r *UserRepo) ByUsername(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, preferred_language, total_score, created_at
		FROM users WHERE username=$1`, username)
	return scanUser(row)
}

// ByID looks a user up by ID.
func (r *UserRepo) ByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, preferred_language, total_score, created_at
		FROM users WHERE id=$1`, id)
	return scanUser(row)
}

// UpdateLanguage changes the user's preferred response language.
func (r *UserRepo) UpdateLanguage(ctx context.Context, id string, lang i18n.Language) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET preferred_language=$1 WHERE id=$2`, string(lang), id)
	if err != nil {
		return fmt.Errorf("update language: %w", err)
	}
	return requireRow(res)
}

// AddScore adds points to the user's lifetime total.
func (r *UserRepo) AddScore(ctx context.Context, id string, points int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET total_score=total_score+$1 WHERE id=$2`, points, id)
	if err != nil {
		return fmt.Errorf("add score: %w", err)
	}
	return requireRow(res)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var lang string
	var created int64
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &lang, &u.TotalScore, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.PreferredLanguage = i18n.Language(lang)
	u.CreatedAt = time.Unix(created, 0)
	return &u, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
