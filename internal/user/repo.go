package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docquiz/docquiz/internal/quiz"
)

// Repository is the Postgres-backed user store.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert creates a user row. Returns created=false when the user already
// exists, which callers treat as success.
func (r *Repository) Insert(ctx context.Context, userID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO users (user_id, topic_scores)
		 VALUES ($1, '[]'::jsonb)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return false, fmt.Errorf("insert user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Get fetches a user by id.
func (r *Repository) Get(ctx context.Context, userID string) (*User, error) {
	var u User
	var rawScores []byte
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, topic_scores, created_at FROM users WHERE user_id = $1`,
		userID,
	).Scan(&u.UserID, &rawScores, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := json.Unmarshal(rawScores, &u.TopicScores); err != nil {
		return nil, fmt.Errorf("decode topic scores: %w", err)
	}
	return &u, nil
}

// ReplaceScores overwrites a user's topic score list.
func (r *Repository) ReplaceScores(ctx context.Context, userID string, scores quiz.ScoreList) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode topic scores: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET topic_scores = $2 WHERE user_id = $1`,
		userID, data,
	)
	if err != nil {
		return fmt.Errorf("replace scores: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user row.
func (r *Repository) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
