package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docquiz/docquiz/internal/quiz"
)

// Repository is the Postgres-backed document store.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a new document and returns it with DB-assigned timestamps.
func (r *Repository) Insert(ctx context.Context, doc *Document) error {
	scores, err := json.Marshal(doc.TopicScores)
	if err != nil {
		return fmt.Errorf("encode topic scores: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO documents (id, user_id, title, content, topic_scores, questions)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		doc.ID, doc.UserID, doc.Title, doc.Content, scores, doc.Questions,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Get fetches a document by id.
func (r *Repository) Get(ctx context.Context, id string) (*Document, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, content, topic_scores, questions, created_at, updated_at
		 FROM documents WHERE id = $1`,
		id,
	)
	return scanDocument(row)
}

// ListByUser fetches all documents owned by userID, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, content, topic_scores, questions, created_at, updated_at
		 FROM documents WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ReplaceScores overwrites a document's topic score list.
func (r *Repository) ReplaceScores(ctx context.Context, id string, scores quiz.ScoreList) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode topic scores: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET topic_scores = $2, updated_at = now() WHERE id = $1`,
		id, data,
	)
	if err != nil {
		return fmt.Errorf("update document scores: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceQuestions overwrites a document's question history.
func (r *Repository) ReplaceQuestions(ctx context.Context, id string, questions []string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET questions = $2, updated_at = now() WHERE id = $1`,
		id, questions,
	)
	if err != nil {
		return fmt.Errorf("update document questions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (*Document, error) {
	var doc Document
	var rawScores []byte
	err := row.Scan(&doc.ID, &doc.UserID, &doc.Title, &doc.Content, &rawScores, &doc.Questions, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}

	if err := json.Unmarshal(rawScores, &doc.TopicScores); err != nil {
		return nil, fmt.Errorf("decode topic scores: %w", err)
	}
	if doc.Questions == nil {
		doc.Questions = []string{}
	}
	return &doc, nil
}
