package document

import (
	"errors"
	"time"

	"github.com/docquiz/docquiz/internal/quiz"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Most recent question texts kept in a document's history. The history only
// feeds generation prompts, so older entries stop paying for their storage.
const maxQuestionHistory = 200

// Document pairs uploaded text content with its derived topics, per-document
// mastery scores, and the history of questions already asked against it.
type Document struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Content     string         `json:"document_content"`
	TopicScores quiz.ScoreList `json:"topic_scores"`
	Questions   []string       `json:"questions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateRequest is the POST /documents payload.
type CreateRequest struct {
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Content     string         `json:"document_content"`
	TopicScores quiz.ScoreList `json:"topic_scores"`
	Questions   []string       `json:"questions"`
}
