package user

import (
	"errors"
	"time"

	"github.com/docquiz/docquiz/internal/quiz"
)

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// User pairs an external identity with persisted topic mastery. The user_id
// is an opaque identifier minted by the identity provider; this service never
// inspects it.
type User struct {
	UserID      string         `json:"user_id"`
	TopicScores quiz.ScoreList `json:"topic_scores"`
	CreatedAt   time.Time      `json:"created_at"`
}
