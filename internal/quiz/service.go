package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrDocumentNotFound is surfaced when a quiz operation references a missing
// document id. Unlike model failures this is raised to the caller: the user
// asked for something that does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// ValidationError marks failures that should reach the caller as actionable
// 400s rather than degraded results.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DocumentSnapshot is the slice of a document the pipeline needs.
type DocumentSnapshot struct {
	Content string
	Topics  []string
	History []string
}

// DocumentStore is the document surface the quiz service depends on.
type DocumentStore interface {
	Snapshot(ctx context.Context, id string) (DocumentSnapshot, error)
	AppendQuestions(ctx context.Context, id string, texts []string) error
	ApplyScores(ctx context.Context, id string, scores map[string]float64) error
}

// UserStore is the user-mastery surface the quiz service depends on.
type UserStore interface {
	ScoresMap(ctx context.Context, userID string) (map[string]float64, error)
	ApplyScores(ctx context.Context, userID string, scores map[string]float64) (ScoreList, error)
}

// Options bound quiz sizing.
type Options struct {
	DefaultQuestionCount int
	MaxQuestionCount     int
}

// Service ties the generation pipeline to persisted documents and mastery.
type Service struct {
	generator *Generator
	docs      DocumentStore
	users     UserStore
	cache     *TopicCache
	opts      Options
	logger    zerolog.Logger
}

func NewService(generator *Generator, docs DocumentStore, users UserStore, cache *TopicCache, opts Options, logger zerolog.Logger) *Service {
	if opts.DefaultQuestionCount <= 0 {
		opts.DefaultQuestionCount = 10
	}
	if opts.MaxQuestionCount <= 0 {
		opts.MaxQuestionCount = 25
	}
	return &Service{
		generator: generator,
		docs:      docs,
		users:     users,
		cache:     cache,
		opts:      opts,
		logger:    logger.With().Str("component", "quiz_service").Logger(),
	}
}

// TopicsRequest asks for topic extraction from either raw content or a
// stored document.
type TopicsRequest struct {
	DocumentID  string   `json:"document_id"`
	Content     string   `json:"content"`
	KnownTopics []string `json:"known_topics"`
}

// Topics extracts candidate topics. An unusable model response yields an
// empty list, not an error; the user curates or adds topics manually.
func (s *Service) Topics(ctx context.Context, req TopicsRequest) ([]string, error) {
	content := req.Content
	known := req.KnownTopics

	if req.DocumentID != "" {
		snap, err := s.docs.Snapshot(ctx, req.DocumentID)
		if err != nil {
			return nil, err
		}
		content = snap.Content
		if len(known) == 0 {
			known = snap.Topics
		}
	}
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Message: "content or document_id is required"}
	}

	if s.cache != nil {
		if topics := s.cache.Get(ctx, content, known); topics != nil {
			return topics, nil
		}
	}

	topics := s.generator.ExtractTopics(ctx, content, known)
	if s.cache != nil && len(topics) > 0 {
		if err := s.cache.Set(ctx, content, known, topics); err != nil {
			s.logger.Warn().Err(err).Msg("topic cache write failed")
		}
	}
	return topics, nil
}

// GenerateRequest asks for a quiz against a stored document.
type GenerateRequest struct {
	DocumentID   string   `json:"document_id"`
	Topics       []string `json:"topics"`
	NumQuestions int      `json:"num_questions"`
}

// Generate builds a quiz for a document, excluding its question history, and
// records the newly asked questions back onto the document. The returned
// slice may be shorter than requested.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) ([]Question, error) {
	if req.DocumentID == "" {
		return nil, &ValidationError{Message: "document_id is required"}
	}

	n := req.NumQuestions
	if n <= 0 {
		n = s.opts.DefaultQuestionCount
	}
	if n > s.opts.MaxQuestionCount {
		n = s.opts.MaxQuestionCount
	}

	snap, err := s.docs.Snapshot(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	topics := req.Topics
	if len(topics) == 0 {
		topics = snap.Topics
	}

	questions := s.generator.GenerateQuiz(ctx, snap.Content, topics, snap.History, n)
	if len(questions) < n {
		s.logger.Warn().
			Str("document_id", req.DocumentID).
			Int("requested", n).
			Int("generated", len(questions)).
			Msg("quiz shorter than requested")
	}

	texts := make([]string, 0, len(questions))
	for _, q := range questions {
		texts = append(texts, q.Text)
	}
	if err := s.docs.AppendQuestions(ctx, req.DocumentID, texts); err != nil {
		s.logger.Warn().Err(err).Str("document_id", req.DocumentID).Msg("failed to record question history")
	}

	return questions, nil
}

// SubmitRequest carries a completed quiz for grading.
type SubmitRequest struct {
	DocumentID string         `json:"document_id"`
	UserID     string         `json:"user_id"`
	Questions  []Question     `json:"questions"`
	Answers    map[int]string `json:"answers"`
}

// SubmitResponse returns the grade plus the user's updated mastery list.
type SubmitResponse struct {
	Score          int                   `json:"score"`
	TopicBreakdown map[string]TopicTally `json:"topic_breakdown"`
	TopicScores    ScoreList             `json:"topic_scores"`
}

// Submit grades a quiz, applies the mastery deltas to the user's persisted
// scores, and mirrors them onto the document.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	if req.UserID == "" {
		return nil, &ValidationError{Message: "user_id is required"}
	}
	if len(req.Questions) == 0 {
		return nil, &ValidationError{Message: "questions are required"}
	}

	result := ScoreQuiz(req.Questions, req.Answers)

	current, err := s.users.ScoresMap(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user scores: %w", err)
	}
	updated := ApplyMasteryDelta(current, req.Questions, req.Answers)

	// Persist only the topics this quiz touched.
	touched := make(map[string]float64)
	for i, q := range req.Questions {
		if _, answered := req.Answers[i]; answered {
			touched[q.Topic] = updated[q.Topic]
		}
	}

	scores, err := s.users.ApplyScores(ctx, req.UserID, touched)
	if err != nil {
		return nil, fmt.Errorf("update user scores: %w", err)
	}

	if req.DocumentID != "" {
		if err := s.docs.ApplyScores(ctx, req.DocumentID, touched); err != nil {
			s.logger.Warn().Err(err).Str("document_id", req.DocumentID).Msg("failed to update document scores")
		}
	}

	return &SubmitResponse{
		Score:          result.Score,
		TopicBreakdown: result.TopicBreakdown,
		TopicScores:    scores,
	}, nil
}
