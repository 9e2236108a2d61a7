package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/docquiz/docquiz/internal/quiz"
)

// Store is the persistence surface the service needs. Implemented by
// *Repository; stubbed in tests.
type Store interface {
	Insert(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	ListByUser(ctx context.Context, userID string) ([]*Document, error)
	ReplaceScores(ctx context.Context, id string, scores quiz.ScoreList) error
	ReplaceQuestions(ctx context.Context, id string, questions []string) error
	Delete(ctx context.Context, id string) error
}

// TitleGenerator names untitled documents from their content.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, textContent string) string
}

// Service owns document lifecycle: content, derived topics, per-document
// scores, and question history.
type Service struct {
	store  Store
	titles TitleGenerator
	logger zerolog.Logger
}

func NewService(store Store, titles TitleGenerator, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		titles: titles,
		logger: logger.With().Str("component", "document_service").Logger(),
	}
}

// Create validates and stores a new document. An empty title is filled in by
// the title generator when one is configured.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Document, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("document_content is required")
	}
	if err := req.TopicScores.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" && s.titles != nil {
		title = s.titles.GenerateTitle(ctx, req.Content)
	}

	doc := &Document{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Title:       title,
		Content:     req.Content,
		TopicScores: req.TopicScores,
		Questions:   trimHistory(req.Questions),
	}
	if doc.TopicScores == nil {
		doc.TopicScores = quiz.ScoreList{}
	}
	if doc.Questions == nil {
		doc.Questions = []string{}
	}

	if err := s.store.Insert(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info().Str("document_id", doc.ID).Str("user_id", doc.UserID).Msg("document created")
	return doc, nil
}

// Get fetches a document by id.
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	return s.store.Get(ctx, id)
}

// ListByUser fetches all documents owned by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Document, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	return s.store.ListByUser(ctx, userID)
}

// MergeScores upserts incoming topic scores into the document's list:
// existing topics are updated in place, new topics appended.
func (s *Service) MergeScores(ctx context.Context, id string, incoming quiz.ScoreList) (*Document, error) {
	if err := incoming.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.TopicScores = doc.TopicScores.Merge(incoming.ToMap())
	if err := s.store.ReplaceScores(ctx, id, doc.TopicScores); err != nil {
		return nil, err
	}
	return doc, nil
}

// ApplyScores merges a topic→score map produced by the scoring engine.
func (s *Service) ApplyScores(ctx context.Context, id string, scores map[string]float64) error {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.store.ReplaceScores(ctx, id, doc.TopicScores.Merge(scores))
}

// ReplaceQuestions overwrites the question history, bounded to the most
// recent entries.
func (s *Service) ReplaceQuestions(ctx context.Context, id string, questions []string) ([]string, error) {
	trimmed := trimHistory(questions)
	if trimmed == nil {
		trimmed = []string{}
	}
	if err := s.store.ReplaceQuestions(ctx, id, trimmed); err != nil {
		return nil, err
	}
	return trimmed, nil
}

// AppendQuestions extends the question history with newly asked texts,
// keeping the bound.
func (s *Service) AppendQuestions(ctx context.Context, id string, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	history := trimHistory(append(doc.Questions, texts...))
	return s.store.ReplaceQuestions(ctx, id, history)
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Snapshot exposes the slice of a document the quiz pipeline consumes.
func (s *Service) Snapshot(ctx context.Context, id string) (quiz.DocumentSnapshot, error) {
	doc, err := s.store.Get(ctx, id)
	if err == ErrNotFound {
		return quiz.DocumentSnapshot{}, quiz.ErrDocumentNotFound
	}
	if err != nil {
		return quiz.DocumentSnapshot{}, err
	}
	return quiz.DocumentSnapshot{
		Content: doc.Content,
		Topics:  doc.TopicScores.Topics(),
		History: doc.Questions,
	}, nil
}

func trimHistory(questions []string) []string {
	if len(questions) > maxQuestionHistory {
		questions = questions[len(questions)-maxQuestionHistory:]
	}
	return questions
}
