package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docquiz/docquiz/internal/quiz"
)

// Store is the persistence surface the service needs. Implemented by
// *Repository; stubbed in tests.
type Store interface {
	Insert(ctx context.Context, userID string) (bool, error)
	Get(ctx context.Context, userID string) (*User, error)
	ReplaceScores(ctx context.Context, userID string, scores quiz.ScoreList) error
	Delete(ctx context.Context, userID string) error
}

// Service owns user lifecycle and topic mastery persistence.
type Service struct {
	store  Store
	logger zerolog.Logger
}

func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

// Create registers a user. Idempotent: an existing user is success.
func (s *Service) Create(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	created, err := s.store.Insert(ctx, userID)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info().Str("user_id", userID).Msg("user created")
	}
	return nil
}

// Get fetches a user with their score list.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.store.Get(ctx, userID)
}

// GetScores returns a user's topic mastery list.
func (s *Service) GetScores(ctx context.Context, userID string) (quiz.ScoreList, error) {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.TopicScores, nil
}

// ReplaceScores validates and overwrites a user's score list, creating the
// user first if needed (upsert semantics).
func (s *Service) ReplaceScores(ctx context.Context, userID string, scores quiz.ScoreList) error {
	if err := scores.Validate(); err != nil {
		return err
	}

	err := s.store.ReplaceScores(ctx, userID, scores)
	if err == ErrNotFound {
		if _, insErr := s.store.Insert(ctx, userID); insErr != nil {
			return insErr
		}
		err = s.store.ReplaceScores(ctx, userID, scores)
	}
	return err
}

// ScoresMap returns the user's mastery as a topic→score map. A missing user
// has no mastery yet, not an error.
func (s *Service) ScoresMap(ctx context.Context, userID string) (map[string]float64, error) {
	u, err := s.store.Get(ctx, userID)
	if err == ErrNotFound {
		return map[string]float64{}, nil
	}
	if err != nil {
		return nil, err
	}
	return u.TopicScores.ToMap(), nil
}

// ApplyScores upserts a topic→score map into the user's persisted list,
// preserving existing topic order. Used after each completed quiz.
func (s *Service) ApplyScores(ctx context.Context, userID string, scores map[string]float64) (quiz.ScoreList, error) {
	current := quiz.ScoreList{}
	u, err := s.store.Get(ctx, userID)
	switch err {
	case nil:
		current = u.TopicScores
	case ErrNotFound:
		if _, err := s.store.Insert(ctx, userID); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	merged := current.Merge(scores)
	if err := s.store.ReplaceScores(ctx, userID, merged); err != nil {
		return nil, err
	}
	return merged, nil
}
