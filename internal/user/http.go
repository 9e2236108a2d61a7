package user

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/docquiz/docquiz/pkg/http/errors"
	"github.com/docquiz/docquiz/internal/quiz"
)

// HTTPHandlers provides REST endpoints for user operations.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "user_http").Logger(),
	}
}

// Create handles POST /users
func (h *HTTPHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id is required", "user_id")
		return
	}

	if err := h.service.Create(r.Context(), req.UserID); err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create user")
		httperrors.RespondInternalError(w, "failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    map[string]string{"user_id": req.UserID},
	})
}

// Get handles GET /users/{id}
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	u, err := h.service.Get(r.Context(), userID)
	if err == ErrNotFound {
		httperrors.RespondNotFound(w, httperrors.ErrCodeUserNotFound, "user not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to fetch user")
		httperrors.RespondInternalError(w, "failed to fetch user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "data": u})
}

// GetScores handles GET /users/{id}/scores
func (h *HTTPHandlers) GetScores(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	scores, err := h.service.GetScores(r.Context(), userID)
	if err == ErrNotFound {
		httperrors.RespondNotFound(w, httperrors.ErrCodeUserNotFound, "user not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to fetch scores")
		httperrors.RespondInternalError(w, "failed to fetch scores")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"topic_scores": scores},
	})
}

// ReplaceScores handles PUT /users/{id}/scores
func (h *HTTPHandlers) ReplaceScores(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var req struct {
		TopicScores quiz.ScoreList `json:"topic_scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if err := req.TopicScores.Validate(); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidScore, err.Error())
		return
	}

	if err := h.service.ReplaceScores(r.Context(), userID, req.TopicScores); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update scores")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeScoreUpdateFailed, "failed to update scores")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"topic_scores": req.TopicScores},
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
