package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/docquiz/docquiz/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for the quiz pipeline.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "quiz_http").Logger(),
	}
}

// Topics handles POST /quiz/topics
func (h *HTTPHandlers) Topics(w http.ResponseWriter, r *http.Request) {
	var req TopicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	topics, err := h.service.Topics(r.Context(), req)
	if h.respondServiceError(w, err, httperrors.ErrCodeTopicExtractionFailed) {
		return
	}
	if topics == nil {
		topics = []string{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"topics": topics},
	})
}

// Generate handles POST /quiz/generate
func (h *HTTPHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	questions, err := h.service.Generate(r.Context(), req)
	if h.respondServiceError(w, err, httperrors.ErrCodeQuizGenerationFailed) {
		return
	}
	if questions == nil {
		questions = []Question{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"questions": questions},
	})
}

// Submit handles POST /quiz/submit
func (h *HTTPHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	resp, err := h.service.Submit(r.Context(), req)
	if h.respondServiceError(w, err, httperrors.ErrCodeQuizSubmitFailed) {
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "data": resp})
}

// respondServiceError maps service errors onto HTTP responses. Returns true
// when a response was written.
func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error, failCode string) bool {
	if err == nil {
		return false
	}

	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, vErr.Message)
	case errors.Is(err, ErrDocumentNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeDocumentNotFound, "document not found")
	default:
		h.logger.Error().Err(err).Msg("quiz operation failed")
		httperrors.RespondError(w, http.StatusInternalServerError, failCode, err.Error())
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
