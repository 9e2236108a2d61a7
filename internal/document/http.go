package document

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/docquiz/docquiz/internal/quiz"
	httperrors "github.com/docquiz/docquiz/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for document operations.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "document_http").Logger(),
	}
}

// Create handles POST /documents
func (h *HTTPHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id is required", "user_id")
		return
	}
	if req.Content == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "document_content is required", "document_content")
		return
	}

	doc, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create document")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeDocumentCreationFailed, "failed to create document")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "data": doc})
}

// List handles GET /documents?user_id=
func (h *HTTPHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id query parameter is required", "user_id")
		return
	}

	docs, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list documents")
		httperrors.RespondInternalError(w, "failed to list documents")
		return
	}
	if docs == nil {
		docs = []*Document{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "data": docs})
}

// Get handles GET /documents/{id}
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	doc, err := h.service.Get(r.Context(), id)
	if err == ErrNotFound {
		httperrors.RespondNotFound(w, httperrors.ErrCodeDocumentNotFound, "document not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("document_id", id).Msg("failed to fetch document")
		httperrors.RespondInternalError(w, "failed to fetch document")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "data": doc})
}

// UpdateScores handles PUT /documents/{id}/scores
func (h *HTTPHandlers) UpdateScores(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

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

	doc, err := h.service.MergeScores(r.Context(), id, req.TopicScores)
	if err == ErrNotFound {
		httperrors.RespondNotFound(w, httperrors.ErrCodeDocumentNotFound, "document not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("document_id", id).Msg("failed to update document scores")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeDocumentUpdateFailed, "failed to update document scores")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "data": doc})
}

// UpdateQuestions handles PUT /documents/{id}/questions
func (h *HTTPHandlers) UpdateQuestions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Questions []string `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	questions, err := h.service.ReplaceQuestions(r.Context(), id, req.Questions)
	if err == ErrNotFound {
		httperrors.RespondNotFound(w, httperrors.ErrCodeDocumentNotFound, "document not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("document_id", id).Msg("failed to update document questions")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeDocumentUpdateFailed, "failed to update document questions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"questions": questions},
	})
}

// Delete handles DELETE /documents/{id}
func (h *HTTPHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.service.Delete(r.Context(), id)
	if err == ErrNotFound {
		httperrors.RespondNotFound(w, httperrors.ErrCodeDocumentNotFound, "document not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("document_id", id).Msg("failed to delete document")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeDocumentDeleteFailed, "failed to delete document")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
