package docparse

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/docquiz/docquiz/pkg/http/errors"
)

// Uploads larger than this are rejected before parsing.
const maxUploadBytes = 20 << 20

// HTTPHandler serves POST /parse_file.
type HTTPHandler struct {
	parser *Parser
	logger zerolog.Logger
}

func NewHTTPHandler(parser *Parser, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		parser: parser,
		logger: logger.With().Str("component", "parse_http").Logger(),
	}
}

// ParseFile accepts a multipart upload under the "file" field and responds
// with the extracted text. Failures use the same success/error envelope the
// original clients consume.
func (h *HTTPHandler) ParseFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "expected multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "file field is required", "file")
		return
	}
	defer file.Close()

	text, err := h.parser.Parse(header.Filename, file)
	if err != nil {
		status := http.StatusOK // soft failure envelope, matching the original API
		if !errors.Is(err, ErrUnsupported) {
			h.logger.Warn().Err(err).Str("filename", header.Filename).Msg("file parse failed")
		}
		respondJSON(w, status, map[string]any{"success": false, "error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]string{"text_content": text},
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
