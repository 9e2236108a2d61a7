package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"

	// User errors
	ErrCodeUserCreationFailed = "user_creation_failed"
	ErrCodeUserNotFound       = "user_not_found"
	ErrCodeScoreUpdateFailed  = "score_update_failed"
	ErrCodeInvalidScore       = "invalid_score"

	// Document errors
	ErrCodeDocumentCreationFailed = "document_creation_failed"
	ErrCodeDocumentNotFound       = "document_not_found"
	ErrCodeDocumentUpdateFailed   = "document_update_failed"
	ErrCodeDocumentDeleteFailed   = "document_delete_failed"

	// Quiz errors
	ErrCodeTopicExtractionFailed = "topic_extraction_failed"
	ErrCodeQuizGenerationFailed  = "quiz_generation_failed"
	ErrCodeQuizSubmitFailed      = "quiz_submit_failed"

	// File parsing errors
	ErrCodeUnsupportedFileType = "unsupported_file_type"
	ErrCodeParseFailed         = "parse_failed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
