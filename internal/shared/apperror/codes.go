package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInvalidState        = "INVALID_STATE"
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeEmptyDocument       = "EMPTY_DOCUMENT"
	CodeDocumentUnreadable  = "DOCUMENT_UNREADABLE"
	CodeMissingField        = "MISSING_REQUIRED_FIELD"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeTransactionFailed  = "TRANSACTION_FAILED"
)
