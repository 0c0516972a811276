package docextracterrors

import (
	"net/http"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
)

var (
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeUnsupportedFileType,
		"Only .docx and .pdf contracts are supported",
		http.StatusUnsupportedMediaType,
	)
	ErrEmptyDocument = apperror.New(
		apperror.CodeEmptyDocument,
		"Document contains no readable text",
		http.StatusUnprocessableEntity,
	)
	ErrDocumentUnreadable = apperror.New(
		apperror.CodeDocumentUnreadable,
		"Document could not be opened",
		http.StatusUnprocessableEntity,
	)
)
