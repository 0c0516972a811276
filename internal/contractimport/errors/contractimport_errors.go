package contractimporterrors

import (
	"net/http"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
)

var (
	ErrMissingSource = apperror.New(
		apperror.CodeInvalidInput,
		"Either a file or a file reference is required",
		http.StatusBadRequest,
	)
	ErrSourceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Source document not found",
		http.StatusNotFound,
	)
	ErrSourceUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Source document could not be downloaded",
		http.StatusServiceUnavailable,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the upload limit",
		http.StatusRequestEntityTooLarge,
	)
)
