package contracterrors

import (
	"net/http"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
)

var (
	ErrTransactionFailure = apperror.New(
		apperror.CodeTransactionFailed,
		"Failed to save the imported contract",
		http.StatusInternalServerError,
	)
	ErrMissingStartDate = apperror.New(
		apperror.CodeMissingField,
		"Contract start date is required",
		http.StatusUnprocessableEntity,
	)
)
