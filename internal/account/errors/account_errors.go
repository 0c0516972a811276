package accounterrors

import (
	"net/http"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
)

var (
	ErrMissingEmail = apperror.New(
		apperror.CodeInvalidInput,
		"An email address is required to create a login",
		http.StatusBadRequest,
	)
	ErrAccountRace = apperror.New(
		apperror.CodeConflict,
		"Account was created concurrently but could not be read back",
		http.StatusConflict,
	)
)
