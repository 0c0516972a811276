package customererrors

import (
	"net/http"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"No existing customer matches the contract party",
		http.StatusNotFound,
	)
	ErrCustomerCreationRace = apperror.New(
		apperror.CodeConflict,
		"Customer was created concurrently but could not be read back",
		http.StatusConflict,
	)
	ErrMissingCustomerName = apperror.New(
		apperror.CodeMissingField,
		"Customer name could not be extracted from the contract",
		http.StatusUnprocessableEntity,
	)
)
