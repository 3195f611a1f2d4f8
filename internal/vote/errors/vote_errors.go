package voteerrors

import (
	"net/http"

	"hiringlens/internal/shared/apperror"
)

var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"authentication is required to vote",
		http.StatusUnauthorized,
	)
	ErrInvalidInterviewID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid review id",
		http.StatusBadRequest,
	)
	ErrInterviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"review not found",
		http.StatusNotFound,
	)
)
