package interviewerrors

import (
	"net/http"

	"hiringlens/internal/shared/apperror"
)

var (
	ErrInterviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"review not found",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the author of a review may change it",
		http.StatusForbidden,
	)
	ErrNotAdmin = apperror.New(
		apperror.CodeForbidden,
		"moderation requires admin access",
		http.StatusForbidden,
	)
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"you must be signed in to submit a review",
		http.StatusUnauthorized,
	)
	ErrDeleteNonPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending reviews can be deleted",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidInterviewID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid review id",
		http.StatusBadRequest,
	)
	ErrInvalidSeniority = apperror.New(
		apperror.CodeInvalidInput,
		"invalid seniority level",
		http.StatusBadRequest,
	)
	ErrInvalidInterviewType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid interview type",
		http.StatusBadRequest,
	)
	ErrInvalidOutcome = apperror.New(
		apperror.CodeInvalidInput,
		"invalid interview outcome",
		http.StatusBadRequest,
	)
	ErrInvalidFlagReason = apperror.New(
		apperror.CodeInvalidInput,
		"invalid flag reason",
		http.StatusBadRequest,
	)
)
