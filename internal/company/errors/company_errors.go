package companyerrors

import (
	"net/http"

	"hiringlens/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyName = apperror.New(
		apperror.CodeInvalidInput,
		"company name must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidSlug = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company slug",
		http.StatusBadRequest,
	)
	ErrSlugConflict = apperror.New(
		apperror.CodeConflict,
		"a company with this name already exists",
		http.StatusConflict,
	)
)
