package autherrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrCredentialsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Email and password are required.",
		http.StatusBadRequest,
	)
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials.",
		http.StatusUnauthorized,
	)
	ErrMissingUserHeader = apperror.New(
		apperror.CodeInvalidInput,
		"Missing X-User-ID header.",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found.",
		http.StatusNotFound,
	)
)
