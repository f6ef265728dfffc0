package attendanceerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeIDRequired = apperror.Validation([]string{"Valid employee_id is required."})
	ErrInvalidTimestamp   = apperror.Validation([]string{"timestamp must be an ISO-8601 date-time."})

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"Employee already checked in.",
		http.StatusBadRequest,
	)
	ErrNoActiveCheckIn = apperror.New(
		apperror.CodeInvalidState,
		"No active check-in found.",
		http.StatusBadRequest,
	)
	ErrCheckOutBeforeCheckIn = apperror.New(
		apperror.CodeInvalidState,
		"Check-out cannot be before check-in.",
		http.StatusBadRequest,
	)
)
