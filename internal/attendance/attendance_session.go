package attendance

import (
	"strings"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/payload"

	"github.com/google/uuid"
)

// parseEmployeeID rejects blank and malformed ids with the same message.
func parseEmployeeID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, attendanceerrors.ErrEmployeeIDRequired
	}
	return id, nil
}

// resolveTimestamp returns the supplied instant in UTC, or now when the
// caller sent nothing.
func resolveTimestamp(raw *string, now time.Time) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return now.UTC(), nil
	}
	ts, err := payload.ParseDateTime(*raw)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidTimestamp
	}
	return ts, nil
}

// openSession starts a new session unless one is still open.
func openSession(employeeID uuid.UUID, open *AttendanceRecord, at time.Time) (*AttendanceRecord, error) {
	if open != nil {
		return nil, attendanceerrors.ErrAlreadyCheckedIn
	}
	return &AttendanceRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		CheckIn:    at,
	}, nil
}

// closeSession sets check_out on the open session. It never moves
// check_out before check_in.
func closeSession(open *AttendanceRecord, at time.Time) error {
	if open == nil {
		return attendanceerrors.ErrNoActiveCheckIn
	}
	if at.Before(open.CheckIn) {
		return attendanceerrors.ErrCheckOutBeforeCheckIn
	}
	open.CheckOut = &at
	return nil
}
