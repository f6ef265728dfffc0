package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	openSessionConstraint = "uq_attendance_open_session"
	employeeFKConstraint  = "fk_attendance_employee"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == openSessionConstraint:
			return attendanceerrors.ErrAlreadyCheckedIn
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == employeeFKConstraint:
			return attendanceerrors.ErrEmployeeNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, openSessionConstraint) {
		return attendanceerrors.ErrAlreadyCheckedIn
	}

	return err
}
