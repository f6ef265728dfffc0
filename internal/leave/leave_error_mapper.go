package leave

import (
	"errors"

	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	employeeFKConstraint  = "fk_leave_requests_employee"
	rangeCheckConstraint  = "ck_leave_requests_range"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == employeeFKConstraint:
			return apperror.Validation([]string{msgEmployeeInvalid})
		case pgErr.Code == pgCheckViolation && pgErr.ConstraintName == rangeCheckConstraint:
			return apperror.Validation([]string{msgDateOrder})
		}
	}

	return err
}
