package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hrms/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueEmailConstraint  = "uq_employees_email"
	departmentFKConstraint = "fk_employees_department"
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == uniqueEmailConstraint:
			return employeeerrors.ErrEmailAlreadyExists
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == departmentFKConstraint:
			return employeeerrors.ErrDepartmentNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueEmailConstraint) {
		return employeeerrors.ErrEmailAlreadyExists
	}

	return err
}
