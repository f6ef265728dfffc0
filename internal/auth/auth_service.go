package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/employee"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/credential"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (UserResponse, error)
	Me(ctx context.Context, userID string) (UserResponse, error)
}

type service struct {
	employees employee.Repository
	hasher    credential.Hasher
	logger    *zap.Logger
}

func NewService(employees employee.Repository, hasher credential.Hasher, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employees, hasher: hasher, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email = employee.NormalizeEmail(email)
	if email == "" || password == "" {
		return UserResponse{}, autherrors.ErrCredentialsRequired
	}

	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login unknown email", zap.String("request_id", rid))
			return UserResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}

	if err := s.hasher.Compare(empl.PasswordHash, password); err != nil {
		s.logger.Warn("login password mismatch",
			zap.String("request_id", rid),
			zap.String("employee_id", empl.ID.String()),
		)
		return UserResponse{}, autherrors.ErrInvalidCredentials
	}

	s.logger.Info("login success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return UserResponse{User: employee.MapToResponse(*empl)}, nil
}

func (s *service) Me(ctx context.Context, userID string) (UserResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserResponse{}, autherrors.ErrMissingUserHeader
	}
	if _, err := uuid.Parse(userID); err != nil {
		return UserResponse{}, autherrors.ErrUserNotFound
	}

	empl, err := s.employees.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, autherrors.ErrUserNotFound
		}
		s.logger.Error("me lookup failed", zap.String("user_id", userID), zap.Error(err))
		return UserResponse{}, err
	}

	return UserResponse{User: employee.MapToProfile(*empl)}, nil
}
