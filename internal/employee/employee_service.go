package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/credential"
	"go-hrms/internal/shared/payload"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetLeaveSummary(ctx context.Context, id string) (LeaveBalances, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	db              *sql.DB
	repo            Repository
	hasher          credential.Hasher
	outbox          kafka.OutboxRepository
	defaultPassword string
	logger          *zap.Logger
}

func NewService(db *sql.DB, repo Repository, hasher credential.Hasher, defaultPassword string, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, hasher, defaultPassword, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	hasher credential.Hasher,
	defaultPassword string,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:              db,
		repo:            repo,
		hasher:          hasher,
		outbox:          outboxRepo,
		defaultPassword: defaultPassword,
		logger:          l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email.Value),
		zap.String("department_id", req.DepartmentID.Value),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var dept *DepartmentRef
	lookup := func(id uuid.UUID) (bool, error) {
		d, err := qtx.FindDepartmentByID(ctx, id.String())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		dept = d
		return true, nil
	}

	fields, msgs, err := validateCreate(req, payload.Today(), lookup)
	if err != nil {
		s.logger.Error("create employee department lookup failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if len(msgs) > 0 {
		s.logger.Warn("create employee validation failed",
			zap.String("request_id", rid),
			zap.Strings("errors", msgs),
		)
		return EmployeeResponse{}, apperror.Validation(msgs)
	}

	taken, err := qtx.EmailExists(ctx, fields.email, "")
	if err != nil {
		s.logger.Error("create employee email check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		s.logger.Warn("create employee email already in use", zap.String("email", fields.email))
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
	}

	hash, err := s.hashInitialPassword(fields.password)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:                  uuid.New(),
		FirstName:           fields.firstName,
		LastName:            fields.lastName,
		Email:               fields.email,
		Role:                fields.role,
		Gender:              fields.gender,
		PasswordHash:        hash,
		DepartmentID:        fields.departmentID,
		HireDate:            fields.hireDate,
		SickLeaveTotal:      fields.counters.SickTotal,
		SickLeaveUsed:       fields.counters.SickUsed,
		VacationLeaveTotal:  fields.counters.VacationTotal,
		VacationLeaveUsed:   fields.counters.VacationUsed,
		MaternityLeaveTotal: fields.counters.MaternityTotal,
		MaternityLeaveUsed:  fields.counters.MaternityUsed,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	empl.Department = dept

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:    events.EmployeeCreated,
			RequestID:    rid,
			EmployeeID:   empl.ID.String(),
			DepartmentID: empl.DepartmentID.String(),
			Email:        empl.Email,
			OccurredAt:   time.Now().UTC(),
		}
		if err := kafka.Enqueue(ctx, s.outbox.WithTx(tx), kafka.OutboxEvent{
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LifecycleTopic,
		}, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return MapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")

	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.findByID(ctx, s.repo, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return MapToResponse(*empl), nil
}

func (s *service) GetLeaveSummary(ctx context.Context, id string) (LeaveBalances, error) {
	empl, err := s.findByID(ctx, s.repo, id)
	if err != nil {
		return LeaveBalances{}, err
	}
	return empl.LeaveBalances(), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	u, msgs := validateUpdate(req, *current)
	if len(msgs) > 0 {
		s.logger.Warn("update employee validation failed",
			zap.String("employee_id", id),
			zap.Strings("errors", msgs),
		)
		return EmployeeResponse{}, apperror.Validation(msgs)
	}

	if u.emailChanged {
		taken, err := qtx.EmailExists(ctx, u.employee.Email, id)
		if err != nil {
			s.logger.Error("update employee email check failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if taken {
			s.logger.Warn("update employee email already in use", zap.String("email", u.employee.Email))
			return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
		}
	}

	if u.departmentRequested {
		if u.departmentID == uuid.Nil {
			return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
		dept, err := qtx.FindDepartmentByID(ctx, u.departmentID.String())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("update employee department not found", zap.String("department_id", u.departmentID.String()))
			return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
		if err != nil {
			s.logger.Error("update employee department lookup failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		u.employee.DepartmentID = dept.ID
		u.employee.Department = dept
	}

	if u.password != nil {
		hash, err := s.hasher.Hash(*u.password)
		if err != nil {
			s.logger.Error("update employee hash password failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		u.employee.PasswordHash = hash
	}

	if err := qtx.Update(ctx, &u.employee); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	return MapToResponse(u.employee), nil
}

func (s *service) findByID(ctx context.Context, repo Repository, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("find employee failed", zap.String("employee_id", id), zap.Error(err))
		}
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

func (s *service) hashInitialPassword(plain string) (string, error) {
	if plain == "" {
		plain = s.defaultPassword
	}
	if plain == "" {
		secret, err := credential.RandomSecret()
		if err != nil {
			return "", err
		}
		plain = secret
	}
	return s.hasher.Hash(plain)
}

// MapToResponse renders an employee with its computed leave balances.
func MapToResponse(e Employee) EmployeeResponse {
	resp := MapToProfile(e)
	balances := e.LeaveBalances()
	resp.LeaveBalances = &balances
	return resp
}

// MapToProfile renders an employee without leave balances.
func MapToProfile(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID.String(),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Role:      e.Role,
		Gender:    e.Gender,
		HireDate:  payload.FormatDate(e.HireDate),
		CreatedAt: payload.FormatDateTime(e.CreatedAt),
		UpdatedAt: payload.FormatDateTime(e.UpdatedAt),
	}
	if e.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:          e.Department.ID.String(),
			Name:        e.Department.Name,
			Description: e.Department.Description,
			CreatedAt:   payload.FormatDateTime(e.Department.CreatedAt),
			UpdatedAt:   payload.FormatDateTime(e.Department.UpdatedAt),
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = MapToResponse(e)
	}
	return res
}
