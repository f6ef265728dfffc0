package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/payload"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID.Value),
		zap.String("start_date", req.StartDate.Value),
		zap.String("end_date", req.EndDate.Value),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var employee *EmployeeRef
	lookup := func(id uuid.UUID) (bool, error) {
		ref, err := qtx.FindEmployeeByID(ctx, id.String())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		employee = ref
		return true, nil
	}

	fields, msgs, err := validateCreate(req, lookup)
	if err != nil {
		s.logger.Error("create leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if len(msgs) > 0 {
		s.logger.Warn("create leave validation failed",
			zap.String("request_id", rid),
			zap.Strings("errors", msgs),
		)
		return LeaveResponse{}, apperror.Validation(msgs)
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: fields.employeeID,
		StartDate:  fields.startDate,
		EndDate:    fields.endDate,
		Reason:     fields.reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	l.Employee = employee

	if err := s.enqueue(ctx, tx, l.ID.String(), events.LeaveRequested, events.LeaveRequestedEvent{
		EventType:  events.LeaveRequested,
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		StartDate:  payload.FormatDate(l.StartDate),
		EndDate:    payload.FormatDate(l.EndDate),
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		s.logger.Error("create leave outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID.String()),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]LeaveResponse, error) {
	if filter.EmployeeID == nil {
		leaves, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get all leaves failed", zap.Error(err))
			return nil, err
		}
		return mapToListResponse(leaves), nil
	}

	employeeID, err := uuid.Parse(*filter.EmployeeID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeFilter
	}

	if _, err := s.repo.FindEmployeeByID(ctx, employeeID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("get leaves employee lookup failed", zap.Error(err))
		return nil, err
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID.String())
	if err != nil {
		s.logger.Error("get leaves by employee failed",
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.findByID(ctx, s.repo, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("target_status", req.Status.Value),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	next, msgs := validateUpdate(req, *current)
	if len(msgs) > 0 {
		s.logger.Warn("update leave validation failed",
			zap.String("leave_id", id),
			zap.Strings("errors", msgs),
		)
		return LeaveResponse{}, apperror.Validation(msgs)
	}

	if err := qtx.Update(ctx, &next); err != nil {
		s.logger.Error("update leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if next.Status != current.Status {
		if err := s.enqueue(ctx, tx, next.ID.String(), events.LeaveStatusChanged, events.LeaveStatusChangedEvent{
			EventType:  events.LeaveStatusChanged,
			RequestID:  rid,
			LeaveID:    next.ID.String(),
			EmployeeID: next.EmployeeID.String(),
			FromStatus: current.Status,
			ToStatus:   next.Status,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			s.logger.Error("update leave outbox persist failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", next.Status),
	)

	return mapToResponse(next), nil
}

func (s *service) findByID(ctx context.Context, repo Repository, id string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("find leave failed", zap.String("leave_id", id), zap.Error(err))
		}
		return nil, mapRepositoryError(err)
	}
	return l, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, leaveID, eventType string, body any) error {
	if s.outbox == nil {
		return nil
	}
	return kafka.Enqueue(ctx, s.outbox.WithTx(tx), kafka.OutboxEvent{
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   leaveID,
		EventType:     eventType,
		Topic:         events.LifecycleTopic,
	}, body)
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		StartDate:  payload.FormatDate(l.StartDate),
		EndDate:    payload.FormatDate(l.EndDate),
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedAt:  payload.FormatDateTime(l.CreatedAt),
		UpdatedAt:  payload.FormatDateTime(l.UpdatedAt),
	}
	if l.Employee != nil {
		resp.Employee = &LeaveEmployeeResponse{
			ID:        l.Employee.ID.String(),
			FirstName: l.Employee.FirstName,
			LastName:  l.Employee.LastName,
		}
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
