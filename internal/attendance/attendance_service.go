package attendance

import (
	"context"
	"database/sql"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/payload"

	"go.uber.org/zap"
)

type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("check in requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	employeeID, err := parseEmployeeID(req.EmployeeID)
	if err != nil {
		s.logger.Warn("check in invalid employee id", zap.String("request_id", rid))
		return AttendanceResponse{}, err
	}
	at, err := resolveTimestamp(req.Timestamp, s.now())
	if err != nil {
		s.logger.Warn("check in invalid timestamp", zap.String("request_id", rid))
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check in begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.ensureEmployee(ctx, qtx, employeeID.String()); err != nil {
		return AttendanceResponse{}, err
	}

	open, err := qtx.FindOpenByEmployee(ctx, employeeID.String())
	if err != nil {
		s.logger.Error("check in find open session failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	rec, err := openSession(employeeID, open, at)
	if err != nil {
		s.logger.Warn("check in rejected",
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Error("check in persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("check in success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID.String()),
		zap.String("attendance_id", rec.ID.String()),
	)

	return mapToResponse(*rec), nil
}

func (s *service) CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("check out requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	employeeID, err := parseEmployeeID(req.EmployeeID)
	if err != nil {
		s.logger.Warn("check out invalid employee id", zap.String("request_id", rid))
		return AttendanceResponse{}, err
	}
	at, err := resolveTimestamp(req.Timestamp, s.now())
	if err != nil {
		s.logger.Warn("check out invalid timestamp", zap.String("request_id", rid))
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check out begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.ensureEmployee(ctx, qtx, employeeID.String()); err != nil {
		return AttendanceResponse{}, err
	}

	open, err := qtx.FindOpenByEmployee(ctx, employeeID.String())
	if err != nil {
		s.logger.Error("check out find open session failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := closeSession(open, at); err != nil {
		s.logger.Warn("check out rejected",
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	if err := qtx.Update(ctx, open); err != nil {
		s.logger.Error("check out persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("check out success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID.String()),
		zap.String("attendance_id", open.ID.String()),
	)

	return mapToResponse(*open), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	s.logger.Debug("list attendance requested", zap.String("employee_id", employeeID))

	id, err := parseEmployeeID(employeeID)
	if err != nil {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}

	if err := s.ensureEmployee(ctx, s.repo, id.String()); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAllByEmployee(ctx, id.String())
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) ensureEmployee(ctx context.Context, repo Repository, employeeID string) error {
	exists, err := repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("employee lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}
	if !exists {
		s.logger.Warn("employee not found", zap.String("employee_id", employeeID))
		return attendanceerrors.ErrEmployeeNotFound
	}
	return nil
}

func mapToResponse(r AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         r.ID.String(),
		EmployeeID: r.EmployeeID.String(),
		CheckIn:    payload.FormatDateTime(r.CheckIn),
		CreatedAt:  payload.FormatDateTime(r.CreatedAt),
		UpdatedAt:  payload.FormatDateTime(r.UpdatedAt),
	}
	if r.CheckOut != nil {
		v := payload.FormatDateTime(*r.CheckOut)
		resp.CheckOut = &v
	}
	return resp
}
