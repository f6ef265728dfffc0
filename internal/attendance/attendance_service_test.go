package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	employeeExistsFn     func(ctx context.Context, employeeID string) (bool, error)
	findOpenByEmployeeFn func(ctx context.Context, employeeID string) (*AttendanceRecord, error)
	findAllByEmployeeFn  func(ctx context.Context, employeeID string) ([]AttendanceRecord, error)
	createFn             func(ctx context.Context, rec *AttendanceRecord) error
	updateFn             func(ctx context.Context, rec *AttendanceRecord) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	return f.employeeExistsFn(ctx, employeeID)
}
func (f *fakeRepo) FindOpenByEmployee(ctx context.Context, employeeID string) (*AttendanceRecord, error) {
	return f.findOpenByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]AttendanceRecord, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) Create(ctx context.Context, rec *AttendanceRecord) error {
	return f.createFn(ctx, rec)
}
func (f *fakeRepo) Update(ctx context.Context, rec *AttendanceRecord) error {
	return f.updateFn(ctx, rec)
}

// memoryRepo keeps sessions for a single known employee.
func memoryRepo(employeeID string) (*fakeRepo, *[]AttendanceRecord) {
	rows := []AttendanceRecord{}
	repo := &fakeRepo{}
	repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) { return id == employeeID, nil }
	repo.findOpenByEmployeeFn = func(ctx context.Context, id string) (*AttendanceRecord, error) {
		var open *AttendanceRecord
		for i := range rows {
			r := &rows[i]
			if r.EmployeeID.String() == id && r.IsOpen() && (open == nil || r.CheckIn.After(open.CheckIn)) {
				open = r
			}
		}
		if open == nil {
			return nil, nil
		}
		cp := *open
		return &cp, nil
	}
	repo.findAllByEmployeeFn = func(ctx context.Context, id string) ([]AttendanceRecord, error) {
		var out []AttendanceRecord
		for _, r := range rows {
			if r.EmployeeID.String() == id {
				out = append(out, r)
			}
		}
		return out, nil
	}
	repo.createFn = func(ctx context.Context, rec *AttendanceRecord) error {
		rows = append(rows, *rec)
		return nil
	}
	repo.updateFn = func(ctx context.Context, rec *AttendanceRecord) error {
		for i := range rows {
			if rows[i].ID == rec.ID {
				rows[i] = *rec
			}
		}
		return nil
	}
	return repo, &rows
}

func newTestService(t *testing.T, repo Repository, now time.Time) (*service, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	svc := NewService(db, repo).(*service)
	svc.now = func() time.Time { return now }
	return svc, mock, func() { db.Close() }
}

func TestService_CheckInAndCheckOut(t *testing.T) {
	employeeID := uuid.New().String()
	now := time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)
	repo, rows := memoryRepo(employeeID)

	svc, mock, done := newTestService(t, repo, now)
	defer done()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	in, err := svc.CheckIn(ctx, CheckInRequest{EmployeeID: employeeID, Timestamp: strPtr("2024-03-01T09:00:00")})
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-01T09:00:00Z", in.CheckIn)
	assert.Nil(t, in.CheckOut)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckIn(ctx, CheckInRequest{EmployeeID: employeeID})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)

	mock.ExpectBegin()
	mock.ExpectCommit()
	out, err := svc.CheckOut(ctx, CheckOutRequest{EmployeeID: employeeID})
	assert.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, "2024-03-01T17:00:00Z", *out.CheckOut)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(ctx, CheckOutRequest{EmployeeID: employeeID})
	assert.ErrorIs(t, err, attendanceerrors.ErrNoActiveCheckIn)

	assert.Len(t, *rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckOutBeforeCheckIn(t *testing.T) {
	employeeID := uuid.New().String()
	repo, rows := memoryRepo(employeeID)
	svc, mock, done := newTestService(t, repo, time.Now())
	defer done()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(ctx, CheckInRequest{EmployeeID: employeeID, Timestamp: strPtr("2024-03-01T09:00:00Z")})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(ctx, CheckOutRequest{EmployeeID: employeeID, Timestamp: strPtr("2024-03-01T08:59:59Z")})

	assert.ErrorIs(t, err, attendanceerrors.ErrCheckOutBeforeCheckIn)
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, apperror.CodeInvalidState, httpErr.Code)
	assert.True(t, (*rows)[0].IsOpen())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_Rejections(t *testing.T) {
	employeeID := uuid.New().String()
	ctx := context.Background()

	t.Run("missing employee id never opens a tx", func(t *testing.T) {
		repo, _ := memoryRepo(employeeID)
		svc, mock, done := newTestService(t, repo, time.Now())
		defer done()

		_, err := svc.CheckIn(ctx, CheckInRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeIDRequired)
		assert.Equal(t, []string{"Valid employee_id is required."}, apperror.ToHTTP(err).Details)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		repo, _ := memoryRepo(employeeID)
		svc, _, done := newTestService(t, repo, time.Now())
		defer done()

		_, err := svc.CheckIn(ctx, CheckInRequest{EmployeeID: employeeID, Timestamp: strPtr("03/01/2024")})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidTimestamp)
	})

	t.Run("unknown employee", func(t *testing.T) {
		repo, _ := memoryRepo(employeeID)
		svc, mock, done := newTestService(t, repo, time.Now())
		defer done()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.CheckIn(ctx, CheckInRequest{EmployeeID: uuid.New().String()})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
		assert.Equal(t, 404, apperror.ToHTTP(err).Status)
	})

	t.Run("open session index race maps to already checked in", func(t *testing.T) {
		repo, _ := memoryRepo(employeeID)
		repo.createFn = func(ctx context.Context, rec *AttendanceRecord) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_open_session"}
		}
		svc, mock, done := newTestService(t, repo, time.Now())
		defer done()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.CheckIn(ctx, CheckInRequest{EmployeeID: employeeID})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("lookup failure surfaces", func(t *testing.T) {
		repo, _ := memoryRepo(employeeID)
		boom := errors.New("connection reset")
		repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) { return false, boom }
		svc, mock, done := newTestService(t, repo, time.Now())
		defer done()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.CheckIn(ctx, CheckInRequest{EmployeeID: employeeID})

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 500, apperror.ToHTTP(err).Status)
	})
}

func TestService_ListByEmployee(t *testing.T) {
	employeeID := uuid.New().String()
	repo, _ := memoryRepo(employeeID)
	svc, mock, done := newTestService(t, repo, time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC))
	defer done()
	ctx := context.Background()

	for _, day := range []string{"2024-03-01", "2024-03-02"} {
		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err := svc.CheckIn(ctx, CheckInRequest{EmployeeID: employeeID, Timestamp: strPtr(day + "T09:00:00")})
		assert.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err = svc.CheckOut(ctx, CheckOutRequest{EmployeeID: employeeID, Timestamp: strPtr(day + "T17:00:00")})
		assert.NoError(t, err)
	}

	list, err := svc.ListByEmployee(ctx, employeeID)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "2024-03-01T09:00:00Z", list[0].CheckIn)
	assert.Equal(t, "2024-03-02T17:00:00Z", *list[1].CheckOut)

	_, err = svc.ListByEmployee(ctx, uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)

	_, err = svc.ListByEmployee(ctx, "7")
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
