package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-hrms/internal/attendance"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"

	"github.com/stretchr/testify/assert"
)

type seedDepartments struct {
	department.Service
	existing []department.DepartmentResponse
	created  []string
}

func (f *seedDepartments) GetAll(context.Context) ([]department.DepartmentResponse, error) {
	return f.existing, nil
}

func (f *seedDepartments) Create(_ context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	f.created = append(f.created, *req.Name)
	return department.DepartmentResponse{ID: fmt.Sprintf("dept-%d", len(f.created))}, nil
}

type seedEmployees struct {
	employee.Service
	requests []employee.CreateEmployeeRequest
	err      error
}

func (f *seedEmployees) Create(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if f.err != nil {
		return employee.EmployeeResponse{}, f.err
	}
	f.requests = append(f.requests, req)
	return employee.EmployeeResponse{ID: fmt.Sprintf("emp-%d", len(f.requests))}, nil
}

type seedAttendance struct {
	attendance.Service
	open      map[string]bool
	checkIns  int
	checkOuts int
}

func (f *seedAttendance) CheckIn(_ context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if f.open[req.EmployeeID] {
		return attendance.AttendanceResponse{}, errors.New("already open")
	}
	f.open[req.EmployeeID] = true
	f.checkIns++
	return attendance.AttendanceResponse{}, nil
}

func (f *seedAttendance) CheckOut(_ context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if !f.open[req.EmployeeID] {
		return attendance.AttendanceResponse{}, errors.New("not open")
	}
	f.open[req.EmployeeID] = false
	f.checkOuts++
	return attendance.AttendanceResponse{}, nil
}

type seedLeaves struct {
	leave.Service
	created  []leave.CreateLeaveRequest
	statuses map[string]string
}

func (f *seedLeaves) Create(_ context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	f.created = append(f.created, req)
	return leave.LeaveResponse{ID: fmt.Sprintf("leave-%d", len(f.created))}, nil
}

func (f *seedLeaves) Update(_ context.Context, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	f.statuses[id] = req.Status.Value
	return leave.LeaveResponse{ID: id}, nil
}

func newSeedModules() (modules, *seedDepartments, *seedEmployees, *seedAttendance, *seedLeaves) {
	d := &seedDepartments{}
	e := &seedEmployees{}
	a := &seedAttendance{open: map[string]bool{}}
	l := &seedLeaves{statuses: map[string]string{}}
	return modules{departments: d, employees: e, attendance: a, leaves: l}, d, e, a, l
}

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()

	t.Run("populates empty store", func(t *testing.T) {
		m, d, e, a, l := newSeedModules()

		err := seedDemoData(ctx, m)

		assert.NoError(t, err)
		assert.Equal(t, []string{"Human Resources", "Engineering", "Sales", "Finance"}, d.created)
		if assert.Len(t, e.requests, 6) {
			ava := e.requests[0]
			assert.Equal(t, "ava.stone@example.com", ava.Email.Value)
			assert.Equal(t, "dept-1", ava.DepartmentID.Value)
			assert.Equal(t, 90, ava.MaternityLeaveTotal.Value)
			assert.Equal(t, 45, ava.MaternityLeaveUsed.Value)
			assert.Equal(t, "dept-4", e.requests[5].DepartmentID.Value)
		}
		assert.Equal(t, 9, a.checkIns)
		assert.Equal(t, 7, a.checkOuts)
		assert.True(t, a.open["emp-2"])
		assert.True(t, a.open["emp-3"])
		assert.Len(t, l.created, 3)
		assert.Equal(t, map[string]string{"leave-2": leave.StatusApproved, "leave-3": leave.StatusApproved}, l.statuses)
	})

	t.Run("skips when departments exist", func(t *testing.T) {
		m, d, e, _, _ := newSeedModules()
		d.existing = []department.DepartmentResponse{{ID: "dept-x"}}

		err := seedDemoData(ctx, m)

		assert.NoError(t, err)
		assert.Empty(t, d.created)
		assert.Empty(t, e.requests)
	})

	t.Run("stops on first failure", func(t *testing.T) {
		m, _, e, a, _ := newSeedModules()
		e.err = errors.New("email taken")

		err := seedDemoData(ctx, m)

		assert.ErrorIs(t, err, e.err)
		assert.Zero(t, a.checkIns)
	})
}
