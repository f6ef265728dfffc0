package app

import (
	"context"
	"fmt"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/shared/payload"

	"go.uber.org/zap"
)

const demoPassword = "password123"

type demoEmployee struct {
	firstName, lastName, email, role, gender string
	department                               int
	hireDate                                 string
	sick, vacation, maternity                [2]int
}

var demoDepartments = [][2]string{
	{"Human Resources", "Hiring and people ops"},
	{"Engineering", "Product development"},
	{"Sales", "Revenue generation"},
	{"Finance", "Accounting and planning"},
}

var demoEmployees = []demoEmployee{
	{"Ava", "Stone", "ava.stone@example.com", "HR Manager", employee.GenderFemale, 0, "2020-03-15", [2]int{12, 4}, [2]int{18, 8}, [2]int{90, 45}},
	{"Liam", "Garcia", "liam.garcia@example.com", "People Ops Specialist", employee.GenderMale, 0, "2022-07-01", [2]int{10, 2}, [2]int{15, 5}, [2]int{}},
	{"Maya", "Chen", "maya.chen@example.com", "Senior Engineer", employee.GenderFemale, 1, "2019-11-04", [2]int{14, 6}, [2]int{20, 12}, [2]int{90, 0}},
	{"Ethan", "Brooks", "ethan.brooks@example.com", "Staff Engineer", employee.GenderMale, 1, "2018-05-22", [2]int{12, 1}, [2]int{18, 7}, [2]int{}},
	{"Noah", "Patel", "noah.patel@example.com", "Account Executive", employee.GenderMale, 2, "2021-02-09", [2]int{10, 3}, [2]int{15, 6}, [2]int{}},
	{"Zoe", "Kim", "zoe.kim@example.com", "Finance Analyst", employee.GenderFemale, 3, "2023-01-16", [2]int{12, 0}, [2]int{15, 2}, [2]int{90, 0}},
}

// demoSessions are offsets back from now; a zero out leaves the session open.
var demoSessions = []struct {
	employee int
	in, out  time.Duration
}{
	{0, 3*24*time.Hour + 9*time.Hour, 3*24*time.Hour + time.Hour},
	{0, 24*time.Hour + 4*time.Hour, 24*time.Hour + time.Hour},
	{1, 2*24*time.Hour + 5*time.Hour, 2 * 24 * time.Hour},
	{1, 6 * time.Hour, 0},
	{2, 24*time.Hour + 2*time.Hour, 24 * time.Hour},
	{2, 3 * time.Hour, 0},
	{3, 4*24*time.Hour + 9*time.Hour, 4*24*time.Hour + 2*time.Hour},
	{4, 2*24*time.Hour + 8*time.Hour, 2*24*time.Hour + time.Hour},
	{5, 24*time.Hour + 7*time.Hour, 24*time.Hour + 2*time.Hour},
}

var demoLeaves = []struct {
	employee   int
	start, end int // days from today
	reason     string
	status     string
}{
	{0, 10, 12, "Family trip", leave.StatusPending},
	{2, -3, -1, "Medical leave", leave.StatusApproved},
	{5, 30, 40, "Maternity leave", leave.StatusApproved},
}

// seedDemoData populates an empty database through the services so every
// row passes the same validation as API traffic. It is a no-op once any
// department exists.
func seedDemoData(ctx context.Context, m modules) error {
	log := zap.L().Named("app.seed")

	existing, err := m.departments.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: list departments: %w", err)
	}
	if len(existing) > 0 {
		log.Debug("demo data skipped, departments exist", zap.Int("count", len(existing)))
		return nil
	}

	deptIDs := make([]string, 0, len(demoDepartments))
	for _, d := range demoDepartments {
		name, desc := d[0], d[1]
		dept, err := m.departments.Create(ctx, department.CreateDepartmentRequest{Name: &name, Description: &desc})
		if err != nil {
			return fmt.Errorf("seed: department %s: %w", name, err)
		}
		deptIDs = append(deptIDs, dept.ID)
	}

	empIDs := make([]string, 0, len(demoEmployees))
	for _, e := range demoEmployees {
		req := employee.CreateEmployeeRequest{
			FirstName:           payload.NewString(e.firstName),
			LastName:            payload.NewString(e.lastName),
			Email:               payload.NewString(e.email),
			Role:                payload.NewString(e.role),
			Gender:              payload.NewString(e.gender),
			Password:            payload.NewString(demoPassword),
			DepartmentID:        payload.NewString(deptIDs[e.department]),
			HireDate:            payload.NewString(e.hireDate),
			SickLeaveTotal:      payload.NewInt(e.sick[0]),
			SickLeaveUsed:       payload.NewInt(e.sick[1]),
			VacationLeaveTotal:  payload.NewInt(e.vacation[0]),
			VacationLeaveUsed:   payload.NewInt(e.vacation[1]),
			MaternityLeaveTotal: payload.NewInt(e.maternity[0]),
			MaternityLeaveUsed:  payload.NewInt(e.maternity[1]),
		}
		emp, err := m.employees.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("seed: employee %s: %w", e.email, err)
		}
		empIDs = append(empIDs, emp.ID)
	}

	now := time.Now().UTC()
	for _, s := range demoSessions {
		in := payload.FormatDateTime(now.Add(-s.in))
		if _, err := m.attendance.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empIDs[s.employee], Timestamp: &in}); err != nil {
			return fmt.Errorf("seed: check in: %w", err)
		}
		if s.out == 0 {
			continue
		}
		out := payload.FormatDateTime(now.Add(-s.out))
		if _, err := m.attendance.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empIDs[s.employee], Timestamp: &out}); err != nil {
			return fmt.Errorf("seed: check out: %w", err)
		}
	}

	today := payload.Today()
	for _, l := range demoLeaves {
		created, err := m.leaves.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: payload.NewString(empIDs[l.employee]),
			StartDate:  payload.NewString(payload.FormatDate(today.AddDate(0, 0, l.start))),
			EndDate:    payload.NewString(payload.FormatDate(today.AddDate(0, 0, l.end))),
			Reason:     payload.NewString(l.reason),
		})
		if err != nil {
			return fmt.Errorf("seed: leave: %w", err)
		}
		if l.status == leave.StatusPending {
			continue
		}
		if _, err := m.leaves.Update(ctx, created.ID, leave.UpdateLeaveRequest{Status: payload.NewString(l.status)}); err != nil {
			return fmt.Errorf("seed: leave status: %w", err)
		}
	}

	log.Info("demo data seeded",
		zap.Int("departments", len(deptIDs)),
		zap.Int("employees", len(empIDs)),
		zap.Int("attendance_sessions", len(demoSessions)),
		zap.Int("leaves", len(demoLeaves)),
	)
	return nil
}
