package employee

import "go-hrms/internal/shared/payload"

// employeePayload is shared by create and update. Every field remembers
// whether it was sent so updates only touch what the client supplied.
type employeePayload struct {
	FirstName    payload.String `json:"first_name"`
	LastName     payload.String `json:"last_name"`
	Email        payload.String `json:"email"`
	Role         payload.String `json:"role"`
	Gender       payload.String `json:"gender"`
	Password     payload.String `json:"password"`
	DepartmentID payload.String `json:"department_id"`
	HireDate     payload.String `json:"hire_date"`

	SickLeaveTotal      payload.Int `json:"sick_leave_total"`
	SickLeaveUsed       payload.Int `json:"sick_leave_used"`
	VacationLeaveTotal  payload.Int `json:"vacation_leave_total"`
	VacationLeaveUsed   payload.Int `json:"vacation_leave_used"`
	MaternityLeaveTotal payload.Int `json:"maternity_leave_total"`
	MaternityLeaveUsed  payload.Int `json:"maternity_leave_used"`
}

type CreateEmployeeRequest employeePayload

type UpdateEmployeeRequest employeePayload

type EmployeeDepartmentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type EmployeeResponse struct {
	ID            string                      `json:"id"`
	FirstName     string                      `json:"first_name"`
	LastName      string                      `json:"last_name"`
	Email         string                      `json:"email"`
	Role          *string                     `json:"role"`
	Gender        string                      `json:"gender"`
	Department    *EmployeeDepartmentResponse `json:"department"`
	HireDate      string                      `json:"hire_date"`
	LeaveBalances *LeaveBalances              `json:"leave_balances,omitempty"`
	CreatedAt     string                      `json:"created_at"`
	UpdatedAt     string                      `json:"updated_at"`
}
