package leave

import "go-hrms/internal/shared/payload"

type CreateLeaveRequest struct {
	EmployeeID payload.String `json:"employee_id"`
	StartDate  payload.String `json:"start_date"`
	EndDate    payload.String `json:"end_date"`
	Reason     payload.String `json:"reason"`
}

// UpdateLeaveRequest applies only the keys present in the body.
type UpdateLeaveRequest struct {
	Status    payload.String `json:"status"`
	StartDate payload.String `json:"start_date"`
	EndDate   payload.String `json:"end_date"`
	Reason    payload.String `json:"reason"`
}

// ListFilter narrows GetAll. A nil EmployeeID lists every leave.
type ListFilter struct {
	EmployeeID *string
}

type LeaveEmployeeResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LeaveResponse struct {
	ID         string                 `json:"id"`
	EmployeeID string                 `json:"employee_id"`
	StartDate  string                 `json:"start_date"`
	EndDate    string                 `json:"end_date"`
	Reason     *string                `json:"reason"`
	Status     string                 `json:"status"`
	Employee   *LeaveEmployeeResponse `json:"employee"`
	CreatedAt  string                 `json:"created_at"`
	UpdatedAt  string                 `json:"updated_at"`
}
