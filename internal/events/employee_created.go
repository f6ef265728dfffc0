package events

import "time"

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	DepartmentID string    `json:"department_id"`
	Email        string    `json:"email"`
	OccurredAt   time.Time `json:"occurred_at"`
}
