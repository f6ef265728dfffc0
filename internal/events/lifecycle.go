package events

import "time"

// LifecycleTopic carries every HR lifecycle event, keyed by aggregate id.
const LifecycleTopic = "hr.lifecycle.v1"

const (
	EmployeeCreated    = "employee_created"
	LeaveRequested     = "leave_requested"
	LeaveStatusChanged = "leave_status_changed"
)

// Envelope holds the fields shared by all lifecycle events.
type Envelope struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
