package leave

import (
	"strings"
	"time"

	"go-hrms/internal/shared/payload"

	"github.com/google/uuid"
)

const (
	msgEmployeeRequired  = "employee_id is required."
	msgEmployeeInvalid   = "employee_id is invalid."
	msgStartRequired     = "start_date is required."
	msgEndRequired       = "end_date is required."
	msgDateFormat        = "Dates must be in YYYY-MM-DD format."
	msgDateOrder         = "start_date must be on or before end_date."
	msgStatusUnsupported = "Status must be pending, approved, or rejected."
)

var allowedStatuses = map[string]struct{}{
	StatusPending:  {},
	StatusApproved: {},
	StatusRejected: {},
}

// employeeLookup reports whether an employee exists.
type employeeLookup func(id uuid.UUID) (bool, error)

type createFields struct {
	employeeID uuid.UUID
	startDate  time.Time
	endDate    time.Time
	reason     *string
}

// NormalizeStatus matches a status case-insensitively.
func NormalizeStatus(v string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(v))
	_, ok := allowedStatuses[s]
	return s, ok
}

// validateCreate collects every failed rule of a new leave request.
// A lookup error aborts validation and is returned as is.
func validateCreate(req CreateLeaveRequest, lookup employeeLookup) (createFields, []string, error) {
	var msgs []string
	var f createFields

	if req.EmployeeID.Blank() {
		msgs = append(msgs, msgEmployeeRequired)
	}
	if req.StartDate.Blank() {
		msgs = append(msgs, msgStartRequired)
	}
	if req.EndDate.Blank() {
		msgs = append(msgs, msgEndRequired)
	}

	if !req.EmployeeID.Blank() {
		id, err := uuid.Parse(req.EmployeeID.Trimmed())
		if err != nil {
			msgs = append(msgs, msgEmployeeInvalid)
		} else {
			found, err := lookup(id)
			if err != nil {
				return createFields{}, nil, err
			}
			if !found {
				msgs = append(msgs, msgEmployeeInvalid)
			}
			f.employeeID = id
		}
	}

	start, end, rangeMsgs := checkRange(req.StartDate, req.EndDate, time.Time{}, time.Time{})
	msgs = append(msgs, rangeMsgs...)
	f.startDate, f.endDate = start, end

	if req.Reason.Present && !req.Reason.Null {
		reason := req.Reason.Value
		f.reason = &reason
	}

	if len(msgs) > 0 {
		return createFields{}, msgs, nil
	}
	return f, nil, nil
}

// validateUpdate applies the supplied keys to a copy of current. The
// resulting range is always re-checked, including dates taken from current.
func validateUpdate(req UpdateLeaveRequest, current Leave) (Leave, []string) {
	var msgs []string
	next := current

	if req.Status.Present {
		status, ok := NormalizeStatus(req.Status.Value)
		if req.Status.Null || !ok {
			msgs = append(msgs, msgStatusUnsupported)
		} else {
			next.Status = status
		}
	}

	start, end, rangeMsgs := checkRange(req.StartDate, req.EndDate, current.StartDate, current.EndDate)
	msgs = append(msgs, rangeMsgs...)
	next.StartDate, next.EndDate = start, end

	if req.Reason.Present {
		if req.Reason.Null {
			next.Reason = nil
		} else {
			reason := req.Reason.Value
			next.Reason = &reason
		}
	}

	if len(msgs) > 0 {
		return Leave{}, msgs
	}
	return next, nil
}

// checkRange parses the supplied dates over the fallbacks and reports a
// single format message or the order message. Absent keys keep the
// fallback; a zero fallback means there is nothing to compare against.
func checkRange(startRaw, endRaw payload.String, start, end time.Time) (time.Time, time.Time, []string) {
	badFormat := false

	if startRaw.Present && !startRaw.Blank() {
		d, err := payload.ParseDate(startRaw.Value)
		if err != nil {
			badFormat = true
		}
		start = d
	} else if startRaw.Present && !start.IsZero() {
		badFormat = true
	}

	if endRaw.Present && !endRaw.Blank() {
		d, err := payload.ParseDate(endRaw.Value)
		if err != nil {
			badFormat = true
		}
		end = d
	} else if endRaw.Present && !end.IsZero() {
		badFormat = true
	}

	if badFormat {
		return time.Time{}, time.Time{}, []string{msgDateFormat}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return start, end, []string{msgDateOrder}
	}
	return start, end, nil
}
