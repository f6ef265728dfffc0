package employee

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go-hrms/internal/shared/payload"

	"github.com/google/uuid"
)

var allowedGenders = map[string]struct{}{
	GenderFemale:      {},
	GenderMale:        {},
	GenderNonBinary:   {},
	GenderUnspecified: {},
}

// Order matches leaveInputs and LeaveCounters.array: total then used per type.
var leaveFieldNames = [6]string{
	"sick_leave_total",
	"sick_leave_used",
	"vacation_leave_total",
	"vacation_leave_used",
	"maternity_leave_total",
	"maternity_leave_used",
}

var leaveTypes = [3]string{"sick", "vacation", "maternity"}

const genderMessage = "Gender must be female, male, non-binary, or unspecified."

// Column widths of the employees table.
const (
	maxNameLength  = 120
	maxRoleLength  = 120
	maxEmailLength = 255
)

// departmentLookup reports whether a department exists.
type departmentLookup func(id uuid.UUID) (bool, error)

type createFields struct {
	firstName    string
	lastName     string
	email        string
	role         *string
	gender       string
	password     string
	departmentID uuid.UUID
	hireDate     time.Time
	counters     LeaveCounters
}

type employeeUpdate struct {
	employee Employee

	departmentRequested bool
	departmentID        uuid.UUID // uuid.Nil when the supplied id is blank or malformed
	emailChanged        bool
	password            *string
}

func DefaultLeaveCounters() LeaveCounters {
	return LeaveCounters{
		SickTotal:     DefaultSickLeaveTotal,
		VacationTotal: DefaultVacationLeaveTotal,
	}
}

func NormalizeGender(v string) (string, bool) {
	g := strings.ToLower(strings.TrimSpace(v))
	_, ok := allowedGenders[g]
	return g, ok
}

func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// validateCreate returns either normalized fields or the failed rules.
// A lookup error aborts validation and is returned as is.
func validateCreate(req CreateEmployeeRequest, today time.Time, lookup departmentLookup) (createFields, []string, error) {
	var msgs []string
	f := createFields{
		gender:   GenderUnspecified,
		hireDate: today,
	}

	f.firstName = req.FirstName.Trimmed()
	f.lastName = req.LastName.Trimmed()
	f.email = NormalizeEmail(req.Email.Value)

	if f.firstName == "" {
		msgs = append(msgs, "First name is required.")
	}
	if f.lastName == "" {
		msgs = append(msgs, "Last name is required.")
	}
	if f.email == "" {
		msgs = append(msgs, "Email is required.")
	}
	if req.DepartmentID.Blank() {
		msgs = append(msgs, "Department id is required.")
	}

	if f.email != "" && !strings.Contains(f.email, "@") {
		msgs = append(msgs, "Email must be valid.")
	}
	msgs = appendTooLong(msgs, "First name", f.firstName, maxNameLength)
	msgs = appendTooLong(msgs, "Last name", f.lastName, maxNameLength)
	msgs = appendTooLong(msgs, "Email", f.email, maxEmailLength)

	if !req.DepartmentID.Blank() {
		id, err := uuid.Parse(req.DepartmentID.Trimmed())
		if err != nil {
			msgs = append(msgs, "Department not found.")
		} else {
			found, err := lookup(id)
			if err != nil {
				return createFields{}, nil, err
			}
			if !found {
				msgs = append(msgs, "Department not found.")
			}
			f.departmentID = id
		}
	}

	if !req.Gender.Blank() {
		g, ok := NormalizeGender(req.Gender.Value)
		if !ok {
			msgs = append(msgs, genderMessage)
		}
		f.gender = g
	}

	if !req.HireDate.Blank() {
		d, err := payload.ParseDate(req.HireDate.Value)
		if err != nil {
			msgs = append(msgs, "hire_date must be in YYYY-MM-DD format.")
		}
		f.hireDate = d
	}

	counters, leaveMsgs := validateLeaveCounters(leaveInputs(employeePayload(req)), DefaultLeaveCounters().array())
	msgs = append(msgs, leaveMsgs...)
	f.counters = countersFromArray(counters)
	if f.gender != GenderFemale {
		f.counters.MaternityTotal = 0
		f.counters.MaternityUsed = 0
	}

	f.role = optionalRole(req.Role)
	if f.role != nil {
		msgs = appendTooLong(msgs, "Role", *f.role, maxRoleLength)
	}
	if !req.Password.Blank() {
		f.password = req.Password.Value
	}

	if len(msgs) > 0 {
		return createFields{}, msgs, nil
	}
	return f, nil, nil
}

// validateUpdate applies the supplied fields to a copy of current.
// Department existence and email uniqueness need the store and are left
// to the caller.
func validateUpdate(req UpdateEmployeeRequest, current Employee) (employeeUpdate, []string) {
	var msgs []string
	u := employeeUpdate{employee: current}
	e := &u.employee

	if req.FirstName.Present {
		if req.FirstName.Blank() {
			msgs = append(msgs, "First name cannot be empty.")
		} else {
			e.FirstName = req.FirstName.Trimmed()
			msgs = appendTooLong(msgs, "First name", e.FirstName, maxNameLength)
		}
	}

	if req.LastName.Present {
		if req.LastName.Blank() {
			msgs = append(msgs, "Last name cannot be empty.")
		} else {
			e.LastName = req.LastName.Trimmed()
			msgs = appendTooLong(msgs, "Last name", e.LastName, maxNameLength)
		}
	}

	if req.Email.Present {
		email := NormalizeEmail(req.Email.Value)
		switch {
		case req.Email.Null || email == "":
			msgs = append(msgs, "Email cannot be empty.")
		case !strings.Contains(email, "@"):
			msgs = append(msgs, "Email must be valid.")
		case utf8.RuneCountInString(email) > maxEmailLength:
			msgs = appendTooLong(msgs, "Email", email, maxEmailLength)
		default:
			u.emailChanged = email != current.Email
			e.Email = email
		}
	}

	if req.Role.Present {
		e.Role = optionalRole(req.Role)
		if e.Role != nil {
			msgs = appendTooLong(msgs, "Role", *e.Role, maxRoleLength)
		}
	}

	if req.Gender.Present {
		if req.Gender.Blank() {
			e.Gender = GenderUnspecified
		} else if g, ok := NormalizeGender(req.Gender.Value); ok {
			e.Gender = g
		} else {
			msgs = append(msgs, genderMessage)
		}
	}

	if req.DepartmentID.Present {
		u.departmentRequested = true
		if id, err := uuid.Parse(req.DepartmentID.Trimmed()); err == nil && !req.DepartmentID.Null {
			u.departmentID = id
		}
	}

	if req.HireDate.Present {
		d, err := payload.ParseDate(req.HireDate.Value)
		if req.HireDate.Null || err != nil {
			msgs = append(msgs, "hire_date must be in YYYY-MM-DD format.")
		} else {
			e.HireDate = d
		}
	}

	if req.Password.Present {
		if req.Password.Blank() {
			msgs = append(msgs, "Password cannot be empty.")
		} else {
			pw := req.Password.Value
			u.password = &pw
		}
	}

	counters, leaveMsgs := validateLeaveCounters(leaveInputs(employeePayload(req)), current.LeaveCounters().array())
	msgs = append(msgs, leaveMsgs...)
	next := countersFromArray(counters)
	e.SickLeaveTotal, e.SickLeaveUsed = next.SickTotal, next.SickUsed
	e.VacationLeaveTotal, e.VacationLeaveUsed = next.VacationTotal, next.VacationUsed
	e.MaternityLeaveTotal, e.MaternityLeaveUsed = next.MaternityTotal, next.MaternityUsed

	if e.Gender != GenderFemale {
		e.MaternityLeaveTotal = 0
		e.MaternityLeaveUsed = 0
	}

	if len(msgs) > 0 {
		return employeeUpdate{}, msgs
	}
	return u, nil
}

// validateLeaveCounters coerces the six numeric inputs over current and
// checks used <= total per type on the effective values. A pair with a
// rejected side is not cross-checked.
func validateLeaveCounters(inputs [6]payload.Int, current [6]int) ([6]int, []string) {
	var msgs []string
	result := current
	var supplied [6]bool

	for i, in := range inputs {
		if !in.Present {
			continue
		}
		if !in.Valid {
			msgs = append(msgs, leaveFieldNames[i]+" must be an integer.")
			continue
		}
		if in.Value < 0 {
			msgs = append(msgs, leaveFieldNames[i]+" cannot be negative.")
			continue
		}
		result[i] = in.Value
		supplied[i] = true
	}

	for t, kind := range leaveTypes {
		total, used := 2*t, 2*t+1
		if !supplied[total] && !supplied[used] {
			continue
		}
		if (inputs[total].Present && !supplied[total]) || (inputs[used].Present && !supplied[used]) {
			continue
		}
		if result[used] > result[total] {
			msgs = append(msgs, fmt.Sprintf("%s_leave_used cannot exceed %s_leave_total.", kind, kind))
		}
	}

	return result, msgs
}

func leaveInputs(p employeePayload) [6]payload.Int {
	return [6]payload.Int{
		p.SickLeaveTotal,
		p.SickLeaveUsed,
		p.VacationLeaveTotal,
		p.VacationLeaveUsed,
		p.MaternityLeaveTotal,
		p.MaternityLeaveUsed,
	}
}

func (c LeaveCounters) array() [6]int {
	return [6]int{c.SickTotal, c.SickUsed, c.VacationTotal, c.VacationUsed, c.MaternityTotal, c.MaternityUsed}
}

func countersFromArray(a [6]int) LeaveCounters {
	return LeaveCounters{
		SickTotal:      a[0],
		SickUsed:       a[1],
		VacationTotal:  a[2],
		VacationUsed:   a[3],
		MaternityTotal: a[4],
		MaternityUsed:  a[5],
	}
}

// appendTooLong counts characters, not bytes, as VARCHAR(n) does.
func appendTooLong(msgs []string, label, v string, limit int) []string {
	if utf8.RuneCountInString(v) > limit {
		return append(msgs, fmt.Sprintf("%s must be at most %d characters.", label, limit))
	}
	return msgs
}

func optionalRole(v payload.String) *string {
	if v.Blank() {
		return nil
	}
	role := v.Trimmed()
	return &role
}
