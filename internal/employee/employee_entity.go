package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderFemale      = "female"
	GenderMale        = "male"
	GenderNonBinary   = "non-binary"
	GenderUnspecified = "unspecified"
)

const (
	DefaultSickLeaveTotal     = 10
	DefaultVacationLeaveTotal = 15
)

type Employee struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName           string    `gorm:"size:120;not null"`
	LastName            string    `gorm:"size:120;not null"`
	Email               string    `gorm:"size:255;not null"`
	Role                *string   `gorm:"size:120"`
	Gender              string    `gorm:"size:20;not null"`
	PasswordHash        string    `gorm:"size:255;not null"`
	DepartmentID        uuid.UUID `gorm:"type:uuid;not null"`
	HireDate            time.Time `gorm:"type:date;not null"`
	SickLeaveTotal      int       `gorm:"not null"`
	SickLeaveUsed       int       `gorm:"not null"`
	VacationLeaveTotal  int       `gorm:"not null"`
	VacationLeaveUsed   int       `gorm:"not null"`
	MaternityLeaveTotal int       `gorm:"not null"`
	MaternityLeaveUsed  int       `gorm:"not null"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`

	Department *DepartmentRef `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

// DepartmentRef is the read side of departments embedded in employee payloads.
type DepartmentRef struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (DepartmentRef) TableName() string {
	return "departments"
}

func (e Employee) LeaveCounters() LeaveCounters {
	return LeaveCounters{
		SickTotal:      e.SickLeaveTotal,
		SickUsed:       e.SickLeaveUsed,
		VacationTotal:  e.VacationLeaveTotal,
		VacationUsed:   e.VacationLeaveUsed,
		MaternityTotal: e.MaternityLeaveTotal,
		MaternityUsed:  e.MaternityLeaveUsed,
	}
}

func (e Employee) LeaveBalances() LeaveBalances {
	return ComputeLeaveBalances(e.LeaveCounters(), e.Gender)
}
