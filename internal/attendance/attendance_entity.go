package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one check-in/check-out session. A nil CheckOut marks
// the session as open.
type AttendanceRecord struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	CheckIn    time.Time  `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut   *time.Time `gorm:"column:check_out;type:timestamptz"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (r AttendanceRecord) IsOpen() bool {
	return r.CheckOut == nil
}
