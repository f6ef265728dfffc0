package attendance

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	Timestamp  *string `json:"timestamp"`
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Timestamp  *string `json:"timestamp"`
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	CheckIn    string  `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
