package auth

import "go-hrms/internal/employee"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User employee.EmployeeResponse `json:"user"`
}
