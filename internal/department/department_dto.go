package department

import "go-hrms/internal/shared/payload"

type CreateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=120"`
	Description *string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string        `json:"name" binding:"omitempty,max=120"`
	Description payload.String `json:"description"`
}

type DepartmentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
