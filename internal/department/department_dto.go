package department

import "time"

type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Description *string `json:"description" binding:"omitempty,max=250"`
	Color       *string `json:"color" binding:"omitempty,max=8"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=250"`
	Color       *string `json:"color" binding:"omitempty,max=8"`
	State       *string `json:"state"`
}

func (r UpdateDepartmentRequest) fields() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Color != nil {
		out["color"] = *r.Color
	}
	if r.State != nil {
		out["state"] = *r.State
	}
	return out
}

type DepartmentResponse struct {
	DepartmentID  int        `json:"department_id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	Color         *string    `json:"color"`
	EmployeeCount int64      `json:"employee_count"`
	State         string     `json:"state"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     string     `json:"created_by"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type DepartmentOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}
