package task

import (
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/steps"
)

type CreateTaskRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description" binding:"required"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=H M L"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Tags        []int      `json:"tags"`
	Users       []string   `json:"users"`
}

type UpdateTaskRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=H M L"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	State       *string    `json:"state"`
}

func (r UpdateTaskRequest) fields() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Priority != nil {
		out["priority"] = *r.Priority
	}
	if r.StartDate != nil {
		out["start_date"] = *r.StartDate
	}
	if r.EndDate != nil {
		out["end_date"] = *r.EndDate
	}
	if r.State != nil {
		out["state"] = *r.State
	}
	return out
}

type UpdateTaskStateRequest struct {
	Completed *bool  `json:"completed" binding:"required"`
	Status    string `json:"status"`
}

type TaskUsersRequest struct {
	Users []string `json:"users"`
}

type TaskTagsRequest struct {
	Tags []int `json:"tags" binding:"required,min=1"`
}

type CreateTagRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Description *string `json:"description" binding:"omitempty,max=100"`
	Color       *string `json:"color" binding:"omitempty,max=7"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=100"`
	Color       *string `json:"color" binding:"omitempty,max=7"`
	State       *string `json:"state"`
}

func (r UpdateTagRequest) fields() map[string]any {
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

type AssigneeResponse struct {
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Avatar   *string `json:"avatar"`
}

type TagResponse struct {
	TagID       int        `json:"tag_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Color       *string    `json:"color"`
	State       string     `json:"state,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type TaskResponse struct {
	TaskID         int                `json:"task_id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Completed      bool               `json:"completed"`
	CompletionDate *time.Time         `json:"completion_date"`
	Priority       string             `json:"priority"`
	Status         string             `json:"status"`
	StartDate      *time.Time         `json:"start_date"`
	EndDate        *time.Time         `json:"end_date"`
	Users          []AssigneeResponse `json:"users"`
	Tags           []TagResponse      `json:"tags"`
	State          string             `json:"state"`
	CreatedAt      time.Time          `json:"created_at"`
	CreatedBy      string             `json:"created_by"`
	UpdatedAt      *time.Time         `json:"updated_at"`
}

// CreateTaskResult carries the task and the outcome of each attach step.
type CreateTaskResult struct {
	Task    TaskResponse `json:"task"`
	Steps   steps.List   `json:"steps"`
	Message string       `json:"message"`
}

func mapTask(t Task) TaskResponse {
	return TaskResponse{
		TaskID:         t.TaskID,
		Name:           t.Name,
		Description:    t.Description,
		Completed:      t.Completed,
		CompletionDate: t.CompletionDate,
		Priority:       t.Priority,
		Status:         t.Status,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		Users:          []AssigneeResponse{},
		Tags:           []TagResponse{},
		State:          t.State,
		CreatedAt:      t.CreatedAt,
		CreatedBy:      t.CreatedBy,
		UpdatedAt:      t.UpdatedAt,
	}
}

func mapTag(t Tag) TagResponse {
	created := t.CreatedAt
	return TagResponse{
		TagID:       t.TagID,
		Name:        t.Name,
		Description: t.Description,
		Color:       t.Color,
		State:       t.State,
		CreatedAt:   &created,
	}
}
