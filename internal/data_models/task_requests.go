package dto

import (
	"time"

	model "taskboard.com/taskboard/internal/models"
)

// CreateTaskRequest is the POST /tasks body. due_date is the canonical wire
// name for the deadline, RFC3339 encoded.
type CreateTaskRequest struct {
	Title      string           `json:"title"`
	UserID     string           `json:"user_id"`
	BuildingID string           `json:"building_id"`
	Status     model.TaskStatus `json:"status"`
	DueDate    time.Time        `json:"due_date"`
}

// UpdateTaskStatusRequest is the PATCH /tasks/:id/status body.
type UpdateTaskStatusRequest struct {
	Status model.TaskStatus `json:"status"`
}
