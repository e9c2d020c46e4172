// Package gateway abstracts the task service behind a single contract with
// two interchangeable backends: an HTTP client for the real service and an
// in-memory store for tests and demos. Consumers must not care which one is
// active.
package gateway

import (
	"context"
	"time"

	model "taskboard.com/taskboard/internal/models"
)

// Filter narrows ListTasks server-side. Empty fields are ignored; both set
// means both must match.
type Filter struct {
	UserID     string
	BuildingID string
}

// Draft is the input for CreateTask. Status defaults to To Do when empty.
type Draft struct {
	Title      string
	UserID     string
	BuildingID string
	Status     model.TaskStatus
	DueDate    time.Time
}

type Gateway interface {
	ListTasks(ctx context.Context, filter Filter) ([]model.Task, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListBuildings(ctx context.Context) ([]model.Building, error)
	CreateTask(ctx context.Context, draft Draft) (model.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
