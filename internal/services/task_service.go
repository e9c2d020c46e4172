package services

import (
	"context"
	"strings"
	"time"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

type TaskService struct {
	tasks      *repository.TaskRepository
	references *repository.ReferenceRepository
}

func NewTaskService(tasks *repository.TaskRepository, references *repository.ReferenceRepository) *TaskService {
	return &TaskService{
		tasks:      tasks,
		references: references,
	}
}

// CreateTask validates the draft against the reference sets and persists it.
// An omitted status defaults to To Do.
func (s *TaskService) CreateTask(ctx context.Context, title, userID, buildingID string, status model.TaskStatus, dueDate time.Time) (*model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if dueDate.IsZero() {
		return nil, apperrors.ErrDueDateRequired
	}
	if status == "" {
		status = model.StatusToDo
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	ok, err := s.references.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrUnknownUser
	}

	ok, err = s.references.BuildingExists(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrUnknownBuilding
	}

	return s.tasks.Create(ctx, title, userID, buildingID, status, dueDate)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	return s.tasks.List(ctx, filter)
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.tasks.UpdateStatus(ctx, id, status)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.references.ListUsers(ctx)
}

func (s *TaskService) ListBuildings(ctx context.Context) ([]model.Building, error) {
	return s.references.ListBuildings(ctx)
}
