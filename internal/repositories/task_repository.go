package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows List by assignee and/or building. Empty fields are
// ignored; both set means both must match.
type TaskFilter struct {
	UserID     string
	BuildingID string
}

func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.BuildingID != "" {
		query = query.Where("building_id = ?", filter.BuildingID)
	}

	var tasks []model.Task
	err := query.Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, title, userID, buildingID string, status model.TaskStatus, dueDate time.Time) (*model.Task, error) {
	now := time.Now().UTC()
	task := &model.Task{
		ID:         uuid.NewString(),
		Title:      title,
		UserID:     userID,
		BuildingID: buildingID,
		Status:     status,
		DueDate:    dueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateStatus sets the task's status and refreshes updated_at. The new
// updated_at is strictly greater than the previous one even when the clock
// has not visibly advanced between two updates.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error) {
	task, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updatedAt := time.Now().UTC()
	if !updatedAt.After(task.UpdatedAt) {
		updatedAt = task.UpdatedAt.Add(time.Microsecond)
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrTaskNotFound
	}

	task.Status = status
	task.UpdatedAt = updatedAt
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
