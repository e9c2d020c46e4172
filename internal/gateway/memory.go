package gateway

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard.com/taskboard/internal/fixtures"
	model "taskboard.com/taskboard/internal/models"
)

// Memory is an in-memory backend satisfying the same contract as the HTTP
// client. Each instance owns its own state; construct one per process or
// per test so nothing leaks between cases.
type Memory struct {
	mu        sync.Mutex
	tasks     []model.Task
	users     []model.User
	buildings []model.Building
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{}
}

// NewSeededMemory returns a store loaded with the fixture data set, with
// task due dates laid out relative to now.
func NewSeededMemory(now time.Time) *Memory {
	return &Memory{
		tasks:     fixtures.Tasks(now),
		users:     fixtures.Users(),
		buildings: fixtures.Buildings(),
	}
}

func (m *Memory) ListTasks(ctx context.Context, filter Filter) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		if filter.BuildingID != "" && t.BuildingID != filter.BuildingID {
			continue
		}
		out = append(out, t)
	}

	// Newest first, matching the service's list order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) ListUsers(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *Memory) ListBuildings(ctx context.Context) ([]model.Building, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Building, len(m.buildings))
	copy(out, m.buildings)
	return out, nil
}

func (m *Memory) CreateTask(ctx context.Context, draft Draft) (model.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return model.Task{}, &ValidationError{Reason: "title is required"}
	}
	if draft.DueDate.IsZero() {
		return model.Task{}, &ValidationError{Reason: "due_date is required"}
	}

	status := draft.Status
	if status == "" {
		status = model.StatusToDo
	}
	if !model.ValidStatus(status) {
		return model.Task{}, &ValidationError{Reason: "invalid status"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.userExists(draft.UserID) {
		return model.Task{}, &ValidationError{Reason: "unknown user id"}
	}
	if !m.buildingExists(draft.BuildingID) {
		return model.Task{}, &ValidationError{Reason: "unknown building id"}
	}

	now := time.Now().UTC()
	task := model.Task{
		ID:         uuid.NewString(),
		Title:      draft.Title,
		UserID:     draft.UserID,
		BuildingID: draft.BuildingID,
		Status:     status,
		DueDate:    draft.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.tasks = append(m.tasks, task)
	return task, nil
}

func (m *Memory) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error) {
	if !model.ValidStatus(status) {
		return model.Task{}, &ValidationError{Reason: "invalid status"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID != id {
			continue
		}

		updatedAt := time.Now().UTC()
		if !updatedAt.After(m.tasks[i].UpdatedAt) {
			updatedAt = m.tasks[i].UpdatedAt.Add(time.Microsecond)
		}

		m.tasks[i].Status = status
		m.tasks[i].UpdatedAt = updatedAt
		return m.tasks[i], nil
	}

	return model.Task{}, &NotFoundError{ID: id}
}

func (m *Memory) DeleteTask(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

// AddUser and AddBuilding extend the reference sets; tests use these to
// build worlds smaller than the fixture set.
func (m *Memory) AddUser(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
}

func (m *Memory) AddBuilding(b model.Building) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildings = append(m.buildings, b)
}

func (m *Memory) userExists(id string) bool {
	for _, u := range m.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (m *Memory) buildingExists(id string) bool {
	for _, b := range m.buildings {
		if b.ID == id {
			return true
		}
	}
	return false
}
