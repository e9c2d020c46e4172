// Package cache holds the client's working set of tasks and reconciles it
// with the task service: atomic initial load, user/building filtering, and
// optimistic status updates with a compensating revert on failure.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"taskboard.com/taskboard/internal/gateway"
	model "taskboard.com/taskboard/internal/models"
)

// ErrUpdateInFlight rejects a second status update for a task whose first
// update has not been acknowledged yet. Callers should disable the control
// while an update is pending.
var ErrUpdateInFlight = errors.New("a status update is already in flight for this task")

// Cache is the client-side working set. The service owns the source of
// truth; the cache holds a copy and keeps it consistent through the defined
// transitions. Safe for concurrent use.
type Cache struct {
	gw gateway.Gateway

	mu             sync.Mutex
	allTasks       []model.Task
	visibleTasks   []model.Task
	users          []model.User
	buildings      []model.Building
	userFilter     string
	buildingFilter string
	pending        map[string]model.TaskStatus // task id -> status before the in-flight update
}

func New(gw gateway.Gateway) *Cache {
	return &Cache{
		gw:      gw,
		pending: make(map[string]model.TaskStatus),
	}
}

// Load fetches tasks, users and buildings concurrently and commits all
// three atomically. If any fetch fails nothing is committed, so the cache
// never ends up half-updated.
func (c *Cache) Load(ctx context.Context) error {
	var (
		tasks     []model.Task
		users     []model.User
		buildings []model.Building
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = c.gw.ListTasks(gctx, gateway.Filter{})
		return err
	})
	g.Go(func() error {
		var err error
		users, err = c.gw.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		buildings, err = c.gw.ListBuildings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.allTasks = tasks
	c.users = users
	c.buildings = buildings
	c.applyFiltersLocked()
	return nil
}

// SetUserFilter narrows the visible set to one assignee; empty clears just
// this selector.
func (c *Cache) SetUserFilter(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.userFilter = userID
	c.applyFiltersLocked()
}

// SetBuildingFilter narrows the visible set to one building; empty clears
// just this selector.
func (c *Cache) SetBuildingFilter(buildingID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buildingFilter = buildingID
	c.applyFiltersLocked()
}

// ClearFilters restores full visibility.
func (c *Cache) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.userFilter = ""
	c.buildingFilter = ""
	c.applyFiltersLocked()
}

// CreateTask creates the task remotely and then re-fetches the full list
// rather than appending locally, so server-assigned fields (id, timestamps)
// are never guessed at. Current filters are re-applied. When the re-fetch
// fails the task still exists remotely; the returned error says so and the
// local set is left as it was.
func (c *Cache) CreateTask(ctx context.Context, draft gateway.Draft) (model.Task, error) {
	task, err := c.gw.CreateTask(ctx, draft)
	if err != nil {
		return model.Task{}, err
	}

	tasks, err := c.gw.ListTasks(ctx, gateway.Filter{})
	if err != nil {
		return task, fmt.Errorf("task created but list refresh failed: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.allTasks = tasks
	c.applyFiltersLocked()
	return task, nil
}

// UpdateStatus performs the optimistic update transition: the local status
// flips before the request is issued; on success the server's authoritative
// task replaces the optimistic copy, on failure the prior status is
// restored and the error propagates. A task with an update in flight
// rejects further updates until the first one settles.
func (c *Cache) UpdateStatus(ctx context.Context, id string, newStatus model.TaskStatus) (model.Task, error) {
	c.mu.Lock()
	if _, inFlight := c.pending[id]; inFlight {
		c.mu.Unlock()
		return model.Task{}, ErrUpdateInFlight
	}

	prior, ok := c.statusLocked(id)
	if !ok {
		c.mu.Unlock()
		return model.Task{}, &gateway.NotFoundError{ID: id}
	}

	c.pending[id] = prior
	c.setStatusLocked(id, newStatus)
	c.mu.Unlock()

	updated, err := c.gw.UpdateTaskStatus(ctx, id, newStatus)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)

	if err != nil {
		c.setStatusLocked(id, prior)
		return model.Task{}, err
	}

	c.mergeLocked(updated)
	return updated, nil
}

// DeleteTask removes the task remotely and drops it from the local set.
func (c *Cache) DeleteTask(ctx context.Context, id string) error {
	if err := c.gw.DeleteTask(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.allTasks {
		if c.allTasks[i].ID == id {
			c.allTasks = append(c.allTasks[:i], c.allTasks[i+1:]...)
			break
		}
	}
	c.applyFiltersLocked()
	return nil
}

// IsUpdating reports whether a status update for the task is in flight.
func (c *Cache) IsUpdating(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// VisibleTasks returns a copy of the filtered working set.
func (c *Cache) VisibleTasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Task, len(c.visibleTasks))
	copy(out, c.visibleTasks)
	return out
}

// AllTasks returns a copy of the unfiltered working set.
func (c *Cache) AllTasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Task, len(c.allTasks))
	copy(out, c.allTasks)
	return out
}

// UserName joins a user id against the reference set; falls back to the id
// when unknown.
func (c *Cache) UserName(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, u := range c.users {
		if u.ID == id {
			return u.Name
		}
	}
	return id
}

// BuildingName joins a building id against the reference set; falls back to
// the id when unknown.
func (c *Cache) BuildingName(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.buildings {
		if b.ID == id {
			return b.Name
		}
	}
	return id
}

func (c *Cache) Users() []model.User {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.User, len(c.users))
	copy(out, c.users)
	return out
}

func (c *Cache) Buildings() []model.Building {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Building, len(c.buildings))
	copy(out, c.buildings)
	return out
}

// applyFiltersLocked recomputes visibleTasks from allTasks. Both selectors
// apply as AND when set.
func (c *Cache) applyFiltersLocked() {
	visible := make([]model.Task, 0, len(c.allTasks))
	for _, t := range c.allTasks {
		if c.userFilter != "" && t.UserID != c.userFilter {
			continue
		}
		if c.buildingFilter != "" && t.BuildingID != c.buildingFilter {
			continue
		}
		visible = append(visible, t)
	}
	c.visibleTasks = visible
}

func (c *Cache) statusLocked(id string) (model.TaskStatus, bool) {
	for i := range c.allTasks {
		if c.allTasks[i].ID == id {
			return c.allTasks[i].Status, true
		}
	}
	return "", false
}

func (c *Cache) setStatusLocked(id string, status model.TaskStatus) {
	for i := range c.allTasks {
		if c.allTasks[i].ID == id {
			c.allTasks[i].Status = status
			break
		}
	}
	c.applyFiltersLocked()
}

func (c *Cache) mergeLocked(task model.Task) {
	for i := range c.allTasks {
		if c.allTasks[i].ID == task.ID {
			c.allTasks[i] = task
			break
		}
	}
	c.applyFiltersLocked()
}
