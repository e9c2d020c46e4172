package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard.com/taskboard/internal/gateway"
	model "taskboard.com/taskboard/internal/models"
)

// flakyGateway wraps the in-memory backend and fails selected operations on
// demand, so the reconciler's failure paths can be driven deterministically.
type flakyGateway struct {
	*gateway.Memory
	failUsers  bool
	failUpdate bool
}

var errInjected = errors.New("injected network failure")

func (f *flakyGateway) ListUsers(ctx context.Context) ([]model.User, error) {
	if f.failUsers {
		return nil, &gateway.TransportError{Op: "GET /users", Err: errInjected}
	}
	return f.Memory.ListUsers(ctx)
}

func (f *flakyGateway) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error) {
	if f.failUpdate {
		return model.Task{}, &gateway.TransportError{Op: "PATCH /tasks", Err: errInjected}
	}
	return f.Memory.UpdateTaskStatus(ctx, id, status)
}

// blockingGateway parks UpdateTaskStatus until released, exposing the
// in-flight window.
type blockingGateway struct {
	*gateway.Memory
	entered chan struct{}
	release chan struct{}
}

func (b *blockingGateway) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error) {
	close(b.entered)
	<-b.release
	return b.Memory.UpdateTaskStatus(ctx, id, status)
}

func seededCache(t *testing.T) (*Cache, *gateway.Memory) {
	t.Helper()
	store := gateway.NewSeededMemory(time.Now().UTC())
	c := New(store)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c, store
}

func TestCache_Load(t *testing.T) {
	c, _ := seededCache(t)

	if got := len(c.AllTasks()); got != 8 {
		t.Errorf("AllTasks() has %d tasks, want 8", got)
	}
	if got := len(c.VisibleTasks()); got != 8 {
		t.Errorf("VisibleTasks() has %d tasks, want 8 before any filter", got)
	}
	if got := len(c.Users()); got != 4 {
		t.Errorf("Users() has %d entries, want 4", got)
	}
	if got := len(c.Buildings()); got != 4 {
		t.Errorf("Buildings() has %d entries, want 4", got)
	}
}

func TestCache_Load_AllOrNothing(t *testing.T) {
	gw := &flakyGateway{Memory: gateway.NewSeededMemory(time.Now().UTC()), failUsers: true}
	c := New(gw)

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected Load to fail when one fetch fails")
	}
	if len(c.AllTasks()) != 0 || len(c.Users()) != 0 || len(c.Buildings()) != 0 {
		t.Error("failed Load must not commit any partial state")
	}

	// A failing reload must leave a previously committed state untouched.
	gw.failUsers = false
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	gw.failUsers = true
	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected reload to fail")
	}
	if len(c.AllTasks()) != 8 || len(c.Users()) != 4 {
		t.Error("failed reload must not disturb the committed state")
	}
}

func TestCache_Filters(t *testing.T) {
	c, _ := seededCache(t)

	c.SetUserFilter("user-1")
	first := c.VisibleTasks()
	if len(first) != 3 {
		t.Fatalf("user-1 filter shows %d tasks, want 3", len(first))
	}

	// Idempotent: applying the same filter again changes nothing.
	c.SetUserFilter("user-1")
	second := c.VisibleTasks()
	if len(second) != len(first) {
		t.Errorf("re-applying the filter changed the visible count: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("re-applying the filter reordered tasks at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}

	// Both selectors apply as AND.
	c.SetBuildingFilter("building-1")
	both := c.VisibleTasks()
	if len(both) != 1 || both[0].ID != "task-1" {
		t.Errorf("user-1 AND building-1 should show only task-1, got %v", both)
	}

	c.ClearFilters()
	if got := len(c.VisibleTasks()); got != len(c.AllTasks()) {
		t.Errorf("ClearFilters shows %d tasks, want all %d", got, len(c.AllTasks()))
	}
}

func TestCache_ClearAfterAnyFilterCombination(t *testing.T) {
	c, _ := seededCache(t)

	c.SetBuildingFilter("building-3")
	c.SetUserFilter("user-4")
	c.SetUserFilter("")
	c.SetBuildingFilter("building-2")
	c.ClearFilters()

	if got := len(c.VisibleTasks()); got != 8 {
		t.Errorf("after clearing, %d tasks visible, want 8", got)
	}
}

func TestCache_CreateTask_RefetchesList(t *testing.T) {
	c, _ := seededCache(t)

	task, err := c.CreateTask(context.Background(), gateway.Draft{
		Title:      "Flush sprinkler system",
		UserID:     "user-2",
		BuildingID: "building-1",
		DueDate:    time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	found := false
	for _, got := range c.AllTasks() {
		if got.ID == task.ID {
			found = true
			if got.CreatedAt.IsZero() {
				t.Error("re-fetched task is missing server-assigned created_at")
			}
		}
	}
	if !found {
		t.Error("created task missing from the re-fetched list")
	}
}

func TestCache_CreateTask_ReappliesFilters(t *testing.T) {
	c, _ := seededCache(t)
	c.SetUserFilter("user-2")

	_, err := c.CreateTask(context.Background(), gateway.Draft{
		Title:      "Re-key storage rooms",
		UserID:     "user-3",
		BuildingID: "building-2",
		DueDate:    time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	for _, task := range c.VisibleTasks() {
		if task.UserID != "user-2" {
			t.Errorf("task %s leaked through the user-2 filter", task.ID)
		}
	}
}

func TestCache_UpdateStatus_MergesAuthoritativeTask(t *testing.T) {
	c, _ := seededCache(t)

	updated, err := c.UpdateStatus(context.Background(), "task-2", model.StatusComplete)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != model.StatusComplete {
		t.Errorf("returned status = %s, want Complete", updated.Status)
	}

	for _, task := range c.AllTasks() {
		if task.ID == "task-2" {
			if task.Status != model.StatusComplete {
				t.Errorf("cached status = %s, want Complete", task.Status)
			}
			if !task.UpdatedAt.Equal(updated.UpdatedAt) {
				t.Error("cache holds a different updated_at than the server's authoritative task")
			}
		}
	}
	if c.IsUpdating("task-2") {
		t.Error("task still marked updating after acknowledgment")
	}
}

func TestCache_UpdateStatus_RevertsOnFailure(t *testing.T) {
	gw := &flakyGateway{Memory: gateway.NewSeededMemory(time.Now().UTC()), failUpdate: true}
	c := New(gw)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// task-2 starts In Progress in the fixture set.
	_, err := c.UpdateStatus(context.Background(), "task-2", model.StatusComplete)
	if err == nil {
		t.Fatal("expected the update to fail")
	}
	var tErr *gateway.TransportError
	if !errors.As(err, &tErr) {
		t.Errorf("got %v, want TransportError", err)
	}

	for _, task := range c.AllTasks() {
		if task.ID == "task-2" && task.Status != model.StatusInProgress {
			t.Errorf("status = %s, want reverted In Progress", task.Status)
		}
	}
	if c.IsUpdating("task-2") {
		t.Error("task still marked updating after the revert")
	}
}

func TestCache_UpdateStatus_OptimisticWindow(t *testing.T) {
	gw := &blockingGateway{
		Memory:  gateway.NewSeededMemory(time.Now().UTC()),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := New(gw)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.UpdateStatus(context.Background(), "task-1", model.StatusInProgress)
		done <- err
	}()

	<-gw.entered

	// The optimistic write is visible before the request resolves.
	for _, task := range c.VisibleTasks() {
		if task.ID == "task-1" && task.Status != model.StatusInProgress {
			t.Errorf("mid-flight status = %s, want optimistic In Progress", task.Status)
		}
	}
	if !c.IsUpdating("task-1") {
		t.Error("task not marked updating mid-flight")
	}

	// A second update for the same task is rejected while one is pending.
	if _, err := c.UpdateStatus(context.Background(), "task-1", model.StatusComplete); !errors.Is(err, ErrUpdateInFlight) {
		t.Errorf("concurrent update: got %v, want ErrUpdateInFlight", err)
	}

	close(gw.release)
	if err := <-done; err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if c.IsUpdating("task-1") {
		t.Error("task still marked updating after acknowledgment")
	}
}

func TestCache_UpdateStatus_UnknownTask(t *testing.T) {
	c, _ := seededCache(t)

	_, err := c.UpdateStatus(context.Background(), "task-999", model.StatusComplete)
	var nfErr *gateway.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestCache_NameJoins(t *testing.T) {
	c, _ := seededCache(t)

	if got := c.UserName("user-2"); got != "Jane Smith" {
		t.Errorf("UserName(user-2) = %q, want Jane Smith", got)
	}
	if got := c.BuildingName("building-1"); got != "Central Plaza" {
		t.Errorf("BuildingName(building-1) = %q, want Central Plaza", got)
	}
	if got := c.UserName("user-99"); got != "user-99" {
		t.Errorf("unknown user should fall back to the id, got %q", got)
	}
}
