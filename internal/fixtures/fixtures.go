// Package fixtures provides the demo data set: four users, four buildings
// and eight maintenance tasks spread across them. The in-memory gateway and
// the server seed both draw from here so the two backends present the same
// world.
package fixtures

import (
	"time"

	model "taskboard.com/taskboard/internal/models"
)

func Users() []model.User {
	return []model.User{
		{ID: "user-1", Name: "John Doe"},
		{ID: "user-2", Name: "Jane Smith"},
		{ID: "user-3", Name: "Bob Johnson"},
		{ID: "user-4", Name: "Alice Williams"},
	}
}

func Buildings() []model.Building {
	return []model.Building{
		{ID: "building-1", Name: "Central Plaza"},
		{ID: "building-2", Name: "Riverfront Tower"},
		{ID: "building-3", Name: "Parkview Residences"},
		{ID: "building-4", Name: "Sunset Apartments"},
	}
}

// Tasks returns the demo tasks with due dates relative to now, so the set
// always contains a mix of upcoming, far-out and overdue work.
func Tasks(now time.Time) []model.Task {
	day := 24 * time.Hour
	mk := func(id, title, userID, buildingID string, s model.TaskStatus, due, created, updated time.Time) model.Task {
		return model.Task{
			ID: id, Title: title, UserID: userID, BuildingID: buildingID,
			Status: s, DueDate: due, CreatedAt: created, UpdatedAt: updated,
		}
	}
	return []model.Task{
		mk("task-1", "Inspect fire extinguishers", "user-1", "building-1",
			model.StatusToDo, now.Add(5*day), now.Add(-3*day), now.Add(-3*day)),
		mk("task-2", "Fix leaking pipe in apartment 304", "user-2", "building-1",
			model.StatusInProgress, now.Add(1*day), now.Add(-2*day), now.Add(-1*day)),
		mk("task-3", "Replace lobby light fixtures", "user-3", "building-2",
			model.StatusComplete, now.Add(-1*day), now.Add(-5*day), now),
		mk("task-4", "Check HVAC system maintenance", "user-1", "building-2",
			model.StatusToDo, now.Add(10*day), now.Add(-1*day), now.Add(-1*day)),
		mk("task-5", "Clean swimming pool area", "user-4", "building-3",
			model.StatusInProgress, now, now.Add(-3*day), now.Add(-1*day)),
		mk("task-6", "Repaint parking lot lines", "user-3", "building-3",
			model.StatusToDo, now.Add(7*day), now.Add(-2*day), now.Add(-2*day)),
		mk("task-7", "Replace broken window in unit 205", "user-2", "building-4",
			model.StatusComplete, now.Add(-2*day), now.Add(-7*day), now.Add(-3*day)),
		mk("task-8", "Update security camera system", "user-1", "building-4",
			model.StatusInProgress, now.Add(3*day), now.Add(-4*day), now.Add(-1*day)),
	}
}
