// Package status derives a task's display state from its stored status and
// due date. The functions here are pure: callers pass the reference time
// explicitly so the rules stay testable without clock mocking.
package status

import (
	"time"

	model "taskboard.com/taskboard/internal/models"
)

type DisplayState string

const (
	ToDo       DisplayState = "To Do"
	InProgress DisplayState = "In Progress"
	Complete   DisplayState = "Complete"
	Overdue    DisplayState = "Overdue"
)

// DefaultReminderHorizon is how far ahead a task may be due and still count
// as "due soon". Overridable via REMINDER_HORIZON_HOURS.
const DefaultReminderHorizon = 48 * time.Hour

// Effective computes the display state for a task. Completion suppresses
// overdue marking no matter how late the task was finished. A task due
// exactly now is not overdue; the boundary is strictly after.
func Effective(s model.TaskStatus, dueDate, now time.Time) DisplayState {
	if s == model.StatusComplete {
		return Complete
	}
	if now.After(dueDate) {
		return Overdue
	}
	if s == model.StatusInProgress {
		return InProgress
	}
	return ToDo
}

// Partition splits tasks into the two reminder categories. Upcoming tasks
// are not complete and due within (now, now+horizon]; overdue tasks are not
// complete and past due. Input order is preserved within each category.
func Partition(tasks []model.Task, now time.Time, horizon time.Duration) (upcoming, overdue []model.Task) {
	for _, t := range tasks {
		if t.Status == model.StatusComplete {
			continue
		}
		switch {
		case now.After(t.DueDate):
			overdue = append(overdue, t)
		case t.DueDate.After(now) && t.DueDate.Sub(now) <= horizon:
			upcoming = append(upcoming, t)
		}
	}
	return upcoming, overdue
}
