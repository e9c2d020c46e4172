// Package notify carries due-date reminders from the server to connected
// clients over a WebSocket channel. The channel is subscribe-only: clients
// connect, receive events and never acknowledge.
package notify

import (
	"fmt"
	"strings"
	"time"

	model "taskboard.com/taskboard/internal/models"
)

const (
	EventUpcoming = "task:upcoming"
	EventOverdue  = "task:overdue"
)

// Event is the wire envelope for a reminder push. Tasks is non-empty by
// contract; empty categories are never published.
type Event struct {
	Type  string       `json:"type"`
	Tasks []model.Task `json:"tasks"`
}

// AlertText renders a one-line summary of an event for a transient alert:
// count, comma-joined titles and the due date of the first task. The empty
// case is defensive only and should not occur.
func AlertText(e Event) string {
	if len(e.Tasks) == 0 {
		return "task reminder"
	}

	titles := make([]string, len(e.Tasks))
	for i, t := range e.Tasks {
		titles[i] = t.Title
	}

	label := "due soon"
	if e.Type == EventOverdue {
		label = "overdue"
	}

	noun := "tasks"
	if len(e.Tasks) == 1 {
		noun = "task"
	}

	return fmt.Sprintf("%d %s %s: %s (first due %s)",
		len(e.Tasks), noun, label,
		strings.Join(titles, ", "),
		e.Tasks[0].DueDate.Format(time.DateOnly))
}
