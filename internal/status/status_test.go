package status

import (
	"testing"
	"time"

	model "taskboard.com/taskboard/internal/models"
)

func TestEffective_CompleteAlwaysWins(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	dueDates := []time.Time{
		now.Add(-7 * 24 * time.Hour), // last week
		now.Add(-time.Minute),
		now,
		now.Add(24 * time.Hour),
	}

	for _, due := range dueDates {
		if got := Effective(model.StatusComplete, due, now); got != Complete {
			t.Errorf("Effective(Complete, due=%v) = %v, want Complete", due, got)
		}
	}
}

func TestEffective_PastDueIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	for _, s := range []model.TaskStatus{model.StatusToDo, model.StatusInProgress} {
		if got := Effective(s, yesterday, now); got != Overdue {
			t.Errorf("Effective(%s, yesterday) = %v, want Overdue", s, got)
		}
	}
}

func TestEffective_DueExactlyNowIsNotOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := Effective(model.StatusToDo, now, now); got != ToDo {
		t.Errorf("Effective(To Do, due==now) = %v, want To Do", got)
	}
	if got := Effective(model.StatusInProgress, now, now); got != InProgress {
		t.Errorf("Effective(In Progress, due==now) = %v, want In Progress", got)
	}
}

func TestEffective_MirrorsStatusBeforeDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)

	if got := Effective(model.StatusToDo, tomorrow, now); got != ToDo {
		t.Errorf("Effective(To Do, tomorrow) = %v, want To Do", got)
	}
	if got := Effective(model.StatusInProgress, tomorrow, now); got != InProgress {
		t.Errorf("Effective(In Progress, tomorrow) = %v, want In Progress", got)
	}
}

func TestPartition(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	horizon := DefaultReminderHorizon

	tasks := []model.Task{
		{ID: "t1", Status: model.StatusToDo, DueDate: now.Add(24 * time.Hour)},        // upcoming
		{ID: "t2", Status: model.StatusInProgress, DueDate: now.Add(-time.Hour)},      // overdue
		{ID: "t3", Status: model.StatusComplete, DueDate: now.Add(-24 * time.Hour)},   // complete, excluded
		{ID: "t4", Status: model.StatusToDo, DueDate: now.Add(10 * 24 * time.Hour)},   // beyond horizon
		{ID: "t5", Status: model.StatusInProgress, DueDate: now},                      // due exactly now, excluded
		{ID: "t6", Status: model.StatusToDo, DueDate: now.Add(horizon)},               // on the horizon edge
		{ID: "t7", Status: model.StatusComplete, DueDate: now.Add(time.Hour)},         // complete, excluded
		{ID: "t8", Status: model.StatusToDo, DueDate: now.Add(-7 * 24 * time.Hour)},   // overdue
	}

	upcoming, overdue := Partition(tasks, now, horizon)

	wantUpcoming := []string{"t1", "t6"}
	wantOverdue := []string{"t2", "t8"}

	if len(upcoming) != len(wantUpcoming) {
		t.Fatalf("got %d upcoming tasks, want %d", len(upcoming), len(wantUpcoming))
	}
	for i, id := range wantUpcoming {
		if upcoming[i].ID != id {
			t.Errorf("upcoming[%d] = %s, want %s", i, upcoming[i].ID, id)
		}
	}

	if len(overdue) != len(wantOverdue) {
		t.Fatalf("got %d overdue tasks, want %d", len(overdue), len(wantOverdue))
	}
	for i, id := range wantOverdue {
		if overdue[i].ID != id {
			t.Errorf("overdue[%d] = %s, want %s", i, overdue[i].ID, id)
		}
	}
}

func TestPartition_EmptyInput(t *testing.T) {
	now := time.Now().UTC()

	upcoming, overdue := Partition(nil, now, DefaultReminderHorizon)
	if len(upcoming) != 0 || len(overdue) != 0 {
		t.Errorf("Partition(nil) = %d upcoming, %d overdue, want none", len(upcoming), len(overdue))
	}
}
