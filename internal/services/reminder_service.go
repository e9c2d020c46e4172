package services

import (
	"context"
	"log"
	"sync"
	"time"

	"taskboard.com/taskboard/internal/notify"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/status"
)

// Publisher fans a reminder event out to subscribers.
type Publisher interface {
	Broadcast(ctx context.Context, e notify.Event)
}

// ReminderService periodically scans the task set and publishes the
// due-soon and overdue categories. Completed tasks never appear in either.
type ReminderService struct {
	tasks     *repository.TaskRepository
	publisher Publisher
	horizon   time.Duration
	interval  time.Duration
	stop      chan struct{}
	wg        sync.WaitGroup
}

func NewReminderService(tasks *repository.TaskRepository, publisher Publisher, horizon, interval time.Duration) *ReminderService {
	return &ReminderService{
		tasks:     tasks,
		publisher: publisher,
		horizon:   horizon,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Start launches the scan loop. One scan runs immediately so freshly
// connected clients are not kept waiting a full interval.
func (s *ReminderService) Start() {
	s.wg.Add(1)
	go s.loop()
}

func (s *ReminderService) loop() {
	defer s.wg.Done()

	s.scanOnce(time.Now().UTC())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.scanOnce(time.Now().UTC())
		case <-s.stop:
			return
		}
	}
}

func (s *ReminderService) scanOnce(now time.Time) {
	ctx := context.Background()

	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		log.Printf("reminder scan: failed to list tasks: %v", err)
		return
	}

	upcoming, overdue := status.Partition(tasks, now, s.horizon)

	if len(upcoming) > 0 {
		s.publisher.Broadcast(ctx, notify.Event{Type: notify.EventUpcoming, Tasks: upcoming})
	}
	if len(overdue) > 0 {
		s.publisher.Broadcast(ctx, notify.Event{Type: notify.EventOverdue, Tasks: overdue})
	}
}

func (s *ReminderService) Stop() {
	close(s.stop)
	s.wg.Wait()
}
