package rivulet

import (
	"sync"
	"time"
)

type (
	// Scheduler is the timer capability consumed by Interval. Injecting
	// it keeps time-driven sources deterministic under test
	Scheduler interface {
		// Repeat invokes fn once per period until the returned Cancel
		// fires
		Repeat(period time.Duration, fn func()) Cancel
	}

	timerScheduler struct{}

	// ManualScheduler is a deterministic Scheduler for tests. Repeated
	// tasks only run when Tick is called, in registration order
	ManualScheduler struct {
		mu    sync.Mutex
		tasks []*manualTask
	}

	manualTask struct {
		fn      func()
		stopped bool
	}
)

// DefaultScheduler returns the real-time Scheduler backed by time.Ticker
func DefaultScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Repeat(period time.Duration, fn func()) Cancel {
	t := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		defer t.Stop()
		for {
			select {
			case <-t.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// NewManualScheduler creates an empty ManualScheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Repeat(_ time.Duration, fn func()) Cancel {
	task := &manualTask{fn: fn}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			task.stopped = true
			s.mu.Unlock()
		})
	}
}

// Tick fires every live repeated task exactly once
func (s *ManualScheduler) Tick() {
	s.mu.Lock()
	tasks := make([]*manualTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.stopped {
			tasks = append(tasks, t)
		}
	}
	s.tasks = tasks
	s.mu.Unlock()

	for _, t := range tasks {
		t.fn()
	}
}
