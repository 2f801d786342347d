// Package sched runs cancellable recurring tasks
package sched

import (
	"sync"
	"time"
)

// Task is a recurring callback that can be cancelled. Cancel is idempotent.
type Task interface {
	Cancel()
}

// Scheduler starts recurring tasks.
type Scheduler interface {
	Every(period time.Duration, fn func()) Task
}

// Ticker schedules tasks on real time using one goroutine per task.
type Ticker struct{}

type tickerTask struct {
	quit chan struct{}
	once sync.Once
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() {
		close(t.quit)
	})
}

// Every calls fn every period until the task is cancelled.
func (Ticker) Every(period time.Duration, fn func()) Task {
	task := &tickerTask{
		quit: make(chan struct{}),
	}

	ticker := time.NewTicker(period)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-task.quit:
				return
			case <-ticker.C:
				select {
				case <-task.quit:
					return
				default:
				}

				fn()
			}
		}
	}()

	return task
}
