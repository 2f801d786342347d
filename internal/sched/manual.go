package sched

import (
	"slices"
	"sync"
	"time"
)

// Manual is a Scheduler driven by explicit calls to Advance. Callbacks run
// synchronously on the goroutine calling Advance.
type Manual struct {
	now   time.Duration
	tasks []*manualTask
	mu    sync.Mutex
}

type manualTask struct {
	owner     *Manual
	fn        func()
	period    time.Duration
	next      time.Duration
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	t.cancelled = true
}

// Every registers fn to run each time the manual clock crosses a multiple of
// period measured from now.
func (m *Manual) Every(period time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTask{
		owner:  m,
		fn:     fn,
		period: period,
		next:   m.now + period,
	}

	m.tasks = append(m.tasks, t)

	return t
}

// Advance moves the clock forward by d, firing due callbacks in time order.
// Tasks registered or cancelled by a callback take effect immediately.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()

		m.tasks = slices.DeleteFunc(m.tasks, func(t *manualTask) bool {
			return t.cancelled
		})

		var due *manualTask

		for _, t := range m.tasks {
			if t.next <= target && (due == nil || t.next < due.next) {
				due = t
			}
		}

		if due == nil {
			m.now = target
			m.mu.Unlock()

			return
		}

		m.now = due.next
		due.next += due.period
		fn := due.fn

		m.mu.Unlock()

		fn()
	}
}

// Active returns the number of tasks that have not been cancelled.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int

	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}

	return n
}
