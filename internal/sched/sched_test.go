package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualOrdering(t *testing.T) {
	var (
		m     Manual
		calls []string
	)

	m.Every(100*time.Millisecond, func() { calls = append(calls, "tick") })
	m.Every(50*time.Millisecond, func() { calls = append(calls, "sample") })

	m.Advance(200 * time.Millisecond)

	assert.Equal(t, []string{
		"sample", "tick", "sample", "sample", "tick", "sample",
	}, calls)
}

func TestManualCancelFromCallback(t *testing.T) {
	var (
		m    Manual
		n    int
		task Task
	)

	task = m.Every(10*time.Millisecond, func() {
		n++
		if n == 3 {
			task.Cancel()
		}
	})

	m.Advance(time.Second)

	assert.Equal(t, 3, n)
	assert.Equal(t, 0, m.Active())
}

func TestTickerCancel(t *testing.T) {
	var n atomic.Int32

	task := Ticker{}.Every(time.Millisecond, func() { n.Add(1) })

	assert.Eventually(t, func() bool { return n.Load() > 0 }, time.Second, time.Millisecond)

	task.Cancel()
	task.Cancel()

	time.Sleep(10 * time.Millisecond)
	stopped := n.Load()
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, stopped, n.Load())
}
