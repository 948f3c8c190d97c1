package loop

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled recurring job.
type Task interface {
	// Cancel stops future runs. Safe to call multiple times.
	Cancel()
	Cancelled() bool
}

// cycleTask re-arms a time.AfterFunc after each firing until cancelled.
type cycleTask struct {
	mu        sync.Mutex
	timer     *time.Timer
	cancelled bool
}

func (t *cycleTask) arm(period time.Duration, onFire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.timer = time.AfterFunc(period, func() {
		t.mu.Lock()
		stopped := t.cancelled
		t.mu.Unlock()
		if stopped {
			return
		}
		onFire()
		t.arm(period, onFire)
	})
}

func (t *cycleTask) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *cycleTask) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}
