// Package loop runs the session's cooperative event loop: a single goroutine that
// executes posted work in order, plus recurring tasks scheduled onto it.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrStopped is returned by Run after Stop.
var ErrStopped = errors.New("dispatcher stopped")

// Dispatcher serializes work onto one goroutine. Everything posted to it may touch
// session state without locking.
type Dispatcher struct {
	queue  chan func()
	logger *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewDispatcher creates a Dispatcher with room for queueSize pending tasks.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Dispatcher that runs nothing until Run is called.
func NewDispatcher(queueSize int, logger *zap.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		queue:  make(chan func(), queueSize),
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Post enqueues fn. It blocks while the queue is full and returns false once the
// dispatcher has stopped.
func (d *Dispatcher) Post(fn func()) bool {
	select {
	case <-d.stopCh:
		return false
	default:
	}
	select {
	case d.queue <- fn:
		return true
	case <-d.stopCh:
		return false
	}
}

// Run executes posted tasks until ctx is done or Stop is called.
//
// Postcondition: Returns ctx.Err() or ErrStopped; tasks still queued are dropped.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.stopCh:
			return ErrStopped
		case fn := <-d.queue:
			d.execute(fn)
		}
	}
}

func (d *Dispatcher) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatcher task panicked", zap.Any("panic", r), zap.Stack("trace"))
		}
	}()
	fn()
}

// Stop ends Run. Safe to call multiple times.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}

// Cycle schedules fn to run on the loop every period until the returned Task is
// cancelled.
//
// Precondition: period > 0; fn must not be nil.
// Postcondition: fn never runs after Cancel returns when Cancel is called on the loop.
func (d *Dispatcher) Cycle(period time.Duration, fn func()) Task {
	t := &cycleTask{}
	t.arm(period, func() {
		d.Post(func() {
			if t.Cancelled() {
				return
			}
			fn()
		})
	})
	return t
}
