// Package task runs simulated asynchronous work after a fixed delay.
//
// The simulated actions never fail today, but callers go through a
// cancellable handle so real backend calls can replace them later.
package task

import (
	"context"
	"sync"
	"time"
)

// Func is the work performed once the delay has elapsed.
type Func func(ctx context.Context) error

// Task is a handle to one delayed unit of work.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Start schedules fn to run after delay. Cancelling ctx or calling Cancel
// before the delay elapses skips fn and completes with the context error.
func Start(ctx context.Context, delay time.Duration, fn Func) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			t.setErr(ctx.Err())
			return
		case <-timer.C:
		}

		t.setErr(fn(ctx))
	}()

	return t
}

// Run starts fn after delay and waits for it.
func Run(ctx context.Context, delay time.Duration, fn Func) error {
	return Start(ctx, delay, fn).Wait(ctx)
}

// Cancel stops the task if it has not run yet.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed once the task has finished or was cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the task result; nil while still running.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Task) setErr(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
}
