package mockrt

import (
	"context"
)

// Task is the result of an async member. Tasks created by Resolved and
// Failed are already complete.
type Task[R any] struct {
	done  chan struct{}
	value R
	err   error
}

// Resolved returns a completed task holding v.
func Resolved[R any](v R) *Task[R] {
	t := &Task[R]{done: make(chan struct{}), value: v}
	close(t.done)

	return t
}

// Failed returns a completed task holding err.
func Failed[R any](err error) *Task[R] {
	t := &Task[R]{done: make(chan struct{}), err: err}
	close(t.done)

	return t
}

// Go runs fn on its own goroutine and completes the task with its result.
func Go[R any](fn func() (R, error)) *Task[R] {
	t := &Task[R]{done: make(chan struct{})}

	go func() {
		defer close(t.done)

		t.value, t.err = fn()
	}()

	return t
}

// Done is closed once the task completes.
func (t *Task[R]) Done() <-chan struct{} {
	return t.done
}

// Await waits for the task or for ctx, whichever comes first.
func (t *Task[R]) Await(ctx context.Context) (R, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero R

		return zero, ctx.Err()
	}
}

// Await is shorthand for t.Await(context.Background()).
func Await[R any](t *Task[R]) (R, error) {
	return t.Await(context.Background())
}
