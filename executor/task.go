package executor

import "context"

type result[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func (r *result[T]) resolve(v T, err error) {
	r.val = v
	r.err = err
	close(r.done)
}

// Task is an awaitable result of a job.
type Task[T any] struct {
	r      *result[T]
	mapErr func(error) error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{r: &result[T]{done: make(chan struct{})}}
}

// Ready returns an already-resolved task.
func Ready[T any](v T) *Task[T] {
	t := newTask[T]()
	t.r.resolve(v, nil)
	return t
}

// Failed returns an already-resolved task carrying err.
func Failed[T any](err error) *Task[T] {
	t := newTask[T]()
	var zero T
	t.r.resolve(zero, err)
	return t
}

// Done is closed once the task has a result.
func (t *Task[T]) Done() <-chan struct{} {
	return t.r.done
}

// Wait blocks until the task resolves or ctx is done. Giving up on a task
// does not cancel the job; it still runs to completion.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.r.done:
		return t.result()
	default:
	}

	select {
	case <-t.r.done:
		return t.result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (t *Task[T]) result() (T, error) {
	if t.r.err != nil && t.mapErr != nil {
		return t.r.val, t.mapErr(t.r.err)
	}
	return t.r.val, t.r.err
}

// MapErr returns a view of the task whose failures are passed through fn.
// Cancellation of Wait's own context is not mapped.
func (t *Task[T]) MapErr(fn func(error) error) *Task[T] {
	return &Task[T]{r: t.r, mapErr: fn}
}
