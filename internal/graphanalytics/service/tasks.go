package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

// Pool bounds how many graph algorithms run concurrently. Submissions
// past the limit queue on the semaphore until a slot frees up.
type Pool struct {
	sem     chan struct{}
	timeout time.Duration
}

// NewPool creates a pool of the given size with a per-task deadline.
func NewPool(size int, timeout time.Duration) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		sem:     make(chan struct{}, size),
		timeout: timeout,
	}
}

// Future is a handle on a submitted task. Wait blocks until the task
// completes or the waiting context is cancelled.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Wait returns the task result. Cancelling ctx abandons the wait, not
// the task itself; the task still sees its own deadline.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Async runs fn on its own goroutine, outside the pool. Composite joins
// use it: a join that held a pool slot while waiting on child futures
// would starve the very pool those children need to run.
func Async[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()

	return f
}

// Submit dispatches fn to the pool and returns immediately with a handle.
// The task runs under the pool's deadline; expiry surfaces as ErrTimeout.
// Caller cancellation propagates into the running query through ctx.
func Submit[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case p.sem <- struct{}{}:
			defer func() { <-p.sem }()
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		}

		taskCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		f.value, f.err = fn(taskCtx)
		if f.err != nil && errors.Is(f.err, context.DeadlineExceeded) {
			f.err = fmt.Errorf("%w after %s", domain.ErrTimeout, p.timeout)
		}
	}()

	return f
}
