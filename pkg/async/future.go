package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrTimeout is returned when AwaitWithTimeout exceeds its duration.
	ErrTimeout = errors.New("async: timeout waiting for future")
	// ErrNoFutures is returned when AwaitAny is called with no futures.
	ErrNoFutures = errors.New("async: no futures provided")
)

// Future is a value that settles exactly once. Any number of goroutines may wait on it;
// all of them observe the same value and error.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewFuture returns an unsettled future. Settle it with Resolve.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve settles the future. Only the first call has an effect;
// it reports whether this call settled the future.
func (f *Future[T]) Resolve(value T, err error) bool {
	settled := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
		settled = true
	})
	return settled
}

// Await blocks until the future settles.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitContext blocks until the future settles or ctx is done.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout blocks until the future settles or the timeout elapses.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future has settled, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn in a new goroutine and returns a future for its result.
func Async[P, T any](ctx context.Context, param P, fn func(context.Context, P) (T, error)) *Future[T] {
	f := NewFuture[T]()

	go func() {
		// Early exit prevents running work for an already canceled context
		select {
		case <-ctx.Done():
			var zero T
			f.Resolve(zero, ctx.Err())
			return
		default:
		}

		v, err := fn(ctx, param)
		f.Resolve(v, err)
	}()

	return f
}

// AwaitAny waits for the first future to settle and returns its index, value, and error.
func AwaitAny[T any](futures ...*Future[T]) (int, T, error) {
	var zero T
	if len(futures) == 0 {
		return -1, zero, ErrNoFutures
	}

	type result struct {
		index int
		value T
		err   error
	}
	done := make(chan result, len(futures))

	for i, future := range futures {
		go func(index int, f *Future[T]) {
			v, err := f.Await()
			done <- result{index, v, err}
		}(i, future)
	}

	res := <-done
	return res.index, res.value, res.err
}
