package handler

import "context"

// Next resumes the chain at the following handler. It returns once every
// downstream handler has returned, so code placed after the call runs on the unwind.
type Next func() error

// HandlerFunc processes a request. It may call next at most once to delegate to the
// rest of the chain, or return without calling it to stop the chain.
type HandlerFunc func(ctx *Context, next Next) error

// ErrorHandler receives failures that escaped the whole chain.
type ErrorHandler func(ctx *Context, err error)

// Renderer produces markup for a named view.
type Renderer interface {
	Render(ctx context.Context, name string, data any) (string, error)
}

// Chain returns a handler that runs handlers in order, each one's next invoking the
// following. The last handler's next continues with the outer next.
//
// Every position may be entered once per run: a second call to the same next, or to
// any earlier one, returns ErrNextCalledMultipleTimes without running anything.
func Chain(handlers ...HandlerFunc) HandlerFunc {
	return func(ctx *Context, next Next) error {
		index := -1

		var step func(i int) error
		step = func(i int) error {
			if i <= index {
				return ErrNextCalledMultipleTimes
			}
			index = i

			if i == len(handlers) {
				if next == nil {
					return nil
				}
				return next()
			}
			return handlers[i](ctx, func() error { return step(i + 1) })
		}
		return step(0)
	}
}
