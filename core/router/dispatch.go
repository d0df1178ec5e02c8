package router

import (
	"runtime/debug"

	"github.com/dmitrymomot/dws/core/handler"
)

// Dispatch runs the registry against ctx and returns the first failure that escapes
// the chain. Running off the end of the chain is success.
//
// Each step may be entered only once: a handler calling next twice gets
// ErrNextCalledMultipleTimes from the second call. A panic in a handler is recovered
// at its own step and returned as a PanicError, so enclosing handlers see it as an
// ordinary error from next.
func (r *Router) Dispatch(ctx *handler.Context) error {
	return compose(r.snapshot())(ctx, nil)
}

// compose turns an ordered handler list into a single handler.
func compose(handlers []handler.HandlerFunc) handler.HandlerFunc {
	steps := make([]handler.HandlerFunc, len(handlers))
	for i, h := range handlers {
		steps[i] = recoverStep(h)
	}
	return handler.Chain(steps...)
}

// recoverStep converts a panic in h into a PanicError returned from h.
func recoverStep(h handler.HandlerFunc) handler.HandlerFunc {
	return func(ctx *handler.Context, next handler.Next) (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = &panicError{
					value: p,
					stack: debug.Stack(),
				}
			}
		}()
		return h(ctx, next)
	}
}
