package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/router"
)

func newContext(method, target string) *handler.Context {
	return handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(method, target, nil))
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("empty_registry", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, router.New().Dispatch(newContext(http.MethodGet, "/")))
	})

	t.Run("after_next_runs_on_unwind", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.Get("/", func(ctx *handler.Context, next handler.Next) error {
			if err := next(); err != nil {
				return err
			}
			ctx.Set("X-After", ctx.Body())
			return nil
		})
		r.Get("/", body("hello"))

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello", w.Body.String())
		assert.Equal(t, "hello", w.Header().Get("X-After"))
	})

	t.Run("execution_order", func(t *testing.T) {
		t.Parallel()

		var trace []string
		mw := func(name string) handler.HandlerFunc {
			return func(ctx *handler.Context, next handler.Next) error {
				trace = append(trace, name+">")
				err := next()
				trace = append(trace, "<"+name)
				return err
			}
		}

		r := router.New()
		r.Use(mw("a"))
		r.Get("/skip", mw("skipped"))
		r.Use(mw("b"))
		r.Use(mw("c"))

		require.NoError(t, r.Dispatch(newContext(http.MethodGet, "/")))
		assert.Equal(t, []string{"a>", "b>", "c>", "<c", "<b", "<a"}, trace)
	})

	t.Run("short_circuit", func(t *testing.T) {
		t.Parallel()

		reached := false
		r := router.New()
		r.Use(body("stop"))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			reached = true
			return next()
		})

		w := serve(r, http.MethodGet, "/")
		assert.False(t, reached)
		assert.Equal(t, "stop", w.Body.String())
	})

	t.Run("next_called_twice", func(t *testing.T) {
		t.Parallel()

		var second error
		count := 0
		r := router.New()
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			if err := next(); err != nil {
				return err
			}
			second = next()
			return second
		})
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			count++
			return next()
		})

		err := r.Dispatch(newContext(http.MethodGet, "/"))
		assert.ErrorIs(t, err, router.ErrNextCalledMultipleTimes)
		assert.ErrorIs(t, second, router.ErrNextCalledMultipleTimes)
		assert.Equal(t, 1, count)
	})

	t.Run("error_propagates_through_pending_next", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var seen error
		r := router.New()
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			seen = next()
			return seen
		})
		r.Use(func(ctx *handler.Context, next handler.Next) error { return next() })
		r.Use(func(ctx *handler.Context, next handler.Next) error { return boom })

		err := r.Dispatch(newContext(http.MethodGet, "/"))
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, seen, boom)
	})

	t.Run("intermediate_handler_intercepts", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			if err := next(); err != nil {
				ctx.Throw(http.StatusBadGateway, "recovered")
			}
			return nil
		})
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			return errors.New("upstream failed")
		})

		ctx := newContext(http.MethodGet, "/")
		require.NoError(t, r.Dispatch(ctx))
		assert.Equal(t, http.StatusBadGateway, ctx.Status())
		assert.Equal(t, "recovered", ctx.Body())
	})

	t.Run("panic_becomes_error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("cause")
		var intercepted error
		r := router.New()
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			intercepted = next()
			return intercepted
		})
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			panic(cause)
		})

		err := r.Dispatch(newContext(http.MethodGet, "/"))
		require.Error(t, err)

		var pe router.PanicError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, cause, pe.Value())
		assert.NotEmpty(t, pe.Stack())
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "panic: cause", err.Error())
		assert.Equal(t, err, intercepted)
	})

	t.Run("panic_with_non_error_value", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			panic("plain")
		})

		err := r.Dispatch(newContext(http.MethodGet, "/"))
		var pe router.PanicError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "plain", pe.Value())
		assert.Nil(t, errors.Unwrap(err))
	})
}
