package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dws/core/handler"
)

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("order_and_unwind", func(t *testing.T) {
		t.Parallel()

		var trace []string
		step := func(name string) handler.HandlerFunc {
			return func(ctx *handler.Context, next handler.Next) error {
				trace = append(trace, name+":in")
				err := next()
				trace = append(trace, name+":out")
				return err
			}
		}

		chain := handler.Chain(step("a"), step("b"))
		c := newContext(http.MethodGet, "/")
		outer := func() error {
			trace = append(trace, "outer")
			return nil
		}

		require.NoError(t, chain(c, outer))
		assert.Equal(t, []string{"a:in", "b:in", "outer", "b:out", "a:out"}, trace)
	})

	t.Run("nil_outer_next", func(t *testing.T) {
		t.Parallel()

		called := false
		chain := handler.Chain(func(ctx *handler.Context, next handler.Next) error {
			called = true
			return next()
		})

		require.NoError(t, chain(newContext(http.MethodGet, "/"), nil))
		assert.True(t, called)
	})

	t.Run("short_circuit", func(t *testing.T) {
		t.Parallel()

		reached := false
		chain := handler.Chain(
			func(ctx *handler.Context, next handler.Next) error {
				ctx.SetBody("stopped")
				return nil
			},
			func(ctx *handler.Context, next handler.Next) error {
				reached = true
				return next()
			},
		)

		c := newContext(http.MethodGet, "/")
		require.NoError(t, chain(c, nil))
		assert.False(t, reached)
		assert.Equal(t, "stopped", c.Body())
	})

	t.Run("error_propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		chain := handler.Chain(
			func(ctx *handler.Context, next handler.Next) error { return next() },
			func(ctx *handler.Context, next handler.Next) error { return boom },
		)

		assert.ErrorIs(t, chain(newContext(http.MethodGet, "/"), nil), boom)
	})

	t.Run("double_next", func(t *testing.T) {
		t.Parallel()

		var second error
		runs := 0
		chain := handler.Chain(
			func(ctx *handler.Context, next handler.Next) error {
				if err := next(); err != nil {
					return err
				}
				second = next()
				return second
			},
			func(ctx *handler.Context, next handler.Next) error {
				runs++
				return next()
			},
		)

		err := chain(newContext(http.MethodGet, "/"), nil)
		assert.ErrorIs(t, err, handler.ErrNextCalledMultipleTimes)
		assert.ErrorIs(t, second, handler.ErrNextCalledMultipleTimes)
		assert.Equal(t, 1, runs)
	})

	t.Run("double_outer_next_runs_once", func(t *testing.T) {
		t.Parallel()

		outerRuns := 0
		chain := handler.Chain(
			func(ctx *handler.Context, next handler.Next) error { return next() },
			func(ctx *handler.Context, next handler.Next) error {
				_ = next()
				return next()
			},
		)

		err := chain(newContext(http.MethodGet, "/"), func() error {
			outerRuns++
			return nil
		})
		assert.ErrorIs(t, err, handler.ErrNextCalledMultipleTimes)
		assert.Equal(t, 1, outerRuns)
	})

	t.Run("fresh_cursor_per_run", func(t *testing.T) {
		t.Parallel()

		chain := handler.Chain(func(ctx *handler.Context, next handler.Next) error {
			return next()
		})

		require.NoError(t, chain(newContext(http.MethodGet, "/"), nil))
		require.NoError(t, chain(newContext(http.MethodGet, "/"), nil))
	})
}

func TestNewHTTPError(t *testing.T) {
	t.Parallel()

	err := handler.NewHTTPError(http.StatusNotFound, "")
	assert.Equal(t, "Not Found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode())

	err = handler.NewHTTPError(http.StatusBadRequest, "missing name")
	assert.Equal(t, "missing name", err.Error())
}
