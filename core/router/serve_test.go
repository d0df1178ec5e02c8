package router_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/router"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestServeHTTP(t *testing.T) {
	t.Parallel()

	t.Run("default_error_page", func(t *testing.T) {
		t.Parallel()

		w := serve(router.New(), http.MethodGet, "/missing")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not Found", w.Body.String())
		assert.Equal(t, "DWS", w.Header().Get("Server"))
		assert.Equal(t, "9", w.Header().Get("Content-Length"))
	})

	t.Run("status_text_for_explicit_status", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			ctx.SetStatus(http.StatusForbidden)
			return nil
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Forbidden", w.Body.String())
	})

	t.Run("ok_without_body_stays_empty", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			ctx.SetStatus(http.StatusOK)
			return nil
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.Get("/index.html", func(ctx *handler.Context, next handler.Next) error {
			ctx.Redirect("/")
			return nil
		})

		w := serve(r, http.MethodGet, "/index.html")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Equal(t, "Found", w.Body.String())
	})

	t.Run("post_body_parsed_before_dispatch", func(t *testing.T) {
		t.Parallel()

		var got any
		r := router.New()
		r.Post("/submit", func(ctx *handler.Context, next handler.Next) error {
			got = ctx.RequestBody()
			ctx.SetBody("ok")
			return nil
		})

		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("name=dws"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, handler.Fields{"name": "dws"}, got)
	})

	t.Run("hijacked_response_not_written", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			w, _, err := ctx.Hijack()
			if err != nil {
				return err
			}
			w.WriteHeader(http.StatusTeapot)
			_, err = w.Write([]byte("raw"))
			return err
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "raw", w.Body.String())
	})

	t.Run("renderer_passed_to_context", func(t *testing.T) {
		t.Parallel()

		r := router.New(router.WithRenderer(staticRenderer("<p>view</p>")))
		r.Get("/", func(ctx *handler.Context, next handler.Next) error {
			return ctx.Render("index.html", nil)
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<p>view</p>", w.Body.String())
	})

	t.Run("max_body_bytes", func(t *testing.T) {
		t.Parallel()

		var got any
		r := router.New(router.WithMaxBodyBytes(4))
		r.Post("/", func(ctx *handler.Context, next handler.Next) error {
			got = ctx.RequestBody()
			return nil
		})

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long body"))
		req.Header.Set("Content-Type", "text/plain")
		r.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, handler.Fields{}, got)
	})
}

type staticRenderer string

func (s staticRenderer) Render(context.Context, string, any) (string, error) {
	return string(s), nil
}

func TestErrorHandling(t *testing.T) {
	t.Parallel()

	t.Run("hook_called_once_and_response_kept", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		calls := 0
		var got error
		r := router.New(router.WithErrorHandler(func(ctx *handler.Context, err error) {
			calls++
			got = err
		}))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			ctx.SetStatus(http.StatusInternalServerError)
			return boom
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, got, boom)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", w.Body.String())
	})

	t.Run("partial_state_survives", func(t *testing.T) {
		t.Parallel()

		r := router.New(router.WithSilent(true))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			ctx.Set("X-Partial", "yes")
			ctx.SetBody("partial")
			return errors.New("late failure")
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
		assert.Equal(t, "yes", w.Header().Get("X-Partial"))
	})

	t.Run("default_hook_logs_indented", func(t *testing.T) {
		t.Parallel()

		log, buf := bufferLogger()
		r := router.New(router.WithLogger(log))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			return errors.New("first line\nsecond line")
		})

		w := serve(r, http.MethodGet, "/fail")
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		out := buf.String()
		assert.Contains(t, out, "unhandled request error")
		assert.Contains(t, out, "path=/fail")
		assert.Contains(t, out, `  first line\n  second line`)
	})

	t.Run("silent_suppresses_logging", func(t *testing.T) {
		t.Parallel()

		log, buf := bufferLogger()
		r := router.New(router.WithLogger(log), router.WithSilent(true))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			return errors.New("quiet")
		})

		serve(r, http.MethodGet, "/")
		assert.Empty(t, buf.String())
	})

	t.Run("http_error_sets_status", func(t *testing.T) {
		t.Parallel()

		r := router.New(router.WithSilent(true))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			return handler.NewHTTPError(http.StatusUnauthorized, "")
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", w.Body.String())
	})

	t.Run("panic_logged_with_stack", func(t *testing.T) {
		t.Parallel()

		log, buf := bufferLogger()
		r := router.New(router.WithLogger(log))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			ctx.SetStatus(http.StatusInternalServerError)
			panic("kaboom")
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", w.Body.String())
		assert.Contains(t, buf.String(), "panic: kaboom")
		assert.Contains(t, buf.String(), "goroutine")
	})

	t.Run("double_next_reaches_hook", func(t *testing.T) {
		t.Parallel()

		var got error
		r := router.New(router.WithErrorHandler(func(ctx *handler.Context, err error) {
			got = err
		}))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			_ = next()
			return next()
		})

		serve(r, http.MethodGet, "/")
		assert.ErrorIs(t, got, router.ErrNextCalledMultipleTimes)
	})

	t.Run("panicking_hook_still_responds", func(t *testing.T) {
		t.Parallel()

		r := router.New(router.WithErrorHandler(func(ctx *handler.Context, err error) {
			panic("hook failed")
		}))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			return errors.New("boom")
		})

		var w *httptest.ResponseRecorder
		require.NotPanics(t, func() { w = serve(r, http.MethodGet, "/") })
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("unhandled_error_is_server_error", func(t *testing.T) {
		t.Parallel()

		var calls int
		r := router.New(router.WithErrorHandler(func(ctx *handler.Context, err error) {
			calls++
			assert.Equal(t, http.StatusInternalServerError, ctx.Status())
		}))
		r.Get("/x", func(ctx *handler.Context, next handler.Next) error {
			return errors.New("boom")
		})

		w := serve(r, http.MethodGet, "/x")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", w.Body.String())
		assert.Equal(t, 1, calls)
	})

	t.Run("panic_without_status_is_server_error", func(t *testing.T) {
		t.Parallel()

		r := router.New(router.WithSilent(true))
		r.Get("/x", func(ctx *handler.Context, next handler.Next) error {
			panic("kaboom")
		})

		w := serve(r, http.MethodGet, "/x")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", w.Body.String())
	})

	t.Run("status_set_before_error_kept", func(t *testing.T) {
		t.Parallel()

		r := router.New(router.WithSilent(true))
		r.Use(func(ctx *handler.Context, next handler.Next) error {
			ctx.Throw(http.StatusConflict, "taken")
			return errors.New("boom")
		})

		w := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "taken", w.Body.String())
	})

	t.Run("double_next_in_chain_reaches_hook", func(t *testing.T) {
		t.Parallel()

		var got error
		runs := 0
		r := router.New(router.WithErrorHandler(func(ctx *handler.Context, err error) {
			got = err
		}))
		r.Use(handler.Chain(
			func(ctx *handler.Context, next handler.Next) error {
				_ = next()
				return next()
			},
			func(ctx *handler.Context, next handler.Next) error {
				runs++
				return nil
			},
		))

		w := serve(r, http.MethodGet, "/")
		assert.ErrorIs(t, got, router.ErrNextCalledMultipleTimes)
		assert.Equal(t, 1, runs)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
