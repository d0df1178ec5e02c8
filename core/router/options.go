package router

import (
	"log/slog"

	"github.com/dmitrymomot/dws/core/handler"
)

// Option configures a Router during creation.
type Option func(*Router)

// WithErrorHandler replaces the default error hook. The hook receives every failure
// that escapes the chain; the response it leaves behind is finalized and sent.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(r *Router) {
		if h != nil {
			r.errorHandler = h
		}
	}
}

// WithLogger sets the logger used by the default error hook and passed to every Context.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSilent suppresses logging in the default error hook.
func WithSilent(silent bool) Option {
	return func(r *Router) {
		r.silent = silent
	}
}

// WithRenderer sets the view renderer made available through Context.Render.
func WithRenderer(renderer handler.Renderer) Option {
	return func(r *Router) {
		r.renderer = renderer
	}
}

// WithMaxBodyBytes limits how much of a POST body is read before dispatch.
func WithMaxBodyBytes(n int64) Option {
	return func(r *Router) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}
