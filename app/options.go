package app

import (
	"html/template"
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/server"
	"github.com/dmitrymomot/dws/core/view"
)

// Option configures an App. Options run after the configuration is loaded.
type Option func(*App) error

// WithConfig uses cfg instead of reading the environment.
func WithConfig(cfg Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets the logger shared by the router, the view engine and the server.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return ErrNilLogger
		}
		a.logger = logger
		return nil
	}
}

// WithEnv overrides the configured environment name.
func WithEnv(env string) Option {
	return func(a *App) error {
		a.config.Env = env
		return nil
	}
}

// WithSilent toggles logging in the default error handler.
func WithSilent(silent bool) Option {
	return func(a *App) error {
		a.config.Silent = silent
		return nil
	}
}

// WithErrorHandler replaces the hook that receives errors escaping the chain.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(a *App) error {
		a.errorHandler = h
		return nil
	}
}

// WithViews replaces the view engine built from the configuration.
func WithViews(e *view.Engine) Option {
	return func(a *App) error {
		if e == nil {
			return ErrNilViews
		}
		a.views = e
		return nil
	}
}

// WithViewFS reads views from fsys, e.g. an embed.FS, instead of the disk.
func WithViewFS(fsys fs.FS) Option {
	return func(a *App) error {
		a.viewOpts = append(a.viewOpts, view.WithFS(fsys))
		return nil
	}
}

// WithViewFuncs registers template functions available in every view.
func WithViewFuncs(funcs template.FuncMap) Option {
	return func(a *App) error {
		a.viewOpts = append(a.viewOpts, view.WithFuncs(funcs))
		return nil
	}
}

// WithServerOptions passes extra options to the server created by Listen.
func WithServerOptions(opts ...server.Option) Option {
	return func(a *App) error {
		a.serverOpts = append(a.serverOpts, opts...)
		return nil
	}
}
