package view

import (
	"html/template"
	"io/fs"
	"log/slog"
)

// DefaultDir is where relative view names are looked up.
const DefaultDir = "views"

// Option configures an Engine.
type Option func(*Engine)

// WithDir sets the directory relative view names resolve against.
func WithDir(dir string) Option {
	return func(e *Engine) {
		if dir != "" {
			e.dir = dir
		}
	}
}

// WithFuncs adds template functions available to every view.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// WithFS reads views from fsys instead of the operating system.
// Names are then slash-separated paths inside fsys.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.fsys = fsys
	}
}

// WithLogger sets the logger used for cache events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
