package static

import (
	"io/fs"

	"github.com/dmitrymomot/dws/core/handler"
)

// DefaultIndex is the file served for directory requests.
const DefaultIndex = "index.html"

type config struct {
	deferred  bool
	hidden    bool
	index     string
	maxAge    int
	immutable bool
	headers   func(ctx *handler.Context, name string, info fs.FileInfo)
}

// Option configures the static middleware.
type Option func(*config)

// WithDefer runs the rest of the chain first. The file is served afterwards only if
// nothing downstream produced a response.
func WithDefer() Option {
	return func(c *config) {
		c.deferred = true
	}
}

// WithHidden allows serving dotfiles and files inside dot-directories.
func WithHidden() Option {
	return func(c *config) {
		c.hidden = true
	}
}

// WithIndex sets the file served for directory requests.
func WithIndex(name string) Option {
	return func(c *config) {
		if name != "" {
			c.index = name
		}
	}
}

// WithoutIndex answers directory requests with 403 instead of an index file.
func WithoutIndex() Option {
	return func(c *config) {
		c.index = ""
	}
}

// WithMaxAge sets the max-age directive of Cache-Control, in seconds.
func WithMaxAge(seconds int) Option {
	return func(c *config) {
		if seconds > 0 {
			c.maxAge = seconds
		}
	}
}

// WithImmutable adds the immutable directive to Cache-Control.
func WithImmutable() Option {
	return func(c *config) {
		c.immutable = true
	}
}

// WithHeaders registers a callback that can set extra response headers for every
// served file. It receives the file name relative to the root and its info.
func WithHeaders(fn func(ctx *handler.Context, name string, info fs.FileInfo)) Option {
	return func(c *config) {
		c.headers = fn
	}
}
