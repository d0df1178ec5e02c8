package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrymomot/dws/core/handler"
)

// Serve returns middleware that serves files below the root directory.
func Serve(root string, opts ...Option) handler.HandlerFunc {
	return ServeFS(os.DirFS(root), opts...)
}

// ServeFS returns middleware that serves files from fsys, resolving the request path
// against its root. Only GET and HEAD requests are served.
//
// When a file is found it becomes the response body with its MIME type, and
// Last-Modified and Cache-Control are set unless already present. Otherwise the
// response is left as 404 (missing file) or 403 (hidden file, directory without
// index) and the chain continues. Other filesystem errors set 500 and are returned.
func ServeFS(fsys fs.FS, opts ...Option) handler.HandlerFunc {
	cfg := &config{index: DefaultIndex}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.deferred {
			if err := callNext(next); err != nil {
				return err
			}
			if ctx.Body() != nil || ctx.Status() != http.StatusNotFound {
				return nil
			}
		}

		served, err := cfg.serve(ctx, fsys)
		if err != nil {
			return err
		}
		if !served && !cfg.deferred {
			return callNext(next)
		}
		return nil
	}
}

func callNext(next handler.Next) error {
	if next == nil {
		return nil
	}
	return next()
}

// serve writes the file matching the request into ctx and reports whether it did.
func (cfg *config) serve(ctx *handler.Context, fsys fs.FS) (bool, error) {
	if ctx.Method() != http.MethodGet && ctx.Method() != http.MethodHead {
		return false, nil
	}

	name := strings.TrimPrefix(path.Clean("/"+ctx.Path()), "/")
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(fsys, name)
	if err == nil && info.IsDir() {
		if cfg.index == "" {
			ctx.Throw(http.StatusForbidden)
			return false, nil
		}
		name = path.Join(name, cfg.index)
		info, err = fs.Stat(fsys, name)
	}
	if err != nil {
		return false, fail(ctx, name, err)
	}
	if info.IsDir() {
		ctx.Throw(http.StatusForbidden)
		return false, nil
	}
	if !cfg.hidden && isHidden(name) {
		ctx.Throw(http.StatusForbidden)
		return false, nil
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return false, fail(ctx, name, err)
	}

	ctx.SetType(name)
	if cfg.headers != nil {
		cfg.headers(ctx, name, info)
	}
	ctx.SetBody(data)

	header := ctx.ResponseHeader()
	if header.Get("Last-Modified") == "" && !info.ModTime().IsZero() {
		ctx.Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))
	}
	if header.Get("Cache-Control") == "" {
		cc := "max-age=" + strconv.Itoa(cfg.maxAge)
		if cfg.immutable {
			cc += ",immutable"
		}
		ctx.Set("Cache-Control", cc)
	}

	return true, nil
}

// fail maps a filesystem error onto the response. A missing file is a plain 404;
// anything else is a 500 that is also returned to the caller.
func fail(ctx *handler.Context, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		ctx.Throw(http.StatusNotFound)
		return nil
	}
	ctx.Throw(http.StatusInternalServerError)
	return fmt.Errorf("static: read %s: %w", name, err)
}

// isHidden reports whether any segment of name starts with a dot.
func isHidden(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg != "." && strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
