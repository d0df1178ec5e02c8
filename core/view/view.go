package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrymomot/dws/core/logger"
	"github.com/dmitrymomot/dws/pkg/async"
)

// Engine renders html/template views and caches their source by resolved path.
//
// The cache holds the pending load itself: the first caller for a path reads the
// file, concurrent callers for the same path wait for that read and share its
// result. Failed loads are evicted so the next call tries again.
type Engine struct {
	dir    string
	fsys   fs.FS
	funcs  template.FuncMap
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*async.Future[string]
}

// New creates a view engine reading from DefaultDir on disk.
func New(opts ...Option) *Engine {
	e := &Engine{
		dir:    DefaultDir,
		funcs:  template.FuncMap{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		cache:  make(map[string]*async.Future[string]),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render executes the named view with data and returns the markup.
// Relative names are resolved against the views directory.
func (e *Engine) Render(ctx context.Context, name string, data any) (string, error) {
	key, err := e.resolve(name)
	if err != nil {
		return "", err
	}
	src, err := e.load(ctx, key)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(path.Base(filepath.ToSlash(key))).Funcs(e.funcs).Parse(src)
	if err != nil {
		return "", fmt.Errorf("view: parse %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("view: execute %s: %w", name, err)
	}
	return buf.String(), nil
}

// Load returns the source of the named view, reading it at most once while cached.
func (e *Engine) Load(ctx context.Context, name string) (string, error) {
	key, err := e.resolve(name)
	if err != nil {
		return "", err
	}
	return e.load(ctx, key)
}

// Purge drops every cached view. Loads already in flight still complete for their callers.
func (e *Engine) Purge() {
	e.mu.Lock()
	n := len(e.cache)
	e.cache = make(map[string]*async.Future[string])
	e.mu.Unlock()

	e.logger.Debug("view cache purged", logger.Component("view"), slog.Int("entries", n))
}

func (e *Engine) load(ctx context.Context, key string) (string, error) {
	e.mu.Lock()
	future, ok := e.cache[key]
	if !ok {
		future = async.NewFuture[string]()
		e.cache[key] = future
	}
	e.mu.Unlock()

	if !ok {
		src, err := e.read(key)
		if err != nil {
			e.mu.Lock()
			if e.cache[key] == future {
				delete(e.cache, key)
			}
			e.mu.Unlock()
			e.logger.Warn("failed to load view", logger.Component("view"), logger.File(key), logger.Error(err))
		} else {
			e.logger.Debug("view loaded", logger.Component("view"), logger.File(key))
		}
		future.Resolve(src, err)
	}

	return future.AwaitContext(ctx)
}

func (e *Engine) read(key string) (string, error) {
	var (
		data []byte
		err  error
	)
	if e.fsys != nil {
		data, err = fs.ReadFile(e.fsys, key)
	} else {
		data, err = os.ReadFile(key)
	}
	if err != nil {
		return "", fmt.Errorf("view: load %s: %w", key, err)
	}
	return string(data), nil
}

// resolve normalizes name into the cache key: an absolute OS path, or a clean
// slash path inside the configured fs.FS.
func (e *Engine) resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}

	if e.fsys != nil {
		p := filepath.ToSlash(name)
		if !strings.HasPrefix(p, "/") {
			p = path.Join(filepath.ToSlash(e.dir), p)
		}
		p = strings.TrimPrefix(path.Clean("/"+p), "/")
		if !fs.ValidPath(p) {
			return "", ErrInvalidPath
		}
		return p, nil
	}

	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(e.dir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("view: resolve %s: %w", name, err)
	}
	return abs, nil
}
