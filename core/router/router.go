package router

import (
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/dmitrymomot/dws/core/handler"
)

// MethodAll matches any request method. An empty method means the same.
const MethodAll = "ALL"

// Route is a single registry entry: a method predicate, a path predicate and the
// handler invoked when both match.
//
// An empty Method (or MethodAll) matches every method. Path and Pattern are the
// literal and regular-expression path predicates; Pattern wins when both are set,
// and when neither is set every path matches.
type Route struct {
	Method  string
	Path    string
	Pattern *regexp.Regexp
	Handler handler.HandlerFunc
}

// Router is the ordered middleware registry. Entries run in registration order;
// each one decides whether to continue the chain by calling next.
//
// Router implements http.Handler. Registration is safe while serving, but requests
// already being dispatched keep the list they started with.
type Router struct {
	mu       sync.RWMutex
	routes   []Route
	handlers []handler.HandlerFunc

	errorHandler handler.ErrorHandler
	logger       *slog.Logger
	silent       bool
	renderer     handler.Renderer
	maxBodyBytes int64
}

// New creates an empty registry.
func New(opts ...Option) *Router {
	r := &Router{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
		maxBodyBytes: handler.DefaultMaxBodyBytes,
	}
	r.errorHandler = r.defaultErrorHandler

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register appends a route to the registry. Routes with a nil handler are ignored.
func (r *Router) Register(route Route) {
	if route.Handler == nil {
		return
	}
	route.Method = strings.ToUpper(strings.TrimSpace(route.Method))
	if route.Method == "" {
		route.Method = MethodAll
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy on write: in-flight dispatches hold the previous slice.
	handlers := make([]handler.HandlerFunc, len(r.handlers), len(r.handlers)+1)
	copy(handlers, r.handlers)
	r.handlers = append(handlers, guard(route))
	r.routes = append(r.routes, route)
}

// Use registers a handler for every method and path.
func (r *Router) Use(h handler.HandlerFunc) {
	r.Register(Route{Handler: h})
}

// Handle registers a handler for any method on an exact path.
func (r *Router) Handle(path string, h handler.HandlerFunc) {
	r.Register(Route{Path: path, Handler: h})
}

// HandleRegexp registers a handler for any method on paths matching re.
func (r *Router) HandleRegexp(re *regexp.Regexp, h handler.HandlerFunc) {
	r.Register(Route{Pattern: re, Handler: h})
}

// Method registers a handler for a method on an exact path.
// An empty path matches every path.
func (r *Router) Method(method, path string, h handler.HandlerFunc) {
	r.Register(Route{Method: method, Path: path, Handler: h})
}

// MethodRegexp registers a handler for a method on paths matching re.
func (r *Router) MethodRegexp(method string, re *regexp.Regexp, h handler.HandlerFunc) {
	r.Register(Route{Method: method, Pattern: re, Handler: h})
}

// Get registers a GET handler on an exact path.
func (r *Router) Get(path string, h handler.HandlerFunc) {
	r.Method(http.MethodGet, path, h)
}

// Post registers a POST handler on an exact path.
func (r *Router) Post(path string, h handler.HandlerFunc) {
	r.Method(http.MethodPost, path, h)
}

// Put registers a PUT handler on an exact path.
func (r *Router) Put(path string, h handler.HandlerFunc) {
	r.Method(http.MethodPut, path, h)
}

// Delete registers a DELETE handler on an exact path.
func (r *Router) Delete(path string, h handler.HandlerFunc) {
	r.Method(http.MethodDelete, path, h)
}

// Patch registers a PATCH handler on an exact path.
func (r *Router) Patch(path string, h handler.HandlerFunc) {
	r.Method(http.MethodPatch, path, h)
}

// Head registers a HEAD handler on an exact path.
func (r *Router) Head(path string, h handler.HandlerFunc) {
	r.Method(http.MethodHead, path, h)
}

// Options registers an OPTIONS handler on an exact path.
func (r *Router) Options(path string, h handler.HandlerFunc) {
	r.Method(http.MethodOptions, path, h)
}

// Routes returns a copy of the registry in execution order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]Route, len(r.routes))
	copy(routes, r.routes)
	return routes
}

func (r *Router) snapshot() []handler.HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers
}

// guard wraps a route handler so it only runs when the request matches.
// A mismatch falls through to next, or does nothing at the end of the chain.
func guard(route Route) handler.HandlerFunc {
	return func(ctx *handler.Context, next handler.Next) error {
		if matchMethod(route.Method, ctx.Method()) && matchPath(route, ctx.Path()) {
			return route.Handler(ctx, next)
		}
		if next == nil {
			return nil
		}
		return next()
	}
}

func matchMethod(want, got string) bool {
	return want == MethodAll || strings.EqualFold(want, got)
}

func matchPath(route Route, path string) bool {
	switch {
	case route.Pattern != nil:
		return route.Pattern.MatchString(path)
	case route.Path == "":
		return true
	default:
		return route.Path == path
	}
}
