package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/dws/core/logger"
)

// DefaultMaxBodyBytes caps how much of a request body ParseBody reads.
const DefaultMaxBodyBytes int64 = 32 << 20

// Context is the mutable per-request state threaded through the middleware chain.
// A Context belongs to a single request and must not be shared between goroutines.
type Context struct {
	w http.ResponseWriter
	r *http.Request

	logger       *slog.Logger
	renderer     Renderer
	maxBodyBytes int64

	method   string
	path     string
	search   string
	url      string
	protocol string
	host     string
	hostname string
	origin   string
	query    map[string]string
	headers  map[string]string
	cookies  map[string]string

	requestBody any
	bodyParsed  bool

	status         int
	statusSet      bool
	explicitStatus bool
	header         http.Header
	body           any
	hijacked       bool
}

// ContextOption configures a Context during construction.
type ContextOption func(*Context)

// WithLogger sets the logger used for recoverable request problems.
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRenderer sets the view renderer used by Render and RenderString.
func WithRenderer(r Renderer) ContextOption {
	return func(c *Context) {
		c.renderer = r
	}
}

// WithMaxBodyBytes limits the request body size read by ParseBody.
func WithMaxBodyBytes(n int64) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// NewContext builds the per-request state from an inbound request.
// The response starts as 404 with no body and the default headers
// Server, Content-Type (text/html) and Date.
func NewContext(w http.ResponseWriter, r *http.Request, opts ...ContextOption) *Context {
	c := &Context{
		w:            w,
		r:            r,
		logger:       logger.Nop(),
		maxBodyBytes: DefaultMaxBodyBytes,
		method:       strings.ToUpper(r.Method),
		path:         r.URL.Path,
		url:          r.RequestURI,
		query:        map[string]string{},
		headers:      make(map[string]string, len(r.Header)+1),
		cookies:      make(map[string]string),
		requestBody:  Fields{},
		status:       http.StatusNotFound,
		header:       make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.path == "" {
		c.path = "/"
	}
	if c.url == "" {
		c.url = r.URL.RequestURI()
	}
	if r.URL.RawQuery != "" {
		c.search = "?" + r.URL.RawQuery
		c.query = ParseQuery(r.URL.RawQuery)
	}

	for name, values := range r.Header {
		c.headers[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	if r.Host != "" {
		c.headers["host"] = r.Host
	}
	for _, ck := range r.Cookies() {
		c.cookies[ck.Name] = ck.Value
	}

	c.protocol = "http"
	if r.TLS != nil {
		c.protocol = "https"
	}
	host := c.Get("X-Forwarded-Host")
	if host == "" {
		host = c.Get("Host")
	}
	host, _, _ = strings.Cut(host, ",")
	c.host = strings.TrimSpace(host)
	c.hostname = c.host
	if h, _, err := net.SplitHostPort(c.host); err == nil {
		c.hostname = h
	}
	c.origin = c.protocol + "://" + c.host

	c.Set("Server", "DWS")
	c.Set("Content-Type", "text/html")
	c.Set("Date", time.Now().UTC().Format(http.TimeFormat))

	return c
}

// Deadline delegates to the request's context.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request's context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request's context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with key in the request's context.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a value in the request's context.
// The value can be retrieved using the Value method.
func (c *Context) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}

// Request returns the underlying HTTP request.
func (c *Context) Request() *http.Request { return c.r }

// ResponseWriter returns the underlying response writer.
// Writing to it directly bypasses the buffered response; see Hijack.
func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

// Logger returns the request logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Method returns the upper-cased request method.
func (c *Context) Method() string { return c.method }

// Path returns the decoded request path without the query string.
func (c *Context) Path() string { return c.path }

// URL returns the raw request URI as received.
func (c *Context) URL() string { return c.url }

// Search returns "?" followed by the raw query, or "" when there is none.
func (c *Context) Search() string { return c.search }

// Query returns the parsed query parameters.
func (c *Context) Query() map[string]string { return c.query }

// QueryValue returns a single query parameter.
func (c *Context) QueryValue(key string) string { return c.query[key] }

// Protocol returns "http" or "https".
func (c *Context) Protocol() string { return c.protocol }

// Host returns the request host with port, honoring X-Forwarded-Host.
func (c *Context) Host() string { return c.host }

// Hostname returns Host without the port.
func (c *Context) Hostname() string { return c.hostname }

// Origin returns protocol://host.
func (c *Context) Origin() string { return c.origin }

// Headers returns the request headers keyed by lower-cased name.
func (c *Context) Headers() map[string]string { return c.headers }

// Cookies returns the request cookies by name.
func (c *Context) Cookies() map[string]string { return c.cookies }

// Cookie returns a single request cookie value or "".
func (c *Context) Cookie(name string) string { return c.cookies[name] }

// Get returns a request header, ignoring case. "Referer" and "Referrer" are
// interchangeable. Missing headers yield "".
func (c *Context) Get(name string) string {
	switch name = strings.ToLower(name); name {
	case "referer", "referrer":
		if v := c.headers["referrer"]; v != "" {
			return v
		}
		return c.headers["referer"]
	default:
		return c.headers[name]
	}
}
