package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/dws/pkg/mimetype"
)

var leadingTag = regexp.MustCompile(`^\s*<`)

// Set sets a response header. A nil value deletes the header instead.
// Strings are stored as-is, integers are formatted, anything else goes through fmt.
func (c *Context) Set(name string, value any) {
	if value == nil {
		c.header.Del(name)
		return
	}
	c.header.Set(name, headerValue(value))
}

// SetEach sets several headers to the same value, or deletes them when value is nil.
func (c *Context) SetEach(names []string, value any) {
	for _, name := range names {
		c.Set(name, value)
	}
}

// SetMap applies every name/value pair with the semantics of Set.
func (c *Context) SetMap(values map[string]any) {
	for name, value := range values {
		c.Set(name, value)
	}
}

// ResponseHeader exposes the response header map.
func (c *Context) ResponseHeader() http.Header { return c.header }

func headerValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Status returns the response status. It is 404 until something sets a body or a status.
func (c *Context) Status() int { return c.status }

// StatusSet reports whether the status was assigned, directly or through a body,
// Throw or Redirect. A false result means the response still carries the default 404.
func (c *Context) StatusSet() bool { return c.statusSet }

// SetStatus sets the response status explicitly. Later body assignments keep it.
func (c *Context) SetStatus(code int) {
	c.status = code
	c.statusSet = true
	c.explicitStatus = true
}

// Message returns the standard text for the current status.
func (c *Context) Message() string { return http.StatusText(c.status) }

// Body returns the response payload: nil, []byte, string or io.Reader.
func (c *Context) Body() any { return c.body }

// SetBody assigns the response payload. Accepted kinds are nil, []byte, string and
// io.Reader; other values are stored as their fmt representation.
//
// Assigning a non-nil value sets the status to 200 unless SetStatus was called before.
// A string body with no Content-Type gets "html" when it starts with "<" and "text"
// otherwise. Content-Length follows the payload; streams have none.
func (c *Context) SetBody(value any) {
	switch v := value.(type) {
	case nil, []byte, string, io.Reader:
	case error:
		value = v.Error()
	default:
		value = fmt.Sprint(v)
	}

	c.body = value
	if value != nil && !c.explicitStatus {
		c.status = http.StatusOK
		c.statusSet = true
	}

	switch v := value.(type) {
	case string:
		if c.Type() == "" {
			if leadingTag.MatchString(v) {
				c.SetType("html")
			} else {
				c.SetType("text")
			}
		}
		c.SetLength(int64(len(v)))
	case []byte:
		c.SetLength(int64(len(v)))
	default:
		c.Set("Content-Length", nil)
	}
}

// Length returns the Content-Length response header, or 0.
func (c *Context) Length() int64 {
	n, err := strconv.ParseInt(c.header.Get("Content-Length"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// SetLength sets the Content-Length response header.
func (c *Context) SetLength(n int64) {
	c.Set("Content-Length", n)
}

// Type returns the response media type without parameters.
func (c *Context) Type() string {
	t, _, _ := strings.Cut(c.header.Get("Content-Type"), ";")
	return strings.TrimSpace(t)
}

// SetType sets Content-Type from a media type or a file name/extension such as
// ".html" or "json". Unknown values remove the header.
func (c *Context) SetType(value string) {
	if t := mimetype.Lookup(value); t != "" {
		c.Set("Content-Type", t)
		return
	}
	c.Set("Content-Type", nil)
}

// Redirect responds with 302 Found and a Location header. An empty url means "/".
func (c *Context) Redirect(url string) {
	if url == "" {
		url = "/"
	}
	c.SetStatus(http.StatusFound)
	c.Set("Location", url)
}

// Throw writes an error response state: status and, when given, the message as body.
//
// Without a message the body is left absent rather than set to an empty string, so
// the finalizer renders the status text ("Not Found" for 404). The status is not
// sticky: a later SetBody still switches it to 200, which lets fall-through
// middleware such as static throw 404 and continue.
// It does not stop the chain; return afterwards if no further work should happen.
func (c *Context) Throw(status int, message ...any) {
	if len(message) > 0 && message[0] != nil {
		c.SetBody(fmt.Sprint(message...))
	} else {
		c.body = nil
		c.Set("Content-Length", nil)
	}
	c.status = status
	c.statusSet = true
}

// ThrowError is Throw with status 500 and the error (or any value) as message.
// An *HTTPError keeps its own status.
func (c *Context) ThrowError(err any) {
	if he, ok := err.(*HTTPError); ok {
		c.Throw(he.Status, he.Message)
		return
	}
	c.Throw(http.StatusInternalServerError, err)
}

// JSON encodes v as the response body with an application/json type.
func (c *Context) JSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode json body: %w", err)
	}
	c.SetType("json")
	c.SetBody(data)
	return nil
}

// Render renders a view through the configured renderer and assigns it as the body.
func (c *Context) Render(view string, data any) error {
	out, err := c.RenderString(view, data)
	if err != nil {
		return err
	}
	c.SetBody(out)
	return nil
}

// RenderString renders a view without touching the response.
func (c *Context) RenderString(view string, data any) (string, error) {
	if c.renderer == nil {
		return "", ErrNoRenderer
	}
	return c.renderer.Render(c, view, data)
}

// Component renders a templ component and assigns it as an HTML body.
func (c *Context) Component(component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(c, &buf); err != nil {
		return fmt.Errorf("templ component render error: %w", err)
	}
	c.SetType("html")
	c.SetBody(buf.String())
	return nil
}

// Hijack hands the raw writer to the caller, e.g. for a websocket upgrade.
// After it returns, the finalizer no longer writes a response for this request.
func (c *Context) Hijack() (http.ResponseWriter, *http.Request, error) {
	if c.hijacked {
		return nil, nil, ErrHijacked
	}
	c.hijacked = true
	return c.w, c.r, nil
}

// Hijacked reports whether Hijack was called.
func (c *Context) Hijacked() bool { return c.hijacked }

// WriteResponse transmits status, headers and body to w.
// HEAD requests and statuses that forbid a body (1xx, 204, 304) receive headers only.
func (c *Context) WriteResponse(w http.ResponseWriter) error {
	dst := w.Header()
	for name, values := range c.header {
		dst[name] = values
	}
	status := c.status
	if status < 100 || status > 999 {
		status = http.StatusInternalServerError
	}
	if !bodyAllowed(status) {
		dst.Del("Content-Length")
	}
	w.WriteHeader(status)

	if c.method == http.MethodHead || c.body == nil || !bodyAllowed(status) {
		if closer, ok := c.body.(io.Closer); ok {
			return closer.Close()
		}
		return nil
	}

	var err error
	switch b := c.body.(type) {
	case []byte:
		_, err = w.Write(b)
	case string:
		_, err = io.WriteString(w, b)
	case io.Reader:
		_, err = io.Copy(w, b)
		if closer, ok := b.(io.Closer); ok {
			if cerr := closer.Close(); err == nil {
				err = cerr
			}
		}
	}
	return err
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
