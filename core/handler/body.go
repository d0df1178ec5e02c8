package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/dmitrymomot/dws/core/logger"
)

// multipartMemory is how much of a multipart form is kept in memory; the rest spills to
// temporary files that net/http removes once the request completes.
const multipartMemory = 10 << 20

// Fields is a decoded form or an empty body mapping.
//
// URL-encoded bodies hold string values. Multipart bodies hold a string for a single
// value, []string for repeated ones, *multipart.FileHeader for a single file and
// []*multipart.FileHeader for several.
type Fields map[string]any

// RequestBody returns the parsed request body: Fields, a decoded JSON value, or a string
// for text/* content. It is an empty Fields until ParseBody succeeds.
func (c *Context) RequestBody() any { return c.requestBody }

// ParseBody decodes a POST body once per request and caches the result.
// Later calls return the cached value without reading again, even when the first
// attempt failed. Other methods return the current value untouched.
//
// Decoding follows Content-Type:
//   - multipart/form-data with a boundary: form fields and files
//   - application/x-www-form-urlencoded: same rules as ParseQuery
//   - application/json: any JSON value; malformed input yields empty Fields
//   - text/*: a string decoded with the declared charset (utf-8 by default)
//   - anything else: the body is left as is
func (c *Context) ParseBody() any {
	if c.method != http.MethodPost || c.bodyParsed {
		return c.requestBody
	}
	c.bodyParsed = true

	contentType := c.Get("Content-Type")
	if contentType == "" {
		return c.requestBody
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		c.logger.Warn("cannot parse request content type",
			logger.Component("body"),
			logger.Error(err),
			logger.Path(c.path),
		)
		return c.requestBody
	}

	if c.r.Body != nil {
		c.r.Body = http.MaxBytesReader(c.w, c.r.Body, c.maxBodyBytes)
	}

	if mediaType == "multipart/form-data" {
		if params["boundary"] == "" {
			return c.requestBody
		}
		if err := c.r.ParseMultipartForm(multipartMemory); err != nil {
			c.logger.Warn("cannot read multipart body",
				logger.Component("body"),
				logger.Error(err),
				logger.Path(c.path),
			)
			return c.requestBody
		}
		c.requestBody = multipartFields(c.r)
		return c.requestBody
	}

	raw, err := c.readBody()
	if err != nil {
		c.logger.Warn("cannot read request body",
			logger.Component("body"),
			logger.Error(err),
			logger.Path(c.path),
		)
		return c.requestBody
	}
	text := c.decodeCharset(raw, params["charset"])

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		fields := make(Fields)
		for k, v := range ParseQuery(text) {
			fields[k] = v
		}
		c.requestBody = fields
	case mediaType == "application/json":
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			c.logger.Warn("error while parsing json body",
				logger.Component("body"),
				logger.Error(err),
				logger.Path(c.path),
			)
			c.requestBody = Fields{}
			break
		}
		c.requestBody = v
	case strings.HasPrefix(mediaType, "text/"):
		c.requestBody = text
	}

	return c.requestBody
}

func (c *Context) readBody() ([]byte, error) {
	if c.r.Body == nil {
		return nil, nil
	}
	raw, err := io.ReadAll(c.r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return raw, nil
}

// decodeCharset converts raw to UTF-8 text. Unknown charsets fall back to the raw bytes.
func (c *Context) decodeCharset(raw []byte, charset string) string {
	charset = strings.Trim(strings.TrimSpace(charset), `'"`)
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8") {
		return string(raw)
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		c.logger.Warn("unknown request charset", logger.Component("body"), logger.Error(err))
		return string(raw)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		c.logger.Warn("cannot decode request body", logger.Component("body"), logger.Error(err))
		return string(raw)
	}
	return string(out)
}

func multipartFields(r *http.Request) Fields {
	fields := make(Fields)
	form := r.MultipartForm
	if form == nil {
		return fields
	}
	for k, v := range form.Value {
		switch len(v) {
		case 0:
			fields[k] = ""
		case 1:
			fields[k] = v[0]
		default:
			fields[k] = v
		}
	}
	for k, f := range form.File {
		switch len(f) {
		case 0:
		case 1:
			fields[k] = f[0]
		default:
			fields[k] = f
		}
	}
	return fields
}
