package handler

import (
	"net/url"
	"strings"
)

// ParseQuery splits a query string into key/value pairs.
// Segments are separated by "&" and split at the first "="; a key without "=" maps to "".
// Keys and values are percent-decoded ("+" is kept literally). Segments that fail to
// decode keep their raw text. Empty keys are skipped and later duplicates win.
func ParseQuery(query string) map[string]string {
	values := make(map[string]string)
	for _, item := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(strings.TrimSpace(item), "=")
		if key == "" {
			continue
		}
		values[unescape(key)] = unescape(value)
	}
	return values
}

func unescape(s string) string {
	if s == "" {
		return ""
	}
	v, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return v
}
