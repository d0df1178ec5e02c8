// Package mimetype resolves MIME types from file names, extensions or
// short type tokens like "html" and "json".
package mimetype

import (
	"mime"
	"path"
	"strings"
)

var types = map[string]string{
	"html":        "text/html",
	"htm":         "text/html",
	"text":        "text/plain",
	"txt":         "text/plain",
	"md":          "text/markdown",
	"css":         "text/css",
	"csv":         "text/csv",
	"xml":         "application/xml",
	"js":          "application/javascript",
	"mjs":         "application/javascript",
	"ts":          "application/typescript",
	"json":        "application/json",
	"map":         "application/json",
	"webmanifest": "application/manifest+json",
	"wasm":        "application/wasm",
	"pdf":         "application/pdf",
	"zip":         "application/zip",
	"gz":          "application/gzip",
	"tar":         "application/x-tar",
	"form":        "application/x-www-form-urlencoded",
	"urlencoded":  "application/x-www-form-urlencoded",
	"multipart":   "multipart/form-data",
	"bin":         "application/octet-stream",
	"png":         "image/png",
	"jpg":         "image/jpeg",
	"jpeg":        "image/jpeg",
	"gif":         "image/gif",
	"webp":        "image/webp",
	"avif":        "image/avif",
	"svg":         "image/svg+xml",
	"ico":         "image/x-icon",
	"bmp":         "image/bmp",
	"woff":        "font/woff",
	"woff2":       "font/woff2",
	"ttf":         "font/ttf",
	"otf":         "font/otf",
	"mp3":         "audio/mpeg",
	"wav":         "audio/wav",
	"ogg":         "audio/ogg",
	"mp4":         "video/mp4",
	"webm":        "video/webm",
}

// Lookup returns the MIME type for value. A value containing "/" is treated as a
// MIME type already and returned unchanged. Anything else is reduced to its extension
// ("index.html", ".html" and "html" all resolve alike) and looked up in the built-in
// table, then in the system registry. It returns "" when nothing matches.
func Lookup(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if isMediaType(value) {
		return value
	}

	ext := strings.ToLower(path.Base(value))
	if i := strings.LastIndexByte(ext, '.'); i >= 0 {
		ext = ext[i+1:]
	}
	if ext == "" {
		return ""
	}

	if t, ok := types[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension("." + ext); t != "" {
		return t
	}
	return ""
}

var topLevel = map[string]bool{
	"application": true,
	"audio":       true,
	"font":        true,
	"image":       true,
	"message":     true,
	"model":       true,
	"multipart":   true,
	"text":        true,
	"video":       true,
}

// isMediaType reports whether value looks like "type/subtype[; params]".
func isMediaType(value string) bool {
	top, rest, ok := strings.Cut(value, "/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return false
	}
	return topLevel[strings.ToLower(top)]
}
