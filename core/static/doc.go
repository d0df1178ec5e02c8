// Package static provides middleware for serving files from a directory or any fs.FS.
//
// The middleware resolves the request path against the root and serves the file it
// finds, falling back to an index file for directories:
//
//	r := router.New()
//	r.Use(static.Serve("public", static.WithMaxAge(600)))
//
// Files are read whole and assigned as the response body, so later middleware can
// still inspect or replace them. Requests that match nothing are passed on with a
// 404 status; dotfiles and directories without an index get 403 unless configured
// otherwise.
//
// # Deferred serving
//
// With WithDefer the rest of the chain runs first and the file is only served if
// the response is still an empty 404 afterwards. This lets application routes take
// precedence over files with the same path.
//
// # Options
//
//   - WithIndex(name) / WithoutIndex() control directory requests
//   - WithHidden() allows paths with dot segments
//   - WithMaxAge(seconds) and WithImmutable() shape Cache-Control
//   - WithHeaders(fn) sets extra headers per file
package static
