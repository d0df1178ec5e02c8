// Package dws is a small web framework built around an ordered chain of
// middleware. Every handler receives the request Context and a next function;
// calling next runs the rest of the chain and returns when it has finished, so
// code after the call sees the response the downstream handlers produced.
//
// # Packages
//
//   - core/handler: the per-request Context, request parsing and the response builder
//   - core/router: the middleware registry, the dispatcher and the http.Handler that finalizes responses
//   - core/static: middleware serving files from a directory or fs.FS
//   - core/view: html/template rendering with a shared load cache
//   - core/server: http.Server lifecycle with graceful shutdown
//   - core/config: environment configuration via caarlos0/env and .env files
//   - core/logger: slog construction and attribute helpers
//   - core/health: liveness and readiness probes
//   - middleware: request IDs, request logging, CORS, security headers, websockets
//   - pkg/async: a settle-once Future
//   - pkg/mimetype: extension to media type lookup
//   - pkg/reload: file watching and process restarts for development
//   - app: configuration, logger, router, views and server assembled together
//
// # Example
//
//	a, err := app.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	a.Use(func(ctx *handler.Context, next handler.Next) error {
//		start := time.Now()
//		err := next()
//		ctx.Set("X-Response-Time", time.Since(start).String())
//		return err
//	})
//	a.Get("/", func(ctx *handler.Context, next handler.Next) error {
//		ctx.SetBody("hello")
//		return nil
//	})
//
//	log.Fatal(a.Listen(context.Background(), ":8000"))
//
// The commands under cmd/ are a sample application and dws-dev, which restarts
// a command whenever files change.
package dws
