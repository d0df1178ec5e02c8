// Package middleware provides handlers for common cross-cutting concerns: request IDs,
// request logging, CORS, security headers and websocket upgrades.
//
// Every constructor returns a handler.HandlerFunc, so middleware is registered like
// any other handler and composes through next:
//
//	r := router.New()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.Logging())
//	r.Use(middleware.SecurityHeaders())
//
// # Configuration
//
// Each middleware has a default constructor and a WithConfig variant taking a
// config struct. Every config has a Skip func to bypass the middleware for
// selected requests:
//
//	r.Use(middleware.LoggingWithConfig(middleware.LoggingConfig{
//		Skip: func(ctx *handler.Context) bool { return ctx.Path() == "/health" },
//	}))
//
// # Request IDs
//
// RequestID stores the ID in the request context and the X-Request-ID response
// header. Use GetRequestID to read it in later handlers; Logging attaches it to
// its log lines automatically.
//
// # Websockets
//
// WebSocket hijacks the response and upgrades handshake requests with
// gorilla/websocket. Plain requests to the same route continue down the chain.
package middleware
