// Package router provides the dws middleware registry and request dispatcher.
//
// A Router holds an ordered list of handlers. Each entry is guarded by a method
// predicate and a path predicate; a request that does not match an entry falls
// through to the next one. Matching handlers receive the shared *handler.Context and
// decide whether to continue by calling next.
//
// # Registration
//
//	r := router.New(router.WithLogger(log))
//
//	// every request
//	r.Use(func(ctx *handler.Context, next handler.Next) error {
//		if err := next(); err != nil {
//			return err
//		}
//		ctx.Set("X-Powered-By", "dws")
//		return nil
//	})
//
//	// exact path, GET only
//	r.Get("/", func(ctx *handler.Context, next handler.Next) error {
//		return ctx.Render("index.html", nil)
//	})
//
//	// any method, path matched by a regular expression
//	r.HandleRegexp(regexp.MustCompile(`(?i)hallo`), hallo)
//
// Methods compare case-insensitively; "" and MethodAll match any method. Literal
// paths compare exactly against the decoded request path.
//
// # Dispatch
//
// Dispatch walks the list with a cursor. Calling next twice from the same handler
// returns ErrNextCalledMultipleTimes. Errors returned by a handler propagate back
// through every pending next call. Panics are recovered at the step where they
// happen and surface as PanicError values.
//
// # Serving
//
// ServeHTTP decodes POST bodies, dispatches, passes any escaped error to the error
// hook and finalizes the response. An error on a response whose status was never
// assigned turns it into a 500 before the hook sees it. The default hook logs the error with an indented
// description unless WithSilent(true) is set. If the body is still absent and the
// status is not 200, the status text becomes the body before the response is written.
package router
