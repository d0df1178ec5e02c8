// Package app assembles a ready-to-serve application: configuration from the
// environment, a logger, the middleware registry, the view engine and the HTTP server.
//
//	a, err := app.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	a.Use(static.Serve("public", static.WithMaxAge(600)))
//	a.Get("/", func(ctx *handler.Context, next handler.Next) error {
//		return ctx.Render("index.html", map[string]string{"username": "James"})
//	})
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := a.Listen(ctx, ":8000"); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration
//
// New reads Config with core/config:
//
//	DWS_ENV             development | production (selects the log format)
//	DWS_SILENT          suppress logging in the default error handler
//	DWS_VIEWS_DIR       directory for relative view names (default "views")
//	DWS_MAX_BODY_BYTES  request body limit for ParseBody (default 32MB)
//	LOG_LEVEL           overrides the environment's log level
//	SERVER_*            listener address, timeouts and header limits
package app
