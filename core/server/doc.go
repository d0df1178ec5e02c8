// Package server wraps http.Server with graceful shutdown, production timeouts and
// structured logging.
//
// # Basic Usage
//
//	srv := server.New(":8080", server.WithLogger(log))
//	if err := server.Run(ctx, ":8080", handler); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// # Lifecycle
//
// Start binds the listener first, so address errors are returned immediately and
// Addr reports the real port when ":0" was requested. Setup callbacks registered with
// WithSetup run after the bind and before the first connection is accepted.
//
// Run returns a func() error for errgroup:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// # Configuration
//
// Config carries env tags for core/config:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
package server
