package app

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/dmitrymomot/dws/core/config"
	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/logger"
	"github.com/dmitrymomot/dws/core/router"
	"github.com/dmitrymomot/dws/core/server"
	"github.com/dmitrymomot/dws/core/view"
)

// App bundles the middleware registry with its view engine, logger and HTTP server.
// Registration methods come from the embedded router; App is itself an http.Handler.
type App struct {
	*router.Router

	config       Config
	logger       *slog.Logger
	views        *view.Engine
	errorHandler handler.ErrorHandler
	viewOpts     []view.Option
	serverOpts   []server.Option

	mu     sync.Mutex
	server *server.Server
}

// New creates an App. The configuration is read from the environment (and .env)
// first; options such as WithConfig or WithEnv are applied on top of it.
func New(opts ...Option) (*App, error) {
	a := &App{}
	if err := config.Load(&a.config); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.logger == nil {
		a.logger = newLogger(a.config)
	}

	if a.views == nil {
		viewOpts := append([]view.Option{
			view.WithDir(a.config.ViewsDir),
			view.WithLogger(a.logger),
		}, a.viewOpts...)
		a.views = view.New(viewOpts...)
	}

	routerOpts := []router.Option{
		router.WithLogger(a.logger),
		router.WithSilent(a.config.Silent),
		router.WithRenderer(a.views),
		router.WithMaxBodyBytes(a.config.MaxBodyBytes),
	}
	if a.errorHandler != nil {
		routerOpts = append(routerOpts, router.WithErrorHandler(a.errorHandler))
	}
	a.Router = router.New(routerOpts...)

	return a, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() Config { return a.config }

// Env returns the environment name, "development" unless configured otherwise.
func (a *App) Env() string { return a.config.Env }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Views returns the view engine used by Context.Render.
func (a *App) Views() *view.Engine { return a.views }

// Listen serves the App on addr until ctx is canceled, then shuts the server down
// gracefully. An empty addr uses the configured server address. The setup callbacks
// run once the address is bound, e.g. to log or publish the actual address.
func (a *App) Listen(ctx context.Context, addr string, setup ...func(*server.Server)) error {
	cfg := a.config.Server
	if addr != "" {
		cfg.Addr = addr
	}

	opts := append([]server.Option{
		server.WithLogger(a.logger),
		server.WithSetup(setup...),
	}, a.serverOpts...)

	srv, err := server.NewFromConfig(cfg, opts...)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.server = srv
	a.mu.Unlock()

	return srv.Run(ctx, a)()
}

// Run provides errgroup compatibility: the returned function listens on the
// configured address until ctx is canceled.
func (a *App) Run(ctx context.Context) func() error {
	return func() error {
		return a.Listen(ctx, "")
	}
}

// Shutdown stops the server started by Listen, if any, and drops cached views.
func (a *App) Shutdown() error {
	a.mu.Lock()
	srv := a.server
	a.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Stop()
	}
	a.views.Purge()
	return err
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{logger.WithOutput(os.Stdout)}
	if cfg.Env == EnvProduction {
		opts = append(opts, logger.WithProduction("dws"))
	} else {
		opts = append(opts, logger.WithDevelopment("dws"))
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}
