package main

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/dws/app"
	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/health"
	"github.com/dmitrymomot/dws/core/logger"
	"github.com/dmitrymomot/dws/core/router"
	"github.com/dmitrymomot/dws/core/server"
	"github.com/dmitrymomot/dws/core/static"
	"github.com/dmitrymomot/dws/middleware"
)

//go:embed views
var views embed.FS

//go:embed public
var public embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		logger.New().Error("failed to create app", logger.Error(err))
		os.Exit(1)
	}
	log := a.Logger()

	err = a.Listen(ctx, "", func(s *server.Server) {
		log.Info("server started", logger.Component("example"), "addr", s.Addr(), "env", a.Env())
	})
	if err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}

func newApp(opts ...app.Option) (*app.App, error) {
	a, err := app.New(append([]app.Option{app.WithViewFS(views)}, opts...)...)
	if err != nil {
		return nil, err
	}

	publicFS, err := fs.Sub(public, "public")
	if err != nil {
		return nil, err
	}

	a.Get("/live", health.Liveness)
	a.Get("/ready", health.Readiness(a.Logger(), func(ctx context.Context) error {
		_, err := a.Views().Load(ctx, "index.html")
		return err
	}))

	a.Use(middleware.RequestID())
	a.Use(middleware.LoggingWithLogger(a.Logger().With(logger.Component("http.request"))))
	a.Use(middleware.SecurityHeaders())
	a.Use(static.ServeFS(publicFS, static.WithMaxAge(600)))

	a.Get("/index.html", func(ctx *handler.Context, next handler.Next) error {
		ctx.Redirect("/")
		return nil
	})

	a.Get("/", func(ctx *handler.Context, next handler.Next) error {
		return ctx.Render("index.html", map[string]string{"username": "James"})
	})

	a.MethodRegexp(router.MethodAll, regexp.MustCompile(`(?i)hallo`), handler.Chain(
		requestFacts,
		func(ctx *handler.Context, next handler.Next) error {
			ctx.Set("X-Hallo", "1")
			return next()
		},
	))

	a.Get("/ws", middleware.WebSocket(echo))

	return a, nil
}

// requestFacts renders what the framework parsed from the request.
func requestFacts(ctx *handler.Context, next handler.Next) error {
	data, err := json.MarshalIndent(map[string]any{
		"method":  ctx.Method(),
		"query":   ctx.Query(),
		"body":    ctx.RequestBody(),
		"cookies": ctx.Cookies(),
	}, "", "    ")
	if err != nil {
		return err
	}
	if err := ctx.Render("data.html", map[string]string{"data": string(data)}); err != nil {
		return err
	}
	return next()
}

func echo(ctx *handler.Context, conn *websocket.Conn) error {
	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if err := conn.WriteMessage(mt, msg); err != nil {
			return err
		}
	}
}
