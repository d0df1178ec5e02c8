// Command dws-dev runs a command and restarts it whenever files below a directory change.
//
//	dws-dev -dir . -- go run ./cmd/example
//
// Without a command it runs "go run .".
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/dws/core/logger"
	"github.com/dmitrymomot/dws/pkg/reload"
)

func main() {
	dir := flag.String("dir", ".", "directory to watch recursively")
	debounce := flag.Duration("debounce", reload.DefaultDebounce, "quiet period before a restart")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log := logger.New(logger.WithLevel(logger.ParseLevel(*level)), logger.WithAttr(logger.Component("dws-dev")))

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"go", "run", "."}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := reload.NewWatcher(*dir, reload.WithDebounce(*debounce), reload.WithWatcherLogger(log))
	if err != nil {
		log.Error("failed to watch directory", logger.File(*dir), logger.Error(err))
		os.Exit(1)
	}
	defer w.Close()

	r := reload.NewRunner(args[0], args[1:], reload.WithRunnerLogger(log))
	if err := r.Start(); err != nil {
		log.Error("failed to start process", logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return w.Run(ctx, func() {
			if err := r.Restart(); err != nil {
				log.Error("failed to restart process", logger.Error(err))
			}
		})
	})
	eg.Go(func() error {
		<-ctx.Done()
		return r.Stop()
	})

	if err := eg.Wait(); err != nil {
		log.Error("dev server stopped", logger.Error(err))
		os.Exit(1)
	}
}
