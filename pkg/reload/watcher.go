package reload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/dws/core/logger"
)

// Watcher reports changes anywhere below a root directory.
// Directories created after start are watched as they appear.
type Watcher struct {
	root     string
	debounce time.Duration
	ignore   func(path string) bool
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher registers root and every directory below it. Changes made after it
// returns are reported by Run.
func NewWatcher(root string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		ignore:   isHidden,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("reload: create watcher: %w", err)
	}
	w.fsw = fsw

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run calls onChange once per burst of events, after the debounce period has
// passed without further events. It blocks until ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", logger.Component("reload"), logger.File(event.Name), logger.Error(err))
					}
				}
			}
			w.logger.Debug("file changed", logger.Component("reload"), logger.File(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watcher overflow", logger.Component("reload"))
				timer.Reset(w.debounce)
				continue
			}
			return fmt.Errorf("reload: watch %s: %w", w.root, err)
		case <-timer.C:
			onChange()
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return !w.ignore(event.Name)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("reload: walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignore(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("reload: watch %s: %w", path, err)
		}
		return nil
	})
}

func isHidden(path string) bool {
	name := filepath.Base(path)
	return name != "." && name != ".." && strings.HasPrefix(name, ".")
}
