package reload

import (
	"io"
	"log/slog"
	"time"
)

const (
	// DefaultDebounce is the quiet period after the last file event before a restart.
	DefaultDebounce = 100 * time.Millisecond
	// DefaultStopTimeout bounds how long an interrupted process may take to exit before it is killed.
	DefaultStopTimeout = 5 * time.Second
)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period that coalesces bursts of events.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnore replaces the default filter, which skips dot-prefixed files and directories.
// The function receives the full path of the event.
func WithIgnore(fn func(path string) bool) WatcherOption {
	return func(w *Watcher) {
		if fn != nil {
			w.ignore = fn
		}
	}
}

// WithWatcherLogger sets the watcher's logger.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDir sets the working directory of the child process.
func WithDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithOutput redirects the child's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithStopTimeout sets how long to wait after the interrupt before killing the process.
func WithStopTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.stopTimeout = d
		}
	}
}

// WithRunnerLogger sets the runner's logger.
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}
