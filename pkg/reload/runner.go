package reload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/dmitrymomot/dws/core/logger"
)

// Runner keeps one child process alive and replaces it on Restart.
// Safe for concurrent use.
type Runner struct {
	name        string
	args        []string
	dir         string
	stdout      io.Writer
	stderr      io.Writer
	stopTimeout time.Duration
	logger      *slog.Logger

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
}

// NewRunner creates a runner for the command. The child inherits the current
// process's stdout and stderr unless WithOutput is given.
func NewRunner(name string, args []string, opts ...RunnerOption) *Runner {
	r := &Runner{
		name:        name,
		args:        args,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		stopTimeout: DefaultStopTimeout,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the child process.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.start()
}

// Restart interrupts the running child, waits for it to exit and launches a new one.
func (r *Runner) Restart() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.stop(); err != nil {
		return err
	}
	r.logger.Info("restarting process", logger.Component("reload"), slog.String("cmd", r.name))
	return r.start()
}

// Stop interrupts the child and waits for it to exit. The process group is killed
// if it has not exited within the stop timeout.
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop()
}

// Running reports whether a child process is alive.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

func (r *Runner) start() error {
	if r.name == "" {
		return ErrNoCommand
	}
	if r.done != nil {
		select {
		case <-r.done:
		default:
			return ErrAlreadyRunning
		}
	}

	cmd := exec.Command(r.name, r.args...)
	cmd.Dir = r.dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Stdin = nil
	prepare(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("reload: start %s: %w", r.name, err)
	}

	done := make(chan struct{})
	go func() {
		err := cmd.Wait()
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			r.logger.Warn("process wait failed", logger.Component("reload"), logger.Error(err))
		}
		r.logger.Debug("process exited", logger.Component("reload"), slog.Int("pid", cmd.Process.Pid), slog.Int("exit_code", cmd.ProcessState.ExitCode()))
		close(done)
	}()

	r.cmd = cmd
	r.done = done
	r.logger.Info("process started", logger.Component("reload"), slog.String("cmd", r.name), slog.Int("pid", cmd.Process.Pid))
	return nil
}

func (r *Runner) stop() error {
	if r.cmd == nil {
		return nil
	}
	cmd, done := r.cmd, r.done
	r.cmd, r.done = nil, nil

	select {
	case <-done:
		return nil
	default:
	}

	if err := interrupt(cmd); err != nil {
		r.logger.Warn("failed to interrupt process", logger.Component("reload"), logger.Error(err))
	}

	select {
	case <-done:
		return nil
	case <-time.After(r.stopTimeout):
	}

	r.logger.Warn("process did not exit in time, killing", logger.Component("reload"), slog.Int("pid", cmd.Process.Pid))
	if err := kill(cmd); err != nil {
		return fmt.Errorf("reload: kill %s: %w", r.name, err)
	}
	<-done
	return nil
}
