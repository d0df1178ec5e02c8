package reload

import "errors"

var (
	ErrNoCommand      = errors.New("reload: no command to run")
	ErrAlreadyRunning = errors.New("reload: process already running")
)
