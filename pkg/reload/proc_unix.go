//go:build unix

package reload

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// prepare puts the child in its own process group so signals reach the
// processes it spawns too, e.g. the binary started by "go run".
func prepare(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func interrupt(cmd *exec.Cmd) error {
	return unix.Kill(-cmd.Process.Pid, unix.SIGINT)
}

func kill(cmd *exec.Cmd) error {
	return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
}
