//go:build !unix

package reload

import (
	"os"
	"os/exec"
)

func prepare(*exec.Cmd) {}

func interrupt(cmd *exec.Cmd) error {
	return cmd.Process.Signal(os.Interrupt)
}

func kill(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
