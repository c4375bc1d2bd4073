//go:build !unix

package executor

import (
	"os"
	"os/exec"
)

func setProcessGroup(cmd *exec.Cmd) {}

func interruptGroup(cmd *exec.Cmd) {
	_ = cmd.Process.Signal(os.Interrupt)
}

func killGroup(cmd *exec.Cmd) {
	_ = cmd.Process.Kill()
}
