//go:build !windows

package system

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts cmd in a new process group and makes context
// cancellation kill every process in it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
