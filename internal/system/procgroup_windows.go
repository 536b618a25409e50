//go:build windows

package system

import "os/exec"

// killProcessGroup keeps the default cancellation on Windows, where
// WaitDelay alone bounds the wait.
func killProcessGroup(cmd *exec.Cmd) {}
