package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// waitDelay bounds how long a cancelled command may keep its output pipes
// open through surviving grandchildren.
const waitDelay = 2 * time.Second

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) Output(ctx context.Context, c Command) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, c)
	defer cancel()

	cmd := e.build(ctx, c)
	// A timeout kills the whole tree; git clone spawns git-remote-https.
	killProcessGroup(cmd)
	out, err := cmd.CombinedOutput()
	return out, e.wrapErr(ctx, c, err)
}

func (e *osExecutor) Run(ctx context.Context, c Command) error {
	ctx, cancel := withTimeout(ctx, c)
	defer cancel()

	cmd := e.build(ctx, c)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if c.Stdin != nil {
		cmd.Stdin = c.Stdin
	}
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}
	return e.wrapErr(ctx, c, cmd.Run())
}

func (e *osExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (e *osExecutor) build(ctx context.Context, c Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = waitDelay
	if len(c.Env) > 0 {
		cmd.Env = MergeEnv(os.Environ(), c.Env)
	}
	return cmd
}

func (e *osExecutor) wrapErr(ctx context.Context, c Command, err error) error {
	if err == nil {
		return nil
	}
	if c.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w after %s", c.Name, ErrTimeout, c.Timeout)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Name: c.Name, Code: exitErr.ExitCode()}
	}
	return err
}

func withTimeout(ctx context.Context, c Command) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return context.WithCancel(ctx)
}
