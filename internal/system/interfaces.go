// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kballard/go-shellquote"
)

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds KEY=VALUE pairs added on top of the parent environment.
	Env []string

	// Timeout bounds the run. Zero means no limit beyond ctx.
	Timeout time.Duration

	// Stdin, Stdout and Stderr are used by Run. Nil means the
	// corresponding stream of the current process.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Cmd builds a Command from a program name and arguments.
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// String renders the command line with shell quoting.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Output runs a command and returns its combined output.
	Output(ctx context.Context, cmd Command) ([]byte, error)

	// Run runs a command with its streams connected to the terminal
	// (or the writers set on cmd).
	Run(ctx context.Context, cmd Command) error

	// LookPath searches PATH for an executable.
	LookPath(name string) (string, error)
}

// ExitError reports a command that started but exited non-zero.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

// ErrTimeout is wrapped by errors from commands that hit their Timeout.
var ErrTimeout = errors.New("command timed out")

// ExitCode returns the exit status carried by err: 0 for nil, the process
// code for an ExitError and -1 for anything else (failed to start, timeout).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

var defaultExecutor CommandExecutor = &osExecutor{}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultExecutor = &osExecutor{}
}
