package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// User-facing output functions with status prefixes.
// These write to the configured stdout/stderr pair for CLI output,
// separate from the structured debug logging.

var (
	outMu  sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	infoPrefix    = color.New(color.FgCyan).Sprint("ℹ")
	successPrefix = color.New(color.FgGreen).Sprint("✓")
	warningPrefix = color.New(color.FgYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgRed).Sprint("✗")
)

// SetUserOutput redirects user output. Nil writers restore the defaults.
func SetUserOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

// Stdout returns the writer used for user output.
func Stdout() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return stdout
}

// Stderr returns the writer used for user warnings and errors.
func Stderr() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return stderr
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(Stdout(), infoPrefix+" "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(Stdout(), successPrefix+" "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(Stderr(), warningPrefix+" "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(Stderr(), errorPrefix+" "+format+"\n", args...)
}

// UserStep prints a numbered pipeline step header to stdout.
func UserStep(n int, format string, args ...interface{}) {
	header := color.New(color.Bold).Sprintf("[%d]", n)
	fmt.Fprintf(Stdout(), header+" "+format+"\n", args...)
}
