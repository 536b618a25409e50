package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for dnaspec
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// Kind classifies a CLIError independently of its exit code.
type Kind string

const (
	KindGeneral           Kind = "general"
	KindMissingDependency Kind = "missing-dependency"
	KindCloneFailed       Kind = "clone-failed"
	KindInstallFailed     Kind = "install-failed"
	KindChildExit         Kind = "child-exit"
	KindConfig            Kind = "config"
	KindValidation        Kind = "validation"
	KindFilesystem        Kind = "filesystem"
	KindAborted           Kind = "aborted"
)

// CLIError is the base error type for dnaspec
type CLIError struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CLIError) ExitCode() int {
	return e.Code
}

// New creates a new CLIError of the general kind
func New(code int, message string) *CLIError {
	return &CLIError{
		Kind:    KindGeneral,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CLIError of the general kind
func Wrap(code int, message string, cause error) *CLIError {
	return &CLIError{
		Kind:    KindGeneral,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func newKind(kind Kind, code int, message string, cause error) *CLIError {
	return &CLIError{Kind: kind, Code: code, Message: message, Cause: cause}
}

// Common error constructors

// MissingDependency returns an error for a required tool that is not installed
func MissingDependency(tool string, cause error) *CLIError {
	return newKind(KindMissingDependency, ExitGeneralError, fmt.Sprintf("%s not found", tool), cause)
}

// CloneFailed returns an error after every clone source failed
func CloneFailed(cause error) *CLIError {
	return newKind(KindCloneFailed, ExitGeneralError, "failed to clone repository from all sources", cause)
}

// InstallFailed returns an error after every install method failed
func InstallFailed(cause error) *CLIError {
	return newKind(KindInstallFailed, ExitGeneralError, "failed to install package", cause)
}

// ChildExit returns an error carrying a child process exit code.
// Codes that cannot be passed through (zero or negative) become 1.
func ChildExit(name string, code int) *CLIError {
	exit := code
	if exit <= 0 {
		exit = ExitGeneralError
	}
	return newKind(KindChildExit, exit, fmt.Sprintf("%s exited with code %d", name, code), nil)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CLIError {
	return newKind(KindConfig, ExitGeneralError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *CLIError {
	return newKind(KindValidation, ExitGeneralError, message, nil)
}

// FilesystemError returns an error for filesystem operations
func FilesystemError(op, path string, cause error) *CLIError {
	return newKind(KindFilesystem, ExitGeneralError, fmt.Sprintf("%s %s failed", op, path), cause)
}

// Aborted returns an error for an operation the user declined
func Aborted(message string) *CLIError {
	return newKind(KindAborted, ExitGeneralError, message, nil)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode()
	}
	return ExitGeneralError
}

// KindOf returns the kind of the first CLIError in err's chain
func KindOf(err error) Kind {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Kind
	}
	return KindGeneral
}

// IsKind reports whether err's chain contains a CLIError of the given kind
func IsKind(err error, kind Kind) bool {
	var cliErr *CLIError
	return errors.As(err, &cliErr) && cliErr.Kind == kind
}

// Attempts joins the messages of several failed attempts into one error.
func Attempts(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("%d attempts failed: %s", len(errs), strings.Join(msgs, "; "))
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
