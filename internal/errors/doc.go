// Package errors provides typed errors with exit codes for dnaspec.
//
// # Error Types
//
// CLIError is the base error type that wraps an error with a kind and an
// exit code:
//
//	type CLIError struct {
//	    Kind    Kind   // Error category
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Fatal pipeline failures (missing tools, exhausted clone sources, exhausted
// install methods) exit 1. A failing child script is reported with
// ChildExit, which carries the child's own exit code so the wrapper exits
// with the same status.
//
// # Error Constructors
//
//	errors.MissingDependency("git", err)
//	errors.CloneFailed(err)
//	errors.InstallFailed(err)
//	errors.ChildExit("run_auto_config.py", 3)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
