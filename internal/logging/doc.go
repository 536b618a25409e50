// Package logging provides logging utilities for dnaspec.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog and tint)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("cloning repository", "url", url, "dest", dest)
//	logging.Warn("mirror timed out", "url", url, "timeout", timeout)
//
// # User Output
//
// User-facing messages are formatted with colored status indicators:
//
//	logging.UserInfo("Checking dependencies...")
//	logging.UserSuccess("Cloned from %s", url)
//	logging.UserWarning("Python cache not found")
//	logging.UserError("Installation failed: %v", err)
//
// Output destinations default to stdout (info, success, steps) and stderr
// (warnings, errors). SetUserOutput redirects both, which the command layer
// uses to route output through cobra's writers.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
