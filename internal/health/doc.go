// Package health verifies a dnaspec installation.
//
// A verification runs four checks:
//
//	cli     - the dnaspec executable is on PATH
//	python  - a Python interpreter is available
//	import  - the core Python module imports cleanly
//	git     - git is installed
//
// The summary is represented by Status:
//
//	StatusHealthy  - every check passed
//	StatusDegraded - Python works but another check failed
//	StatusBroken   - no Python interpreter was found
//
// Usage:
//
//	result := health.Check(ctx, health.CheckOptions{Executor: exec, WorkDir: dir})
//	status := result.Summary()
package health
