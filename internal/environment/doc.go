// Package environment detects the tools dnaspec depends on.
//
// Detection always shells out to "<tool> --version" through a
// system.CommandExecutor, so tests can script every version check:
//
//	d := environment.NewDetector(system.DefaultExecutor(), settings.PythonCandidates)
//	env, err := d.Require(ctx, true) // python (python, python3[, py]) and git
//
// Python candidates are tried in order and the first one that answers wins.
// A missing Python or Git is reported as errors.MissingDependency.
package environment
