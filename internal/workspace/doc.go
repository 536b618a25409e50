// Package workspace resolves and prepares the project checkout a dnaspec
// run operates on.
//
// # Sources
//
// Resolve picks exactly one source from filesystem signals:
//
//	in-place        work dir has src/, pyproject.toml and package.json
//	existing-clone  <work>/<temp_dir>/<repo_dir> already exists
//	clone           anything else
//
// # Cloning
//
// Cloner tries each mirror URL in order with "git clone <url> <dest>", each
// bounded by its own timeout. The first success wins. If every mirror fails,
// Workspace.Prepare removes the temp directory.
//
// All paths are explicit; nothing changes the process working directory.
package workspace
