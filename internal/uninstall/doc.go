// Package uninstall finds and removes everything a dnaspec installation
// leaves behind: temp checkouts, Python and npm packages, AI platform
// files, project config files, build output and .npmrc entries.
//
// A Scanner builds a Plan without changing anything. The plan can be shown
// as a dry run (see DryRunReport and NpmrcEdit.Diff) or applied with
// Execute, which removes each item independently and collects failures.
package uninstall
