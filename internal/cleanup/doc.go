// Package cleanup removes Python caches, build artifacts, temp files and
// editor leftovers from a dnaspec working directory.
//
// Every category is optional and all of them are enabled by default.
// Removal failures are recorded per item and never stop the run. A dry run
// measures everything it would remove without touching the disk.
//
// Usage:
//
//	c := cleanup.New(system.DefaultExecutor(), workDir, cleanup.DefaultOptions())
//	rep := c.Run(ctx)
//	path, err := c.WriteReport(rep)
package cleanup
