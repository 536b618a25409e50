package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/audit"
	"github.com/ptreezh/dnaspec-cli/internal/cleanup"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
)

var (
	cleanupDryRun   bool
	cleanupSkipNPM  bool
	cleanupNoReport bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove caches, build artifacts and temporary files",
	Long: `Cleans the current directory:
  - Python caches (__pycache__, *.pyc, *.pyo)
  - build artifacts (build, dist, *.egg-info)
  - temporary files, logs and coverage data
  - editor backups and IDE settings
  - the npm cache and node_modules/.cache

Installed dnaspec Python packages are listed but never removed. A report is
written to dnaspec-cleanup-report.json.`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "Show what would be removed without deleting anything")
	cleanupCmd.Flags().BoolVar(&cleanupSkipNPM, "skip-npm", false, "Do not run npm cache clean")
	cleanupCmd.Flags().BoolVar(&cleanupNoReport, "no-report", false, "Do not write the cleanup report")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	opts := cleanup.DefaultOptions()
	opts.DryRun = cleanupDryRun
	opts.SkipNPM = cleanupSkipNPM
	opts.PythonCandidates = settings().PythonCandidates

	cleaner := cleanup.New(executor(), paths().WorkDir, opts)
	rep := cleaner.Run(ctx)
	stats := rep.Statistics

	fmt.Fprintln(cmd.OutOrStdout())
	logInfo("%s", i18n.T("cleanup.summary", map[string]any{
		"Items": stats.TotalItems,
		"Files": stats.TotalFiles,
		"Size":  humanize.Bytes(uint64(stats.TotalSizeBytes)),
	}))
	if stats.TotalFailed > 0 {
		logWarning("%s", i18n.T("cleanup.summary_failed", map[string]any{"Count": stats.TotalFailed}))
	}
	if cleanupDryRun {
		logInfo("%s", i18n.T("cleanup.dry_run_note"))
	}

	if !cleanupNoReport {
		path, err := cleaner.WriteReport(rep)
		if err != nil {
			logWarning("%s", i18n.T("report.write_failed", map[string]any{"Error": err.Error()}))
		} else {
			logSuccess("%s", i18n.T("report.written", map[string]any{"Path": path}))
		}
	}

	details := fmt.Sprintf("mode=%s items=%d failed=%d", rep.Mode, stats.TotalItems, stats.TotalFailed)
	recordRun(audit.EventCleanup, "cleanup", details, nil)
	return nil
}
