package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/audit"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/tui"
	"github.com/ptreezh/dnaspec-cli/internal/uninstall"
)

var (
	uninstallDryRun bool
	uninstallYes    bool
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove DNASPEC packages, platform files and configuration",
	Long: `Finds everything DNASPEC installed and removes it:
  - temporary clone and workspace directories
  - DNASPEC Python packages (pip) and npm packages (global and local)
  - DNASPEC files in AI tool directories (~/.claude, ~/.cursor, ...)
  - project configuration and Python build files
  - DNASPEC lines in ~/.npmrc

Use --dry-run to preview without removing anything. A real run asks for
confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallDryRun, "dry-run", false, "Show what would be removed without removing anything")
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Remove without asking for confirmation")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	p := paths()
	scanner := uninstall.NewScanner(executor(), p.WorkDir, p.HomeDir)
	scanner.PythonCandidates = uninstallPythonCandidates()

	logInfo("%s", i18n.T("uninstall.scanning"))
	plan, err := scanner.Plan(ctx)
	if err != nil {
		return errors.FilesystemError("scan", p.WorkDir, err)
	}

	printPlan(cmd, plan)

	if uninstallDryRun {
		path, werr := uninstall.WriteDryRunReport(p.WorkDir, uninstall.NewDryRunReport(plan))
		if werr != nil {
			logWarning("%s", i18n.T("report.write_failed", map[string]any{"Error": werr.Error()}))
		} else {
			logSuccess("%s", i18n.T("report.written", map[string]any{"Path": path}))
		}
		logInfo("%s", i18n.T("uninstall.dry_run_note"))
		recordRun(audit.EventUninstall, "uninstall --dry-run", fmt.Sprintf("found=%d", len(plan.Items)), nil)
		return nil
	}

	if plan.Empty() {
		return nil
	}

	defer func() {
		recordRun(audit.EventUninstall, "uninstall", "", err)
	}()

	if !uninstallYes {
		if !tui.IsInteractive(cmd.InOrStdin()) {
			return errors.Aborted(i18n.T("uninstall.need_yes"))
		}
		ok, cerr := tui.Confirm(i18n.T("uninstall.confirm", map[string]any{"Count": len(plan.Items)}), cmd.InOrStdin(), cmd.OutOrStdout())
		if cerr != nil {
			return cerr
		}
		if !ok {
			return errors.Aborted(i18n.T("uninstall.cancelled"))
		}
	}

	res := uninstall.Execute(ctx, executor(), p.WorkDir, plan)

	path, werr := uninstall.WriteUninstallReport(p.WorkDir, uninstall.NewUninstallReport(res))
	if werr != nil {
		logWarning("%s", i18n.T("report.write_failed", map[string]any{"Error": werr.Error()}))
	} else {
		logSuccess("%s", i18n.T("report.written", map[string]any{"Path": path}))
	}

	fmt.Fprintln(cmd.OutOrStdout())
	logInfo("%s", i18n.T("uninstall.summary", map[string]any{"Removed": len(res.Removed), "Failed": len(res.Failed)}))
	logWarning("%s", i18n.T("uninstall.env_advisory", map[string]any{"Vars": strings.Join(uninstall.EnvAdvisory, ", ")}))
	if len(res.Failed) > 0 {
		logWarning("%s", i18n.T("uninstall.failed_hint"))
	}
	return nil
}

// uninstallPythonCandidates adds py after the configured interpreters,
// matching the scan order used by the uninstaller.
func uninstallPythonCandidates() []string {
	candidates := append([]string(nil), settings().PythonCandidates...)
	for _, c := range candidates {
		if c == "py" {
			return candidates
		}
	}
	return append(candidates, "py")
}

// printPlan lists found items grouped by type and previews the .npmrc
// rewrite as a diff.
func printPlan(cmd *cobra.Command, plan *uninstall.Plan) {
	out := cmd.OutOrStdout()
	if plan.Empty() {
		logInfo("%s", i18n.T("uninstall.nothing_found"))
		return
	}

	logInfo("%s", i18n.T("uninstall.found", map[string]any{"Count": len(plan.Items)}))
	header := color.New(color.Bold)
	groups := plan.Grouped()
	for _, t := range uninstall.TypeOrder {
		items := groups[t]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintln(out)
		header.Fprintf(out, "%s (%d)\n", i18n.T("uninstall.group."+string(t)), len(items))
		for _, it := range items {
			line := "  • " + it.Description
			if it.Size > 0 {
				line += " (" + humanize.Bytes(uint64(it.Size)) + ")"
			}
			if it.Version != "" {
				line += " " + it.Version
			}
			fmt.Fprintln(out, line)
		}
	}

	if plan.Npmrc.Changed() {
		diff, err := plan.Npmrc.Diff()
		if err == nil && diff != "" {
			fmt.Fprintln(out)
			header.Fprintln(out, i18n.T("uninstall.npmrc_preview"))
			fmt.Fprint(out, diff)
		}
	}
	fmt.Fprintln(out)
}
