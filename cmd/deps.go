package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/depscan"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
)

var (
	depsRoot     string
	depsValidate bool
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Analyze JavaScript dependencies against package.json",
	Long: `Scans *.js files for require() and import statements and compares the
packages they use with package.json.

Reports unused, missing, critical and optional packages and suggests
version ranges. With --validate, "npm list --depth=0" is run as well.`,
	Args: cobra.NoArgs,
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().StringVar(&depsRoot, "root", "", "Project root to analyze (default: current directory)")
	depsCmd.Flags().BoolVar(&depsValidate, "validate", false, "Run npm list --depth=0 after the analysis")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	root := depsRoot
	if root == "" {
		root = paths().WorkDir
	}

	res, pkg, err := depscan.New(root).Analyze()
	if err != nil {
		return errors.ConfigError(i18n.T("deps.analyze_failed"), err)
	}
	suggestions := depscan.Suggest(res, pkg)
	out := cmd.OutOrStdout()

	if jsonOutput {
		data, err := json.MarshalIndent(struct {
			*depscan.Result
			Suggestions []depscan.Suggestion `json:"suggestions"`
		}{res, suggestions}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		logInfo("%s", i18n.T("deps.scanned", map[string]any{"Files": res.Files, "Root": root}))
		printDepGroup(out, i18n.T("deps.used"), res.Used)
		printDepGroup(out, i18n.T("deps.declared"), res.Declared)
		printDepGroup(out, i18n.T("deps.critical"), res.Critical)
		printDepGroup(out, i18n.T("deps.optional"), res.Optional)
		printDepGroup(out, i18n.T("deps.unused"), res.Unused)
		printDepGroup(out, i18n.T("deps.missing"), res.Missing)

		if len(suggestions) > 0 {
			fmt.Fprintf(out, "\n%s\n", i18n.T("deps.suggestions"))
			for _, s := range suggestions {
				fmt.Fprintf(out, "  \"%s\": \"%s\"  (%s)\n", s.Package, s.Version, s.Reason)
			}
		}
		if len(res.Missing) > 0 {
			logWarning("%s", i18n.T("deps.missing_warning", map[string]any{"Packages": strings.Join(res.Missing, ", ")}))
		}
		if len(res.Unused) > 0 {
			logInfo("%s", i18n.T("deps.unused_hint", map[string]any{"Count": len(res.Unused)}))
		}
	}

	if depsValidate {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		logInfo("%s", i18n.T("deps.validating"))
		output, err := depscan.Validate(ctx, executor(), root)
		if output != "" {
			fmt.Fprint(out, output)
		}
		if err != nil {
			logError("%s", i18n.T("deps.validate_failed"))
			return errors.Wrap(errors.ExitGeneralError, "npm list reported problems", err)
		}
		logSuccess("%s", i18n.T("deps.validate_ok"))
	}
	return nil
}

func printDepGroup(w io.Writer, title string, names []string) {
	fmt.Fprintf(w, "\n%s (%d)\n", title, len(names))
	for _, n := range names {
		fmt.Fprintf(w, "  • %s\n", n)
	}
}
