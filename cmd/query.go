package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/audit"
	"github.com/ptreezh/dnaspec-cli/internal/guide"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/installer"
	"github.com/ptreezh/dnaspec-cli/internal/skills"
)

var (
	validateStigmergy bool
	listInstalled     bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the DNASPEC installation",
	Long: `Runs the validate command of the installed Python package.

Nothing is cloned or installed. Python must be available; git is not
required.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var forwarded []string
		if validateStigmergy {
			forwarded = append(forwarded, "--stigmergy")
		}
		return runQuery(cmd, "validate", forwarded)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List DNASPEC skills",
	Long: `Prints the built-in skill catalog with localized descriptions and the
slash command form used inside AI tools.

With --installed, the list is read from the installed Python package
instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listInstalled {
			return runQuery(cmd, "list", nil)
		}
		out := cmd.OutOrStdout()
		logInfo("%s", i18n.T("list.header", map[string]any{"Count": len(skills.All())}))
		if err := skills.RenderTable(out, skills.All()); err != nil {
			return err
		}
		logInfo("%s", i18n.T("list.usage_hint"))
		return nil
	},
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show installation tips and usage guide",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		renderGuide(cmd, guide.Tips)
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStigmergy, "stigmergy", false, "Validate the Stigmergy integration")
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "List skills reported by the installed package")

	rootCmd.AddCommand(validateCmd, listCmd, tipsCmd)
}

// runQuery runs a read-only command through the installed Python module.
func runQuery(cmd *cobra.Command, command string, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	err := newInstaller(cmd).Query(ctx, installer.MustRoute(command), args)
	recordRun(audit.EventQuery, command, strings.Join(args, " "), err)
	return err
}
