package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
)

var (
	evaluateSkill    string
	evaluateAll      bool
	evaluateNoReport bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate DNASPEC system quality",
	Long: `Runs test_evaluation_framework.py in the current project.

Without --skill or --all the whole system is evaluated. The exit code of the
evaluation script is returned unchanged.`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateSkill, "skill", "s", "", "Evaluate a single skill")
	evaluateCmd.Flags().BoolVarP(&evaluateAll, "all", "a", false, "Evaluate every skill")
	evaluateCmd.Flags().BoolVar(&evaluateNoReport, "no-report", false, "Do not write a report")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if evaluateSkill != "" && evaluateAll {
		return errors.ValidationError("--skill and --all are mutually exclusive")
	}

	var forwarded []string
	switch {
	case evaluateSkill != "":
		logInfo("%s", i18n.T("evaluate.skill", map[string]any{"Skill": evaluateSkill}))
		forwarded = append(forwarded, "--skill", evaluateSkill)
	case evaluateAll:
		logInfo("%s", i18n.T("evaluate.all"))
		forwarded = append(forwarded, "--all")
	default:
		logInfo("%s", i18n.T("evaluate.system"))
	}
	if evaluateNoReport {
		forwarded = append(forwarded, "--no-report")
	}
	return runDispatch(cmd, "evaluate", forwarded)
}
