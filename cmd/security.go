package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/errors"
)

var (
	securityTest     bool
	securityValidate bool
	securityAudit    bool
)

var securityCmd = &cobra.Command{
	Use:   "security",
	Short: "Run security tests, validation or audit",
	Long: `Runs the security subcommand of the project CLI.

Exactly one of --test, --validate or --audit may be given; --validate is
used when none is.`,
	Args: cobra.NoArgs,
	RunE: runSecurity,
}

func init() {
	securityCmd.Flags().BoolVar(&securityTest, "test", false, "Run security tests")
	securityCmd.Flags().BoolVar(&securityValidate, "validate", false, "Validate the security configuration")
	securityCmd.Flags().BoolVar(&securityAudit, "audit", false, "Generate a security audit report")
	rootCmd.AddCommand(securityCmd)
}

func runSecurity(cmd *cobra.Command, args []string) error {
	var selected []string
	if securityTest {
		selected = append(selected, "--test")
	}
	if securityValidate {
		selected = append(selected, "--validate")
	}
	if securityAudit {
		selected = append(selected, "--audit")
	}

	switch len(selected) {
	case 0:
		selected = []string{"--validate"}
	case 1:
	default:
		return errors.ValidationError("--test, --validate and --audit are mutually exclusive")
	}
	return runDispatch(cmd, "security", selected)
}
