package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/health"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the DNASPEC installation",
	Long: `Checks that dnaspec is on PATH, Python is available, the core module
imports and git is installed.

Exits 0 only when every check passes. With --json the results are printed
as JSON.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	s := settings()
	result := health.Check(ctx, health.CheckOptions{
		Executor:         executor(),
		WorkDir:          paths().WorkDir,
		PythonCandidates: s.PythonCandidates,
		VerifyImport:     s.VerifyImport,
	})
	status := result.Summary()

	if jsonOutput {
		out := struct {
			Status health.Status `json:"status"`
			*health.CheckResult
		}{status, result}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		logInfo("%s", i18n.T("verify.title"))
		for i, it := range result.Items {
			label := i18n.T("verify.check." + it.Name)
			if it.OK {
				logSuccess("%d. %s: %s", i+1, label, it.Detail)
			} else {
				logError("%d. %s: %s", i+1, label, it.Detail)
			}
		}
	}

	switch status {
	case health.StatusHealthy:
		logSuccess("%s", i18n.T("verify.healthy"))
		return nil
	case health.StatusDegraded:
		logWarning("%s", i18n.T("verify.degraded"))
	default:
		logError("%s", i18n.T("verify.broken"))
	}
	return errors.New(errors.ExitGeneralError, fmt.Sprintf("installation is %s", status))
}
