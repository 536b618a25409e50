package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/app"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display recent install, query and maintenance runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyJSON  bool
	historyLimit int
	historyClear bool
)

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output events as JSON lines")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Show at most this many recent events (0 for all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	logger := app.Default.Audit
	out := cmd.OutOrStdout()

	if historyClear {
		if err := logger.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logSuccess("%s", i18n.T("history.cleared"))
		return nil
	}

	events, err := logger.Events(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(events) == 0 {
		logInfo("%s", i18n.T("history.empty"))
		return nil
	}

	for _, e := range events {
		if historyJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}
		age := humanize.Time(e.Timestamp)
		if e.Details != "" {
			fmt.Fprintf(out, "[%-14s] %-9s %-6s %s (%s)\n", age, e.Type, e.Outcome, e.Command, e.Details)
		} else {
			fmt.Fprintf(out, "[%-14s] %-9s %-6s %s\n", age, e.Type, e.Outcome, e.Command)
		}
	}

	return nil
}
