package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/skills"
)

var slashCopy bool

var slashCmd = &cobra.Command{
	Use:   "slash [skill] [request...]",
	Short: "Invoke a skill in slash command mode",
	Long: `Runs a DNASPEC skill through the project CLI script.

Without arguments the interactive slash mode starts. With --copy the slash
command is formatted for AI tools, e.g.
  /speckit.dnaspec.context-analysis "review this design"
and copied to the clipboard instead of being run.`,
	RunE: runSlash,
}

func init() {
	slashCmd.Flags().BoolVar(&slashCopy, "copy", false, "Copy the formatted slash command to the clipboard")
	rootCmd.AddCommand(slashCmd)
}

func runSlash(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if slashCopy {
			return errors.ValidationError("--copy requires a skill name")
		}
		return runDispatch(cmd, "slash", nil)
	}

	name, request := args[0], args[1:]
	line, err := skills.SlashCommand(name, request)
	if err != nil {
		return errors.ValidationError(fmt.Sprintf("%v (available: %s)", err, strings.Join(skills.Names(), ", ")))
	}

	if slashCopy {
		fmt.Fprintln(cmd.OutOrStdout(), line)
		if err := clipboard.WriteAll(line); err != nil {
			logWarning("%s", i18n.T("slash.copy_failed", map[string]any{"Error": err.Error()}))
			return nil
		}
		logSuccess("%s", i18n.T("slash.copied"))
		return nil
	}

	forwarded := []string{name}
	if len(request) > 0 {
		forwarded = append(forwarded, strings.Join(request, " "))
	}
	return runDispatch(cmd, "slash", forwarded)
}
