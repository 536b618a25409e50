package cmd

import (
	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/audit"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/installer"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

var execCmd = &cobra.Command{
	Use:   "exec <command> [args...]",
	Short: "Execute a DNASPEC skill command in the current project",
	Long: `Runs "python <cli_script> exec <command>" in the current project.

A single argument is split with shell quoting rules, so
  dnaspec exec "context-analysis 'some text'"
forwards two arguments. Flags after <command> belong to the skill:
  dnaspec exec context-analysis --level 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	forwarded := args
	if len(args) == 1 {
		words, err := shellquote.Split(args[0])
		if err != nil {
			return errors.ValidationError("invalid command: " + err.Error())
		}
		if len(words) == 0 {
			return errors.ValidationError("usage: dnaspec exec <command>")
		}
		forwarded = words
	}
	return runDispatch(cmd, "exec", forwarded)
}

// runDispatch forwards a command to the project CLI script and records it.
func runDispatch(cmd *cobra.Command, command string, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	err := newInstaller(cmd).Dispatch(ctx, installer.MustRoute(command), args)
	recordRun(audit.EventDispatch, command, system.Cmd(command, args...).String(), err)
	return err
}
