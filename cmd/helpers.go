package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/app"
	"github.com/ptreezh/dnaspec-cli/internal/audit"
	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/guide"
	"github.com/ptreezh/dnaspec-cli/internal/installer"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)

// paths returns the resolved paths.
// This is a helper to reduce repetition in commands.
func paths() *config.Paths {
	return app.Default.Paths
}

// settings returns the loaded settings.
func settings() *config.Settings {
	return app.Default.Config()
}

// executor returns the application command executor.
func executor() system.CommandExecutor {
	return app.Default.Executor
}

// newInstaller builds an installer whose child output goes to the
// command's streams.
func newInstaller(cmd *cobra.Command) *installer.Installer {
	inst := app.Default.Installer()
	inst.Stdout = cmd.OutOrStdout()
	inst.Stderr = cmd.ErrOrStderr()
	return inst
}

// recordRun appends a pipeline run to the history.
func recordRun(eventType audit.EventType, command, details string, runErr error) {
	app.Default.Record(eventType, command, details, runErr)
}

// commandContext returns a context cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// renderGuide prints an embedded guide to the command's stdout. Failures
// are reported as warnings; a guide never fails a command.
func renderGuide(cmd *cobra.Command, name guide.Name) {
	out := cmd.OutOrStdout()
	if err := guide.Render(out, name, guide.Options{Styled: isTerminal(out)}); err != nil {
		logWarning("%v", err)
	}
}
