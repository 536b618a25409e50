package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/audit"
	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/environment"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/guide"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/project"
	"github.com/ptreezh/dnaspec-cli/internal/tui"
)

// Setup checklist keys.
const (
	setupDetectTools = "detect-tools"
	setupInstallDeps = "install-deps"
	setupShowGuide   = "show-guide"
)

var setupYes bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Detect AI tools, install Python dependencies and show the deployment guide",
	Long: `Interactive setup for a DNASPEC checkout.

Detects AI CLI tools, checks Python and pip, installs the Python package in
the current project and writes dnaspec-config.json. Without a terminal, or
with --yes, every step runs.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupYes, "yes", "y", false, "Accept the default steps without prompting")
	rootCmd.AddCommand(setupCmd)
}

func setupSteps() []tui.ChecklistItem {
	return []tui.ChecklistItem{
		{Key: setupDetectTools, Label: i18n.T("setup.step.detect_tools"), Checked: true},
		{Key: setupInstallDeps, Label: i18n.T("setup.step.install_deps"), Checked: true},
		{Key: setupShowGuide, Label: i18n.T("setup.step.show_guide"), Checked: true},
	}
}

func runSetup(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	defer func() { recordRun(audit.EventSetup, "setup", "", err) }()

	logInfo("%s", i18n.T("setup.title", map[string]any{"Version": config.Version}))

	steps := setupSteps()
	if !setupYes && tui.IsInteractive(cmd.InOrStdin()) {
		steps, err = tui.RunChecklist(i18n.T("setup.checklist_title"), steps, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			if errors.Is(err, tui.ErrCancelled) {
				return errors.Aborted(i18n.T("setup.cancelled"))
			}
			return err
		}
	} else if !setupYes {
		logInfo("%s", i18n.T("setup.defaults"))
	}
	selected := tui.Checked(steps)

	s := settings()
	detector := environment.NewDetector(executor(), s.PythonCandidates)
	workDir := paths().WorkDir

	detected := make(map[string]bool)
	if selected[setupDetectTools] {
		logInfo("%s", i18n.T("setup.detecting"))
		for _, tool := range detector.Tools(ctx, environment.AITools) {
			detected[tool.Command] = tool.Available
			if tool.Available {
				logSuccess("%s: %s", tool.Name, tool.Version)
			} else {
				logWarning("%s: %s", tool.Name, i18n.T("setup.not_installed"))
			}
		}
	}

	logInfo("%s", i18n.T("setup.checking_python"))
	py, pyErr := detector.Python(ctx)
	if pyErr != nil {
		logError("%s", i18n.T("setup.python_missing"))
	} else {
		logSuccess("Python: %s", py.Version)
		if pip := detector.Pip(ctx, py.Command); pip.Available {
			logSuccess("pip: %s", pip.Version)
		} else {
			logWarning("%s", i18n.T("setup.pip_missing"))
		}
	}
	detected["python"] = pyErr == nil

	if selected[setupInstallDeps] {
		switch {
		case pyErr != nil:
			logWarning("%s", i18n.T("setup.install_skipped_python"))
		case !project.IsProjectDir(workDir):
			logWarning("%s", i18n.T("setup.install_skipped_project"))
		default:
			logInfo("%s", i18n.T("setup.installing"))
			method, installErr := newInstaller(cmd).InstallPackage(ctx, workDir)
			if installErr != nil {
				logError("%s", i18n.T("setup.install_failed"))
				logInfo("%s", i18n.T("setup.install_manual"))
				return errors.InstallFailed(installErr)
			}
			logSuccess("%s", i18n.T("install.package_done", map[string]any{"Method": method}))
		}
	}

	path, err := config.SaveProjectConfig(workDir, &config.ProjectConfig{
		Version:          config.Version,
		Timestamp:        time.Now().UTC(),
		DetectedTools:    detected,
		ProjectPath:      workDir,
		InstallationMode: config.InstallationModeNpmGlobal,
	})
	if err != nil {
		logError("%s", i18n.T("setup.config_failed", map[string]any{"Error": err.Error()}))
		return errors.FilesystemError("write", workDir, err)
	}
	logSuccess("%s", i18n.T("setup.config_written", map[string]any{"Path": path}))

	if selected[setupShowGuide] {
		renderGuide(cmd, guide.Deploy)
	}

	logSuccess("%s", i18n.T("setup.complete"))
	fmt.Fprintln(cmd.OutOrStdout())
	logInfo("%s", i18n.T("root.tips_hint"))
	return nil
}
