package installer

import (
	"context"
	"fmt"
	"io"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/environment"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/fallback"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/system"
	"github.com/ptreezh/dnaspec-cli/internal/workspace"
)

// Installer runs the install, query and dispatch pipelines.
type Installer struct {
	exec     system.CommandExecutor
	settings *config.Settings
	workDir  string
	detector *environment.Detector

	// Stdout and Stderr receive child process output. Nil means the
	// terminal.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an installer operating on workDir.
func New(exec system.CommandExecutor, settings *config.Settings, workDir string) *Installer {
	if settings == nil {
		settings = config.Defaults()
	}
	return &Installer{
		exec:     exec,
		settings: settings,
		workDir:  workDir,
		detector: environment.NewDetector(exec, settings.PythonCandidates),
	}
}

// Result describes a completed install pipeline.
type Result struct {
	Route         Route
	Source        workspace.Source
	ProjectDir    string
	CloneURL      string
	InstallMethod string
	Python        string
}

// Summary renders the result for the history log.
func (r *Result) Summary() string {
	if r == nil {
		return ""
	}
	s := fmt.Sprintf("source=%s", r.Source)
	if r.CloneURL != "" {
		s += " mirror=" + r.CloneURL
	}
	if r.InstallMethod != "" {
		s += " method=" + r.InstallMethod
	}
	return s
}

// Install runs the full pipeline for route: dependency check, workspace
// resolution (in place, reused clone or fresh clone), package install and
// the target script. The temp directory is removed afterwards unless
// keep_temp is set.
func (i *Installer) Install(ctx context.Context, route Route, args []string) (res *Result, err error) {
	if route.Mode != ModeInstall {
		return nil, errors.ValidationError(fmt.Sprintf("%s is not an install command", route.Command))
	}
	res = &Result{Route: route}

	logging.UserStep(1, "%s", i18n.T("install.step_deps"))
	env, err := i.detector.Require(ctx, true)
	if err != nil {
		logging.UserError("%s", i18n.T("install.missing_dep", map[string]any{"Error": err.Error()}))
		return res, err
	}
	res.Python = env.Python.Command
	logging.UserSuccess("%s", i18n.T("install.found_tool", map[string]any{"Tool": env.Python.Version}))
	logging.UserSuccess("%s", i18n.T("install.found_tool", map[string]any{"Tool": env.Git.Version}))

	logging.UserStep(2, "%s", i18n.T("install.step_workspace"))
	layout := workspace.NewLayout(i.workDir, i.settings.TempDir, i.settings.RepoDir)
	ws := workspace.Resolve(layout)
	res.Source = ws.Source
	res.ProjectDir = ws.ProjectDir

	switch ws.Source {
	case workspace.SourceInPlace:
		logging.UserInfo("%s", i18n.T("install.in_place"))
	case workspace.SourceExistingClone:
		logging.UserInfo("%s", i18n.T("install.reuse_clone", map[string]any{"Path": ws.ProjectDir}))
	case workspace.SourceClone:
		logging.UserInfo("%s", i18n.T("install.cloning"))
	}

	if ws.Temporary() && !i.settings.KeepTemp {
		defer func() {
			if cleanupErr := ws.Cleanup(); cleanupErr != nil {
				logging.UserWarning("%s", i18n.T("install.cleanup_failed", map[string]any{"Error": cleanupErr.Error()}))
				return
			}
			logging.UserInfo("%s", i18n.T("install.cleanup_done"))
		}()
	}

	cloner := workspace.NewCloner(i.exec, i.settings.CloneTimeout)
	cloner.OnAttempt = func(url string) {
		logging.UserInfo("%s", i18n.T("install.clone_attempt", map[string]any{"URL": url}))
	}
	cloner.OnFailure = func(url string, err error) {
		logging.UserWarning("%s", i18n.T("install.clone_attempt_failed", map[string]any{"URL": url, "Error": err.Error()}))
	}
	if err := ws.Prepare(ctx, cloner, i.settings.RepoURLs); err != nil {
		logging.UserError("%s", i18n.T("install.clone_failed"))
		return res, errors.CloneFailed(err)
	}
	if ws.CloneURL != "" {
		res.CloneURL = ws.CloneURL
		logging.UserSuccess("%s", i18n.T("install.cloned", map[string]any{"URL": ws.CloneURL}))
	}

	logging.UserStep(3, "%s", i18n.T("install.step_package"))
	method, err := i.installPackage(ctx, ws.ProjectDir, env.Python.Command)
	if err != nil {
		logging.UserError("%s", i18n.T("install.package_failed"))
		return res, errors.InstallFailed(err)
	}
	res.InstallMethod = method
	logging.UserSuccess("%s", i18n.T("install.package_done", map[string]any{"Method": method}))

	logging.UserStep(4, "%s", i18n.T("install.step_run"))
	if err := i.runTarget(ctx, ws, route, env.Python.Command, args); err != nil {
		return res, err
	}

	logging.UserSuccess("%s", i18n.T("install.complete"))
	return res, nil
}

// installCommands lists the pip invocations tried in order, without
// duplicates.
func installCommands(python string) []system.Command {
	candidates := []system.Command{
		system.Cmd("pip", "install", "-e", "."),
		system.Cmd(python, "-m", "pip", "install", "-e", "."),
		system.Cmd("python3", "-m", "pip", "install", "-e", "."),
	}

	seen := make(map[string]bool, len(candidates))
	cmds := make([]system.Command, 0, len(candidates))
	for _, c := range candidates {
		key := c.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		cmds = append(cmds, c)
	}
	return cmds
}

// InstallPackage runs "pip install -e ." in dir through the fallback chain
// and returns the command that succeeded.
func (i *Installer) InstallPackage(ctx context.Context, dir string) (string, error) {
	py, err := i.detector.Python(ctx)
	if err != nil {
		return "", err
	}
	return i.installPackage(ctx, dir, py.Command)
}

func (i *Installer) installPackage(ctx context.Context, dir, python string) (string, error) {
	cmds := installCommands(python)
	strategies := make([]fallback.Strategy, 0, len(cmds))
	for _, c := range cmds {
		c := c
		c.Dir = dir
		c.Stdout = i.Stdout
		c.Stderr = i.Stderr
		strategies = append(strategies, fallback.Strategy{
			Name: c.String(),
			Run: func(ctx context.Context) error {
				return i.exec.Run(ctx, c)
			},
		})
	}

	return fallback.New(strategies...).WithHooks(fallback.Hooks{
		OnAttempt: func(name string) {
			logging.UserInfo("%s", i18n.T("install.package_attempt", map[string]any{"Command": name}))
		},
		OnFailure: func(a fallback.Attempt) {
			logging.Debug("install method failed", "command", a.Name, "error", a.Err)
		},
	}).Run(ctx)
}

func (i *Installer) runTarget(ctx context.Context, ws *workspace.Workspace, route Route, python string, args []string) error {
	rel := route.Script
	if rel == "" {
		rel = i.settings.CLIScript
	}
	script, err := ws.Script(rel)
	if err != nil {
		return errors.ConfigError("invalid target script", err)
	}

	argv := []string{script}
	if route.Subcommand != "" {
		argv = append(argv, route.Subcommand)
	}
	argv = append(argv, args...)

	return i.runPython(ctx, python, ws.ProjectDir, rel, argv)
}

// runPython runs python with argv in dir and maps a failing exit status to
// a ChildExit error carrying the same code.
func (i *Installer) runPython(ctx context.Context, python, dir, label string, argv []string) error {
	cmd := system.Command{
		Name:   python,
		Args:   argv,
		Dir:    dir,
		Env:    system.ChildEnv(),
		Stdout: i.Stdout,
		Stderr: i.Stderr,
	}
	logging.Debug("running target", "command", cmd.String(), "dir", dir)

	if err := i.exec.Run(ctx, cmd); err != nil {
		return childError(label, err)
	}
	return nil
}

func childError(label string, err error) error {
	if code := system.ExitCode(err); code > 0 {
		return errors.ChildExit(label, code)
	}
	return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to run %s", label), err)
}
