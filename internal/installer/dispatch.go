package installer

import (
	"context"

	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/project"
)

// Dispatch forwards a command to a project script in the work dir:
// python <workDir>/<script> <subcommand> <args...>. The route's script
// defaults to the configured CLI script.
// The work dir must contain pyproject.toml.
func (i *Installer) Dispatch(ctx context.Context, route Route, args []string) error {
	if route.Mode != ModeDispatch {
		return errors.ValidationError(route.Command + " is not a dispatch command")
	}

	an := project.NewAnalyzer(i.workDir)
	if !an.HasFile(project.PyprojectFile) {
		logging.UserError("%s", i18n.T("dispatch.no_project"))
		return errors.ConfigError(i18n.T("dispatch.no_project"), nil)
	}

	py, err := i.detector.Python(ctx)
	if err != nil {
		logging.UserError("%s", i18n.T("install.missing_dep", map[string]any{"Error": err.Error()}))
		return err
	}

	rel := route.Script
	if rel == "" {
		rel = i.settings.CLIScript
	}
	script, err := an.Path(rel)
	if err != nil {
		return errors.ConfigError("invalid cli script", err)
	}

	argv := []string{script}
	if route.Subcommand != "" {
		argv = append(argv, route.Subcommand)
	}
	argv = append(argv, args...)

	return i.runPython(ctx, py.Command, i.workDir, route.Command, argv)
}
