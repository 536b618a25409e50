package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/fallback"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// Query runs a read-only command against the installed Python CLI module.
// It tries "python -m <module>" first and falls back to an inline shim that
// imports the module from the work dir. Nothing is cloned or installed.
func (i *Installer) Query(ctx context.Context, route Route, args []string) error {
	if route.Mode != ModeQuery {
		return errors.ValidationError(route.Command + " is not a query command")
	}
	command := route.Command

	module := i.settings.QueryModule
	if err := config.ValidateModule(module); err != nil {
		return errors.ConfigError("invalid query_module setting", err)
	}

	py, err := i.detector.Python(ctx)
	if err != nil {
		logging.UserError("%s", i18n.T("install.missing_dep", map[string]any{"Error": err.Error()}))
		return err
	}

	argv := append([]string{command}, args...)
	shim, err := queryShim(module, argv)
	if err != nil {
		return err
	}

	base := system.Command{
		Name:   py.Command,
		Dir:    i.workDir,
		Env:    system.ChildEnv(),
		Stdout: i.Stdout,
		Stderr: i.Stderr,
	}
	primary := base
	primary.Args = append([]string{"-m", module}, argv...)
	inline := base
	inline.Args = []string{"-c", shim}

	_, err = fallback.New(
		fallback.Strategy{Name: "module", Run: func(ctx context.Context) error { return i.exec.Run(ctx, primary) }},
		fallback.Strategy{Name: "inline", Run: func(ctx context.Context) error { return i.exec.Run(ctx, inline) }},
	).WithHooks(fallback.Hooks{
		OnFailure: func(a fallback.Attempt) {
			if a.Name == "module" {
				logging.Debug("module entry point failed", "module", module, "error", a.Err)
				logging.UserWarning("%s", i18n.T("query.fallback"))
			}
		},
	}).Run(ctx)
	if err != nil {
		var exhausted *fallback.ExhaustedError
		if errors.As(err, &exhausted) {
			return childError(command, exhausted.Last())
		}
		return err
	}
	return nil
}

// queryShim builds the inline program used when "python -m" fails. argv is
// embedded as a JSON list, which is also a valid Python list literal.
func queryShim(module string, argv []string) (string, error) {
	encoded, err := json.Marshal(append([]string{"dnaspec"}, argv...))
	if err != nil {
		return "", fmt.Errorf("failed to encode arguments: %w", err)
	}
	lines := []string{
		"import sys",
		"sys.path.insert(0, '.')",
		"sys.argv = " + string(encoded),
		"from " + module + " import main",
		"sys.exit(main())",
	}
	return strings.Join(lines, "\n"), nil
}
