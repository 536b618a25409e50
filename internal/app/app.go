// Package app provides the application context for dnaspec.
// It allows dependency injection for testing.
package app

import (
	"github.com/spf13/pflag"

	"github.com/ptreezh/dnaspec-cli/internal/audit"
	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/installer"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// App holds the application dependencies
type App struct {
	// Paths holds the resolved work, home, config and state directories
	Paths *config.Paths

	// Settings is the loaded configuration; nil until LoadSettings runs
	Settings *config.Settings

	// Executor runs external commands (python, pip, git, npm)
	Executor system.CommandExecutor

	// Audit records pipeline runs in the state directory
	Audit *audit.Logger
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithSettings sets preloaded settings; LoadSettings keeps them
func WithSettings(s *config.Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithAudit sets a custom audit logger
func WithAudit(l *audit.Logger) Option {
	return func(a *App) {
		a.Audit = l
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		Paths: config.DefaultPaths(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	if app.Audit == nil {
		app.Audit = audit.NewLogger(app.Paths.StateDir)
	}

	return app
}

// LoadSettings resolves settings from the config file, the environment and
// flags. Settings injected with WithSettings are returned unchanged.
func (a *App) LoadSettings(flags *pflag.FlagSet, configFile string) (*config.Settings, error) {
	if a.Settings != nil {
		return a.Settings, nil
	}

	s, err := config.Load(flags, configFile, a.Paths.ConfigSearchDirs()...)
	if err != nil {
		return nil, err
	}

	stateDir := a.Paths.StateDir
	a.Paths.ApplySettings(s)
	if a.Paths.StateDir != stateDir {
		a.Audit = audit.NewLogger(a.Paths.StateDir)
	}
	if s.Source != "" {
		logging.Debug("loaded config", "file", s.Source)
	}

	a.Settings = s
	return s, nil
}

// Config returns the loaded settings, falling back to defaults.
func (a *App) Config() *config.Settings {
	if a.Settings == nil {
		return config.Defaults()
	}
	return a.Settings
}

// Installer builds an installer bound to the app's executor and work dir.
func (a *App) Installer() *installer.Installer {
	return installer.New(a.Executor, a.Config(), a.Paths.WorkDir)
}

// Record writes an audit event; failures are logged, never returned.
func (a *App) Record(eventType audit.EventType, command, details string, runErr error) {
	if a.Audit == nil {
		return
	}
	if err := a.Audit.Record(eventType, command, details, runErr); err != nil {
		logging.Debug("failed to record audit event", "error", err)
	}
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
