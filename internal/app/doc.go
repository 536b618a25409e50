// Package app provides the application context for dnaspec.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths           // Work, home, config and state dirs
//	    Settings *config.Settings        // Loaded configuration
//	    Executor system.CommandExecutor  // External command runner
//	    Audit    *audit.Logger           // Run history
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//	settings, err := a.LoadSettings(cmd.Flags(), configFile)
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(config.NewPaths(workDir, homeDir)),
//	    app.WithExecutor(system.NewMockExecutor()),
//	)
//
// # Available Options
//
//	WithPaths(paths)       // Custom path configuration
//	WithSettings(settings) // Preloaded settings, skips config loading
//	WithExecutor(exec)     // Custom command executor
//	WithAudit(logger)      // Custom history logger
package app
