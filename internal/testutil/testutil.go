// Package testutil provides test utilities for command-level tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ptreezh/dnaspec-cli/internal/app"
	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/project"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	TmpDir   string
	Paths    *config.Paths
	Settings *config.Settings
	Exec     *system.MockExecutor
	App      *app.App
	cleanup  func()
}

// NewTestEnv creates a test environment with a temp work dir and home dir,
// a mock executor and default settings, and installs it as app.Default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	workDir := filepath.Join(tmpDir, "work")
	homeDir := filepath.Join(tmpDir, "home")

	paths := &config.Paths{
		WorkDir:   workDir,
		HomeDir:   homeDir,
		ConfigDir: filepath.Join(homeDir, ".config", config.ConfigName),
		StateDir:  filepath.Join(homeDir, ".local", "state", config.ConfigName),
	}

	for _, dir := range []string{paths.WorkDir, paths.HomeDir, paths.ConfigDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	settings := config.Defaults()
	settings.PythonCandidates = []string{"python", "python3"}

	mock := system.NewMockExecutor()

	testApp := app.New(
		app.WithPaths(paths),
		app.WithSettings(settings),
		app.WithExecutor(mock),
	)

	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:        t,
		TmpDir:   tmpDir,
		Paths:    paths,
		Settings: settings,
		Exec:     mock,
		App:      testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// MakeProject creates the DNASPEC project markers (src/, pyproject.toml,
// package.json) in dir.
func (e *TestEnv) MakeProject(dir string) {
	e.T.Helper()

	if err := os.MkdirAll(filepath.Join(dir, project.SrcDir), 0755); err != nil {
		e.T.Fatalf("Failed to create project: %v", err)
	}
	files := map[string]string{
		project.PyprojectFile:   "[project]\nname = \"dna-spec-kit-integration\"\nversion = \"2.0.0\"\n",
		project.PackageJSONFile: "{\"name\": \"dnaspec\", \"version\": \"2.0.0\"}\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			e.T.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// MakeClone creates a git checkout of the project at the temp clone
// location of the work dir.
func (e *TestEnv) MakeClone() string {
	e.T.Helper()

	dir := filepath.Join(e.Paths.WorkDir, e.Settings.TempDir, e.Settings.RepoDir)
	e.MakeProject(dir)
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		e.T.Fatalf("Failed to create clone: %v", err)
	}
	return dir
}

// WriteFile writes content to a path relative to the work dir.
func (e *TestEnv) WriteFile(rel, content string) string {
	e.T.Helper()

	path := filepath.Join(e.Paths.WorkDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// WriteHomeFile writes content to a path relative to the home dir.
func (e *TestEnv) WriteHomeFile(rel, content string) string {
	e.T.Helper()

	path := filepath.Join(e.Paths.HomeDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// HasFile reports whether a path relative to the work dir exists.
func (e *TestEnv) HasFile(rel string) bool {
	_, err := os.Stat(filepath.Join(e.Paths.WorkDir, filepath.FromSlash(rel)))
	return err == nil
}

// PythonOK makes the mock report a working python interpreter.
func (e *TestEnv) PythonOK() {
	e.Exec.AddResponse("python --version", []byte("Python 3.11.4\n"), nil)
}
