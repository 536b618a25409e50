package testutil

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/project"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadSettingsFixture writes a TOML fixture into a temp dir and loads it
// through config.Load, so it is parsed exactly like a user's file.
func LoadSettingsFixture(t *testing.T, name string) (*config.Settings, error) {
	t.Helper()

	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}
	return config.Load(nil, path)
}

// ValidSettings loads the valid settings fixture.
func ValidSettings(t *testing.T) (*config.Settings, error) {
	return LoadSettingsFixture(t, "valid_dnaspec.toml")
}

// InvalidSettings loads the settings fixture that fails validation.
func InvalidSettings(t *testing.T) (*config.Settings, error) {
	return LoadSettingsFixture(t, "invalid_dnaspec.toml")
}

// PackageJSON parses the package.json fixture.
func PackageJSON(t *testing.T) (*project.PackageJSON, error) {
	t.Helper()

	data, err := LoadFixture("package.json")
	if err != nil {
		return nil, err
	}
	path := filepath.Join(t.TempDir(), project.PackageJSONFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}
	return project.ReadPackageJSON(path)
}
