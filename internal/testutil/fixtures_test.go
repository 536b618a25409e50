package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/ptreezh/dnaspec-cli/internal/uninstall"
)

func TestValidSettings(t *testing.T) {
	s, err := ValidSettings(t)
	if err != nil {
		t.Fatalf("ValidSettings() error: %v", err)
	}

	if s.Lang != "zh" {
		t.Errorf("Lang = %q, want %q", s.Lang, "zh")
	}
	if len(s.RepoURLs) != 2 {
		t.Errorf("RepoURLs = %v, want 2 entries", s.RepoURLs)
	}
	if s.CloneTimeout != 45*time.Second {
		t.Errorf("CloneTimeout = %s, want 45s", s.CloneTimeout)
	}
	if !s.KeepTemp {
		t.Error("KeepTemp should be true")
	}
}

func TestInvalidSettings(t *testing.T) {
	if _, err := InvalidSettings(t); err == nil {
		t.Error("invalid fixture should fail validation")
	}
}

func TestPackageJSONFixture(t *testing.T) {
	pkg, err := PackageJSON(t)
	if err != nil {
		t.Fatalf("PackageJSON() error: %v", err)
	}
	if pkg.Name != "dnaspec-fixture" {
		t.Errorf("Name = %q", pkg.Name)
	}
	if len(pkg.Dependencies) != 3 || len(pkg.DevDependencies) != 1 {
		t.Errorf("dependencies = %v / %v", pkg.Dependencies, pkg.DevDependencies)
	}
}

func TestPipShowFixture(t *testing.T) {
	data, err := LoadFixture("pip_show.txt")
	if err != nil {
		t.Fatal(err)
	}
	version, location := uninstall.ParsePipShow(string(data))
	if version != "2.0.0" {
		t.Errorf("version = %q", version)
	}
	if !strings.HasSuffix(location, "site-packages") {
		t.Errorf("location = %q", location)
	}
}

func TestNewTestEnv(t *testing.T) {
	env := NewTestEnv(t)

	if env.Paths.WorkDir == "" || env.Paths.HomeDir == "" {
		t.Fatal("paths should be set")
	}
	if env.Exec == nil {
		t.Fatal("mock executor should be set")
	}

	env.MakeProject(env.Paths.WorkDir)
	if !env.HasFile("pyproject.toml") {
		t.Error("MakeProject should write pyproject.toml")
	}
}
