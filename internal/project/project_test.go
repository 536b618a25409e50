package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func makeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, SrcDir), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, PyprojectFile, `
[project]
name = "dnaspec-context-engineering-skills"
version = "2.0.0"
requires-python = ">=3.8"

[project.scripts]
dnaspec = "src.dna_spec_kit_integration.cli:main"
`)
	writeFile(t, dir, PackageJSONFile, `{"name": "dnaspec", "version": "2.0.1", "dependencies": {"chalk": "^4.1.2"}}`)
	return dir
}

func TestIsProjectDir(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  bool
	}{
		{
			name:  "empty directory",
			setup: func(t *testing.T, dir string) {},
			want:  false,
		},
		{
			name: "all markers",
			setup: func(t *testing.T, dir string) {
				_ = os.MkdirAll(filepath.Join(dir, "src"), 0755)
				writeFile(t, dir, "pyproject.toml", "")
				writeFile(t, dir, "package.json", "{}")
			},
			want: true,
		},
		{
			name: "missing package.json",
			setup: func(t *testing.T, dir string) {
				_ = os.MkdirAll(filepath.Join(dir, "src"), 0755)
				writeFile(t, dir, "pyproject.toml", "")
			},
			want: false,
		},
		{
			name: "src is a file",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "src", "")
				writeFile(t, dir, "pyproject.toml", "")
				writeFile(t, dir, "package.json", "{}")
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)
			if got := IsProjectDir(dir); got != tt.want {
				t.Errorf("IsProjectDir() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyze_Metadata(t *testing.T) {
	dir := makeProject(t)

	info := NewAnalyzer(dir).Analyze()

	if !info.IsProject() {
		t.Fatal("expected a project directory")
	}
	if info.Python == nil {
		t.Fatal("expected python metadata")
	}
	if info.Name() != "dnaspec-context-engineering-skills" {
		t.Errorf("Name() = %q", info.Name())
	}
	if info.Version() != "2.0.0" {
		t.Errorf("Version() = %q, want pyproject version", info.Version())
	}
	if info.Python.Scripts["dnaspec"] == "" {
		t.Error("expected dnaspec script entry")
	}
	if info.Node == nil || info.Node.Dependencies["chalk"] != "^4.1.2" {
		t.Errorf("Node = %+v", info.Node)
	}
}

func TestAnalyze_PoetryFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, PyprojectFile, `
[tool.poetry]
name = "dsgs"
version = "1.4.0"
`)

	info := NewAnalyzer(dir).Analyze()
	if info.Name() != "dsgs" || info.Version() != "1.4.0" {
		t.Errorf("Name/Version = %q/%q", info.Name(), info.Version())
	}
}

func TestAnalyze_InvalidMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, PyprojectFile, "not = [valid")
	writeFile(t, dir, PackageJSONFile, "{")

	info := NewAnalyzer(dir).Analyze()
	if info.Python != nil || info.Node != nil {
		t.Error("invalid metadata should be skipped")
	}
	if info.Name() != filepath.Base(dir) {
		t.Errorf("Name() = %q, want directory name", info.Name())
	}
}

func TestAnalyzer_Path(t *testing.T) {
	dir := t.TempDir()
	a := NewAnalyzer(dir)

	p, err := a.Path("src/dna_spec_kit_integration/cli.py")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if !strings.HasPrefix(p, dir) {
		t.Errorf("Path = %q, want inside %q", p, dir)
	}

	escaped, err := a.Path("../../etc/passwd")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if !strings.HasPrefix(escaped, dir) {
		t.Errorf("Path(../..) = %q escaped %q", escaped, dir)
	}

	writeFile(t, dir, "deploy_cli.py", "")
	if !a.HasFile("deploy_cli.py") {
		t.Error("HasFile should find deploy_cli.py")
	}
	if a.HasFile("missing.py") {
		t.Error("HasFile should not find missing.py")
	}
}
