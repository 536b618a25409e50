package uninstall

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptreezh/dnaspec-cli/internal/report"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

type fixture struct {
	work string
	home string
	mock *system.MockExecutor
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{work: t.TempDir(), home: t.TempDir(), mock: system.NewMockExecutor()}

	touch(t, filepath.Join(f.work, "dnaspec-install-tmp", "dnaSpec", "README.md"), "r")
	touch(t, filepath.Join(f.work, "dnaspec-temp-123", "x"), "x")
	touch(t, filepath.Join(f.work, ".dnaspec-config.json"), "{}")
	touch(t, filepath.Join(f.work, "dist", "pkg.whl"), "w")
	touch(t, filepath.Join(f.work, "src", "__pycache__", "a.pyc"), "a")
	touch(t, filepath.Join(f.work, "README.md"), "keep")

	touch(t, filepath.Join(f.home, ".claude", "skills", "dnaspec-architect.md"), "s")
	touch(t, filepath.Join(f.home, ".claude", "dna-skill-pack.json"), "s")
	touch(t, filepath.Join(f.home, ".claude", "settings.json"), "{}")
	touch(t, filepath.Join(f.home, ".qwen", "temp", "t"), "t")
	touch(t, filepath.Join(f.home, ".npmrc"), "registry=https://registry.npmjs.org/\n//dnaspec.example/:_authToken=abc\nfund=false\n")

	f.mock.AddExit("python -m", 1)
	f.mock.AddResponse("python -m pip show dna-spec-kit-integration",
		[]byte("Name: dna-spec-kit-integration\nVersion: 2.0.0\nLocation: /usr/lib/python3/site-packages\n"), nil)
	f.mock.AddExit("npm list", 1)
	f.mock.AddResponse("npm list -g dnaspec --depth=0", []byte("/usr/lib\n└── dnaspec@2.0.1\n"), nil)
	return f
}

func itemsOfType(p *Plan, typ ItemType) []Item {
	return p.Grouped()[typ]
}

func TestPlan_FindsInstalledArtifacts(t *testing.T) {
	f := newFixture(t)

	plan, err := NewScanner(f.mock, f.work, f.home).Plan(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, it := range plan.Items {
		if it.Path != "" {
			paths = append(paths, it.Path)
		}
	}
	assert.Contains(t, paths, filepath.Join(f.work, "dnaspec-install-tmp"))
	assert.Contains(t, paths, filepath.Join(f.work, "dnaspec-temp-123"))
	assert.Contains(t, paths, filepath.Join(f.work, ".dnaspec-config.json"))
	assert.Contains(t, paths, filepath.Join(f.work, "dist"))
	assert.Contains(t, paths, filepath.Join(f.work, "src", "__pycache__"))
	assert.Contains(t, paths, filepath.Join(f.home, ".qwen", "temp"))
	assert.NotContains(t, paths, filepath.Join(f.work, "README.md"))

	py := itemsOfType(plan, TypePythonPackage)
	require.Len(t, py, 1)
	assert.Equal(t, "dna-spec-kit-integration", py[0].Name)
	assert.Equal(t, "2.0.0", py[0].Version)
	assert.Equal(t, "/usr/lib/python3/site-packages", py[0].Location)
	assert.Equal(t, "python", plan.Python)

	npm := itemsOfType(plan, TypeNpmGlobalPackage)
	require.Len(t, npm, 1)
	assert.Equal(t, "2.0.1", npm[0].Version)
	assert.Equal(t, "npm uninstall -g dnaspec", npm[0].Command)
	assert.Empty(t, itemsOfType(plan, TypeNpmLocalPackage))

	platform := itemsOfType(plan, TypePlatformConfig)
	require.Len(t, platform, 1)
	assert.Equal(t, filepath.Join(f.home, ".claude", "dna-skill-pack.json"), platform[0].Path)
	assert.Equal(t, "claude", platform[0].Platform)

	cfg := itemsOfType(plan, TypeNpmConfig)
	require.Len(t, cfg, 1)
	assert.Equal(t, 2, cfg[0].LineNumber)
	assert.Equal(t, "//dnaspec.example/:_authToken=abc", cfg[0].Content)

	assert.Contains(t, plan.NotFound, "python package: dnaspec-context-engineering-skills")
	assert.Contains(t, plan.NotFound, "local npm package: stigmergy")
	assert.Contains(t, plan.NotFound, "cursor platform directory: ~/.cursor/")
}

func TestPlan_NoPython(t *testing.T) {
	f := newFixture(t)
	f.mock.AddExit("python", 127)
	f.mock.AddExit("python3", 127)
	f.mock.AddExit("py", 127)

	plan, err := NewScanner(f.mock, f.work, f.home).Plan(context.Background())
	require.NoError(t, err)

	assert.Empty(t, plan.Python)
	assert.Empty(t, itemsOfType(plan, TypePythonPackage))
	assert.False(t, f.mock.Ran("python -m pip show"))
}

func TestPlan_RequiresDirs(t *testing.T) {
	_, err := NewScanner(system.NewMockExecutor(), "", "").Plan(context.Background())
	assert.Error(t, err)
}

func TestPlan_DoesNotModifyAnything(t *testing.T) {
	f := newFixture(t)

	_, err := NewScanner(f.mock, f.work, f.home).Plan(context.Background())
	require.NoError(t, err)

	for _, line := range f.mock.CommandLines() {
		assert.NotContains(t, line, "uninstall", "scan must not uninstall: %s", line)
	}
	data, err := os.ReadFile(filepath.Join(f.home, ".npmrc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "dnaspec.example")
	assert.DirExists(t, filepath.Join(f.work, "dnaspec-install-tmp"))
}

func TestExecute_RemovesAndCollectsFailures(t *testing.T) {
	f := newFixture(t)
	plan, err := NewScanner(f.mock, f.work, f.home).Plan(context.Background())
	require.NoError(t, err)

	f.mock.AddResponse("npm uninstall", nil, errors.New("EACCES"))
	f.mock.AddResponse("python -m pip uninstall -y dna-spec-kit-integration", nil, nil)
	res := Execute(context.Background(), f.mock, f.work, plan)

	assert.NoDirExists(t, filepath.Join(f.work, "dnaspec-install-tmp"))
	assert.NoFileExists(t, filepath.Join(f.work, ".dnaspec-config.json"))
	assert.NoFileExists(t, filepath.Join(f.home, ".claude", "dna-skill-pack.json"))
	assert.FileExists(t, filepath.Join(f.home, ".claude", "settings.json"))
	assert.FileExists(t, filepath.Join(f.work, "README.md"))
	assert.True(t, f.mock.Ran("python -m pip uninstall -y dna-spec-kit-integration"))

	data, err := os.ReadFile(filepath.Join(f.home, ".npmrc"))
	require.NoError(t, err)
	assert.Equal(t, "registry=https://registry.npmjs.org/\nfund=false\n", string(data))

	require.Len(t, res.Failed, 1)
	assert.Equal(t, "global npm package: dnaspec", res.Failed[0].Item)
	assert.Contains(t, res.Failed[0].Error, "EACCES")
}

func TestNpmrcEdit(t *testing.T) {
	edit := NewNpmrcEdit("/home/u/.npmrc", "a=1\n@dna-spec:registry=x\nb=2\ndna_context=1\n")

	assert.True(t, edit.Changed())
	assert.Equal(t, []int{2, 4}, edit.Lines)
	assert.Equal(t, "a=1\nb=2\n", edit.Rewritten)

	diff, err := edit.Diff()
	require.NoError(t, err)
	assert.Contains(t, diff, "--- /home/u/.npmrc")
	assert.Contains(t, diff, "-@dna-spec:registry=x")
	assert.Contains(t, diff, "-dna_context=1")

	unchanged := NewNpmrcEdit("/x", "a=1\n")
	assert.False(t, unchanged.Changed())
	diff, err = unchanged.Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestIsDNASpecName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"dnaspec-agent.md", true},
		{"DNA-SPEC.json", true},
		{"dna_context_rules", true},
		{"my-DNA-Skill", true},
		{"skills", false},
		{"settings.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDNASpecName(tt.name))
		})
	}
}

func TestParsePipShow(t *testing.T) {
	v, loc := ParsePipShow("Name: x\r\nVersion: 1.2.3\r\nLocation: C:\\py\\site-packages\r\n")
	assert.Equal(t, "1.2.3", v)
	assert.Equal(t, `C:\py\site-packages`, loc)

	v, loc = ParsePipShow("Name: x\n")
	assert.Equal(t, "Unknown", v)
	assert.Equal(t, "Unknown", loc)
}

func TestParseNpmList(t *testing.T) {
	out := "/usr/local/lib\n├── corepack@0.20.0\n└── stigmergy@1.4.2\n"
	v, ok := ParseNpmList(out, "stigmergy")
	assert.True(t, ok)
	assert.Equal(t, "1.4.2", v)

	_, ok = ParseNpmList(out, "dnaspec")
	assert.False(t, ok)

	_, ok = ParseNpmList("└── not-dnaspec@1.0.0\n", "dnaspec")
	assert.False(t, ok)

	v, ok = ParseNpmList("`-- dnaspec@2.0.0\n", "dnaspec")
	assert.True(t, ok)
	assert.Equal(t, "2.0.0", v)
}

func TestReports(t *testing.T) {
	dir := t.TempDir()
	plan := &Plan{
		Items:    []Item{{Type: TypeFile, Description: "config file: x", Path: "/x"}},
		NotFound: []string{"a", "b"},
	}

	path, err := WriteDryRunReport(dir, NewDryRunReport(plan))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, report.DryRunFile))

	var dry DryRunReport
	require.NoError(t, report.Read(path, &dry))
	assert.Equal(t, ModeDryRun, dry.Mode)
	assert.Equal(t, DryRunStatistics{TotalFound: 1, TotalNotFound: 2}, dry.Statistics)

	res := &Result{Failed: []FailedItem{{Item: "x", Error: "boom"}}}
	path, err = WriteUninstallReport(dir, NewUninstallReport(res))
	require.NoError(t, err)

	var un UninstallReport
	require.NoError(t, report.Read(path, &un))
	assert.Equal(t, ModeUninstall, un.Mode)
	assert.Equal(t, 1, un.Statistics.TotalFailed)
	assert.NotNil(t, un.RemovedItems)
	assert.Equal(t, []string{".claude/"}, un.Platforms["claude"])
	assert.Len(t, un.PythonPackages, 4)
}
