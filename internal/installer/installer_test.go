package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/system"
	"github.com/ptreezh/dnaspec-cli/internal/workspace"
)

func testSettings() *config.Settings {
	s := config.Defaults()
	s.RepoURLs = []string{"https://one.example/dnaSpec.git", "https://two.example/dnaSpec.git", "https://three.example/dnaSpec.git"}
	s.PythonCandidates = []string{"python", "python3"}
	return s
}

func makeProject(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"pyproject.toml", "package.json"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(""), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func hasEnv(cmd system.Command, kv string) bool {
	for _, e := range cmd.Env {
		if e == kv {
			return true
		}
	}
	return false
}

func findCommand(mock *system.MockExecutor, match func(system.Command) bool) (system.Command, bool) {
	for _, c := range mock.Commands {
		if match(c) {
			return c, true
		}
	}
	return system.Command{}, false
}

func TestInstall_InPlaceSkipsClone(t *testing.T) {
	workDir := t.TempDir()
	makeProject(t, workDir)
	mock := system.NewMockExecutor()

	inst := New(mock, testSettings(), workDir)
	res, err := inst.Install(context.Background(), MustRoute("deploy"), []string{"--verify"})
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if res.Source != workspace.SourceInPlace {
		t.Errorf("Source = %q, want in-place", res.Source)
	}
	if mock.Ran("git clone") {
		t.Errorf("must not clone inside a project dir, commands: %v", mock.CommandLines())
	}
	if res.InstallMethod != "pip install -e ." {
		t.Errorf("InstallMethod = %q", res.InstallMethod)
	}

	target, ok := findCommand(mock, func(c system.Command) bool {
		return len(c.Args) > 0 && strings.HasSuffix(c.Args[0], "deploy_cli.py")
	})
	if !ok {
		t.Fatalf("target script not run, commands: %v", mock.CommandLines())
	}
	if target.Args[0] != filepath.Join(workDir, "deploy_cli.py") {
		t.Errorf("script path = %q", target.Args[0])
	}
	if target.Dir != workDir {
		t.Errorf("Dir = %q, want %q", target.Dir, workDir)
	}
	if len(target.Args) != 2 || target.Args[1] != "--verify" {
		t.Errorf("forwarded args = %v", target.Args[1:])
	}
	if !hasEnv(target, "PYTHONIOENCODING=utf-8") || !hasEnv(target, "LANG=en_US.UTF-8") {
		t.Errorf("child env = %v", target.Env)
	}
	if _, err := os.Stat(filepath.Join(workDir, "src")); err != nil {
		t.Error("in-place project must survive the run")
	}
}

func TestInstall_MirrorFallbackAndCleanup(t *testing.T) {
	workDir := t.TempDir()
	settings := testSettings()
	mock := system.NewMockExecutor()

	var cloned []string
	mock.Handler = func(c system.Command) (system.MockResponse, bool) {
		if c.Name == "git" && len(c.Args) == 3 && c.Args[0] == "clone" {
			cloned = append(cloned, c.Args[1])
			if c.Args[1] == settings.RepoURLs[0] {
				return system.MockResponse{ExitCode: 128}, true
			}
			_ = os.MkdirAll(c.Args[2], 0755)
			return system.MockResponse{}, true
		}
		return system.MockResponse{}, false
	}

	inst := New(mock, settings, workDir)
	res, err := inst.Install(context.Background(), MustRoute("install"), nil)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if len(cloned) != 2 || cloned[0] != settings.RepoURLs[0] || cloned[1] != settings.RepoURLs[1] {
		t.Errorf("clone order = %v, want first two mirrors", cloned)
	}
	if res.CloneURL != settings.RepoURLs[1] {
		t.Errorf("CloneURL = %q", res.CloneURL)
	}
	wantProject := filepath.Join(workDir, config.DefaultTempDir, config.DefaultRepoDir)
	if res.ProjectDir != wantProject {
		t.Errorf("ProjectDir = %q, want %q", res.ProjectDir, wantProject)
	}

	pip, ok := findCommand(mock, func(c system.Command) bool { return c.Name == "pip" })
	if !ok || pip.Dir != wantProject {
		t.Errorf("pip should run in the cloned project, got %+v", pip)
	}
	if _, err := os.Stat(filepath.Join(workDir, config.DefaultTempDir)); !os.IsNotExist(err) {
		t.Error("temp directory should be removed after the run")
	}
}

func TestInstall_ReusesExistingClone(t *testing.T) {
	workDir := t.TempDir()
	settings := testSettings()
	settings.KeepTemp = true
	repo := filepath.Join(workDir, settings.TempDir, settings.RepoDir)
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	mock := system.NewMockExecutor()

	res, err := New(mock, settings, workDir).Install(context.Background(), MustRoute("init"), nil)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if res.Source != workspace.SourceExistingClone {
		t.Errorf("Source = %q, want existing-clone", res.Source)
	}
	if mock.Ran("git clone") {
		t.Error("existing clone should be reused without cloning")
	}
	if _, err := os.Stat(repo); err != nil {
		t.Error("keep_temp should preserve the clone")
	}
}

func TestInstall_AllMirrorsFail(t *testing.T) {
	workDir := t.TempDir()
	mock := system.NewMockExecutor()
	mock.AddExit("git clone", 128)

	_, err := New(mock, testSettings(), workDir).Install(context.Background(), MustRoute("install"), nil)

	if !errors.IsKind(err, errors.KindCloneFailed) {
		t.Fatalf("error = %v, want clone failed", err)
	}
	if errors.GetExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", errors.GetExitCode(err))
	}
	clones := 0
	for _, line := range mock.CommandLines() {
		if strings.HasPrefix(line, "git clone") {
			clones++
		}
	}
	if clones != 3 {
		t.Errorf("clone attempts = %d, want 3", clones)
	}
	if mock.Ran("pip") {
		t.Error("pip must not run after clone failure")
	}
	if _, err := os.Stat(filepath.Join(workDir, config.DefaultTempDir)); !os.IsNotExist(err) {
		t.Error("temp directory should be removed after clone failure")
	}
}

func TestInstall_PipFallback(t *testing.T) {
	workDir := t.TempDir()
	makeProject(t, workDir)
	mock := system.NewMockExecutor()
	mock.AddExit("pip install", 1)

	res, err := New(mock, testSettings(), workDir).Install(context.Background(), MustRoute("install"), nil)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if res.InstallMethod != "python -m pip install -e ." {
		t.Errorf("InstallMethod = %q, want python -m pip fallback", res.InstallMethod)
	}
}

func TestInstall_AllPipVariantsFail(t *testing.T) {
	workDir := t.TempDir()
	makeProject(t, workDir)
	mock := system.NewMockExecutor()
	mock.Handler = func(c system.Command) (system.MockResponse, bool) {
		for i, a := range c.Args {
			if a == "install" && i+1 < len(c.Args) && c.Args[i+1] == "-e" {
				return system.MockResponse{ExitCode: 1}, true
			}
		}
		return system.MockResponse{}, false
	}

	_, err := New(mock, testSettings(), workDir).Install(context.Background(), MustRoute("install"), nil)
	if !errors.IsKind(err, errors.KindInstallFailed) {
		t.Fatalf("error = %v, want install failed", err)
	}

	var variants []string
	for _, line := range mock.CommandLines() {
		if strings.HasSuffix(line, "install -e .") {
			variants = append(variants, line)
		}
	}
	want := []string{"pip install -e .", "python -m pip install -e .", "python3 -m pip install -e ."}
	if strings.Join(variants, "|") != strings.Join(want, "|") {
		t.Errorf("install variants = %v, want %v", variants, want)
	}
	if _, ok := findCommand(mock, func(c system.Command) bool {
		return len(c.Args) > 0 && strings.HasSuffix(c.Args[0], "run_auto_config.py")
	}); ok {
		t.Error("target must not run after install failure")
	}
}

func TestInstallCommands_Dedup(t *testing.T) {
	cmds := installCommands("python3")
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2 when python is python3", len(cmds))
	}
	if cmds[1].String() != "python3 -m pip install -e ." {
		t.Errorf("second command = %q", cmds[1].String())
	}
}

func TestInstall_ChildExitCodePropagates(t *testing.T) {
	workDir := t.TempDir()
	makeProject(t, workDir)
	mock := system.NewMockExecutor()
	mock.Handler = func(c system.Command) (system.MockResponse, bool) {
		if len(c.Args) > 0 && strings.HasSuffix(c.Args[0], "run_auto_config.py") {
			return system.MockResponse{ExitCode: 3}, true
		}
		return system.MockResponse{}, false
	}

	_, err := New(mock, testSettings(), workDir).Install(context.Background(), MustRoute("install"), nil)
	if !errors.IsKind(err, errors.KindChildExit) {
		t.Fatalf("error = %v, want child exit", err)
	}
	if errors.GetExitCode(err) != 3 {
		t.Errorf("exit code = %d, want 3", errors.GetExitCode(err))
	}
}

func TestInstall_MissingPython(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.AddExit("python", 127)
	mock.AddExit("python3", 127)

	_, err := New(mock, testSettings(), t.TempDir()).Install(context.Background(), MustRoute("install"), nil)
	if !errors.IsKind(err, errors.KindMissingDependency) {
		t.Fatalf("error = %v, want missing dependency", err)
	}
	if mock.Ran("git clone") || mock.Ran("pip") {
		t.Errorf("nothing should run after a missing dependency: %v", mock.CommandLines())
	}
}

func TestInstall_IntegrateUsesCLIScript(t *testing.T) {
	workDir := t.TempDir()
	makeProject(t, workDir)
	mock := system.NewMockExecutor()

	_, err := New(mock, testSettings(), workDir).Install(context.Background(), MustRoute("integrate"), []string{"--platform", "claude"})
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	last, _ := mock.LastCommand()
	want := []string{filepath.Join(workDir, config.DefaultCLIScript), "integrate", "--platform", "claude"}
	if strings.Join(last.Args, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", last.Args, want)
	}
}

func TestInstall_RejectsOtherModes(t *testing.T) {
	_, err := New(system.NewMockExecutor(), nil, t.TempDir()).Install(context.Background(), MustRoute("validate"), nil)
	if !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("error = %v, want validation", err)
	}
}

func TestResultSummary(t *testing.T) {
	r := &Result{Source: workspace.SourceClone, CloneURL: "https://x", InstallMethod: "pip install -e ."}
	if got := r.Summary(); got != "source=clone mirror=https://x method=pip install -e ." {
		t.Errorf("Summary() = %q", got)
	}
	var nilResult *Result
	if nilResult.Summary() != "" {
		t.Error("nil Summary should be empty")
	}
}
