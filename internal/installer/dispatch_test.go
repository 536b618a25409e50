package installer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

func TestDispatch_CLIScriptSubcommand(t *testing.T) {
	workDir := t.TempDir()
	makeProject(t, workDir)
	mock := system.NewMockExecutor()

	if err := New(mock, testSettings(), workDir).Dispatch(context.Background(), MustRoute("exec"), []string{"context-analysis", "x"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	last, _ := mock.LastCommand()
	want := "python " + filepath.Join(workDir, config.DefaultCLIScript) + " exec context-analysis x"
	if got := last.String(); got != want {
		t.Errorf("command = %q, want %q", got, want)
	}
	if last.Dir != workDir {
		t.Errorf("Dir = %q, want %q", last.Dir, workDir)
	}
}

func TestDispatch_RouteScript(t *testing.T) {
	workDir := t.TempDir()
	makeProject(t, workDir)
	mock := system.NewMockExecutor()

	if err := New(mock, testSettings(), workDir).Dispatch(context.Background(), MustRoute("evaluate"), []string{"--all"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	last, _ := mock.LastCommand()
	want := "python " + filepath.Join(workDir, "test_evaluation_framework.py") + " --all"
	if got := last.String(); got != want {
		t.Errorf("command = %q, want %q", got, want)
	}
}

func TestDispatch_ChildExitCode(t *testing.T) {
	workDir := t.TempDir()
	makeProject(t, workDir)
	mock := system.NewMockExecutor()
	mock.AddExit("python "+filepath.Join(workDir, "test_evaluation_framework.py"), 5)

	err := New(mock, testSettings(), workDir).Dispatch(context.Background(), MustRoute("evaluate"), nil)
	if errors.GetExitCode(err) != 5 {
		t.Errorf("exit code = %d, want 5 (err=%v)", errors.GetExitCode(err), err)
	}
}

func TestDispatch_RequiresProject(t *testing.T) {
	mock := system.NewMockExecutor()

	err := New(mock, testSettings(), t.TempDir()).Dispatch(context.Background(), MustRoute("evaluate"), nil)
	if !errors.IsKind(err, errors.KindConfig) {
		t.Errorf("error = %v, want config error", err)
	}
	for _, line := range mock.CommandLines() {
		if strings.Contains(line, "test_evaluation_framework.py") {
			t.Errorf("script should not run outside a project: %v", mock.CommandLines())
		}
	}
}

func TestDispatch_RejectsOtherModes(t *testing.T) {
	mock := system.NewMockExecutor()

	err := New(mock, testSettings(), t.TempDir()).Dispatch(context.Background(), MustRoute("validate"), nil)
	if !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}
