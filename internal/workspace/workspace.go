package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/project"
)

// Source says where the project checkout used by a run comes from.
type Source string

const (
	// SourceInPlace uses the working directory itself.
	SourceInPlace Source = "in-place"
	// SourceExistingClone reuses a clone left in the temp directory.
	SourceExistingClone Source = "existing-clone"
	// SourceClone clones into a fresh temp directory.
	SourceClone Source = "clone"
)

// Layout names the directories involved in resolving a workspace.
type Layout struct {
	WorkDir string
	TempDir string
	RepoDir string
}

// NewLayout builds the layout <workDir>/<tempName>/<repoName>.
func NewLayout(workDir, tempName, repoName string) Layout {
	temp := filepath.Join(workDir, tempName)
	return Layout{
		WorkDir: workDir,
		TempDir: temp,
		RepoDir: filepath.Join(temp, repoName),
	}
}

// Workspace is a resolved project location.
type Workspace struct {
	Layout     Layout
	Source     Source
	ProjectDir string

	// CloneURL is the mirror that produced the checkout, when cloned.
	CloneURL string
}

// Resolve decides which source a run uses without touching the network.
// A leftover repo dir without .git is cloned over, not reused.
func Resolve(layout Layout) *Workspace {
	ws := &Workspace{Layout: layout}

	switch {
	case project.IsProjectDir(layout.WorkDir):
		ws.Source = SourceInPlace
		ws.ProjectDir = layout.WorkDir
	case IsRepo(layout.RepoDir):
		ws.Source = SourceExistingClone
		ws.ProjectDir = layout.RepoDir
	default:
		ws.Source = SourceClone
		ws.ProjectDir = layout.RepoDir
	}

	logging.Debug("resolved workspace", "source", ws.Source, "project", ws.ProjectDir)
	return ws
}

// Temporary reports whether the project lives in the temp directory.
func (w *Workspace) Temporary() bool {
	return w.Source != SourceInPlace
}

// Prepare clones the repository when the source requires it. When every
// mirror fails the temp directory is removed before returning.
func (w *Workspace) Prepare(ctx context.Context, cloner *Cloner, urls []string) error {
	if w.Source != SourceClone {
		return nil
	}

	if err := os.MkdirAll(w.Layout.TempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	url, err := cloner.Clone(ctx, urls, w.ProjectDir)
	if err != nil {
		if cleanupErr := w.Cleanup(); cleanupErr != nil {
			logging.Warn("failed to remove temp directory", "path", w.Layout.TempDir, "error", cleanupErr)
		}
		return err
	}
	w.CloneURL = url
	return nil
}

// Cleanup removes the temp directory. It is a no-op for in-place runs.
func (w *Workspace) Cleanup() error {
	if !w.Temporary() {
		return nil
	}
	if err := os.RemoveAll(w.Layout.TempDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", w.Layout.TempDir, err)
	}
	logging.Debug("removed temp directory", "path", w.Layout.TempDir)
	return nil
}

// Script returns the absolute path of a script inside the project.
func (w *Workspace) Script(rel string) (string, error) {
	return project.NewAnalyzer(w.ProjectDir).Path(rel)
}
