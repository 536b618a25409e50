package uninstall

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// NpmrcEdit is a planned rewrite of an .npmrc file that drops every line
// mentioning dnaspec.
type NpmrcEdit struct {
	Path      string
	Original  string
	Rewritten string

	// Lines are the 1-based numbers of removed lines.
	Lines []int

	lines []string
}

// NewNpmrcEdit plans the rewrite of content read from path.
func NewNpmrcEdit(path, content string) *NpmrcEdit {
	e := &NpmrcEdit{Path: path, Original: content, lines: strings.Split(content, "\n")}
	kept := make([]string, 0, len(e.lines))
	for i, line := range e.lines {
		if mentionsDNASpec(line) {
			e.Lines = append(e.Lines, i+1)
			continue
		}
		kept = append(kept, line)
	}
	e.Rewritten = strings.Join(kept, "\n")
	return e
}

func mentionsDNASpec(line string) bool {
	for _, m := range contentMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Changed reports whether the rewrite removes anything.
func (e *NpmrcEdit) Changed() bool {
	return e != nil && len(e.Lines) > 0
}

// Diff renders the rewrite as a unified diff.
func (e *NpmrcEdit) Diff() (string, error) {
	if !e.Changed() {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(e.Original),
		B:        difflib.SplitLines(e.Rewritten),
		FromFile: e.Path,
		ToFile:   e.Path + " (cleaned)",
		Context:  1,
	})
}

// Apply writes the rewritten content, keeping the file mode.
func (e *NpmrcEdit) Apply() error {
	if !e.Changed() {
		return nil
	}
	mode := os.FileMode(0600)
	if st, err := os.Stat(e.Path); err == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(e.Path, []byte(e.Rewritten), mode); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", e.Path, err)
	}
	return nil
}
