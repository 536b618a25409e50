// Package report writes the JSON report files dnaspec leaves in the
// working directory after cleanup, uninstall and dry runs.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Report file names.
const (
	CleanupFile   = "dnaspec-cleanup-report.json"
	UninstallFile = "dnaspec-uninstall-report.json"
	DryRunFile    = "dnaspec-dry-run-report.json"
)

// Write marshals v as indented JSON into dir/name and returns the path.
// The file is written to a temp name first and renamed into place.
func Write(dir, name string, v any) (string, error) {
	if filepath.Base(name) != name {
		return "", fmt.Errorf("report name %q must not contain path separators", name)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

// Read loads a JSON report into v.
func Read(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return nil
}
