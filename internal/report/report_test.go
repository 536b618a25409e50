package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	in := map[string]any{"mode": "dry-run", "count": 3}

	path, err := Write(dir, DryRunFile, in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DryRunFile), path)

	var out map[string]any
	require.NoError(t, Read(path, &out))
	assert.Equal(t, "dry-run", out["mode"])
	assert.EqualValues(t, 3, out["count"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed into place")
}

func TestWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, CleanupFile, map[string]int{"v": 1})
	require.NoError(t, err)
	path, err := Write(dir, CleanupFile, map[string]int{"v": 2})
	require.NoError(t, err)

	var out map[string]int
	require.NoError(t, Read(path, &out))
	assert.Equal(t, 2, out["v"])
}

func TestWrite_RejectsNestedName(t *testing.T) {
	_, err := Write(t.TempDir(), "../escape.json", struct{}{})
	assert.Error(t, err)
}

func TestRead_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	var out map[string]any
	assert.Error(t, Read(path, &out))
	assert.Error(t, Read(filepath.Join(dir, "missing.json"), &out))
}
