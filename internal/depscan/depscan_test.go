package depscan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptreezh/dnaspec-cli/internal/project"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExtractImports(t *testing.T) {
	src := `
const fs = require('fs');
const fse = require("fs-extra");
const chalk = require( 'chalk/source' );
const local = require('./local');
const p = require('node:path');
import inquirer from 'inquirer';
import { Command } from "@commander-js/extra-typings/lib";
import 'side-effect';
import helper from '../helper';
`
	assert.ElementsMatch(t,
		[]string{"fs-extra", "chalk", "inquirer", "@commander-js/extra-typings", "side-effect"},
		ExtractImports(src))
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"lodash":          "lodash",
		"lodash/fp":       "lodash",
		"@scope/pkg":      "@scope/pkg",
		"@scope/pkg/deep": "@scope/pkg",
		"fs/promises":     "fs",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestIsBuiltin(t *testing.T) {
	assert.True(t, IsBuiltin("child_process"))
	assert.True(t, IsBuiltin("fs/promises"))
	assert.True(t, IsBuiltin("node:test"))
	assert.False(t, IsBuiltin("execa"))
}

func TestAnalyze(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{
  "name": "dnaspec",
  "dependencies": {"fs-extra": "^11.1.0", "execa": "^7.0.0", "glob": "~10.0.0"},
  "devDependencies": {"jest": "^29.0.0"},
  "optionalDependencies": {"commander": "11.0.0"}
}`)
	write(t, root, "index.js", `const fse = require('fs-extra'); const { program } = require('commander');`)
	write(t, root, "bin/cli.js", `const execa = require('execa'); const ora = require('ora');`)
	write(t, root, "node_modules/x/index.js", `require('should-not-count')`)
	write(t, root, ".cache/y.js", `require('hidden')`)
	write(t, root, "lib/readme.md", `require('not-js')`)

	res, pkg, err := New(root).Analyze()
	require.NoError(t, err)

	assert.Equal(t, 2, res.Files)
	assert.Equal(t, []string{"commander", "execa", "fs-extra", "ora"}, res.Used)
	assert.Equal(t, []string{"commander", "execa", "fs-extra", "glob", "jest"}, res.Declared)
	assert.Equal(t, []string{"glob", "jest"}, res.Unused)
	assert.Equal(t, []string{"ora"}, res.Missing)
	assert.Equal(t, []string{"commander", "execa", "fs-extra"}, res.Critical)
	assert.Equal(t, []string{"commander", "fs-extra"}, res.Optional)

	suggestions := Suggest(res, pkg)
	assert.Contains(t, suggestions, Suggestion{Package: "commander", Version: "^11.0.0", Reason: "declared"})
	assert.Contains(t, suggestions, Suggestion{Package: "fs-extra", Version: "^11.1.0", Reason: "declared"})
	assert.Contains(t, suggestions, Suggestion{Package: "ora", Version: "^latest", Reason: "missing"})
}

func TestAnalyze_MissingPackageJSON(t *testing.T) {
	_, _, err := New(t.TempDir()).Analyze()
	assert.Error(t, err)
}

func TestDeclared(t *testing.T) {
	pkg := &project.PackageJSON{
		Dependencies:     map[string]string{"a": "1"},
		PeerDependencies: map[string]string{"b": "2"},
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, Declared(pkg))
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	mock := system.NewMockExecutor()
	mock.AddResponse("npm list", []byte("dnaspec@2.0.0\n"), nil)

	out, err := Validate(context.Background(), mock, root)
	require.NoError(t, err)
	assert.Contains(t, out, "dnaspec@2.0.0")
	last, _ := mock.LastCommand()
	assert.Equal(t, root, last.Dir)

	mock.AddResponse("npm list", []byte("npm ERR! missing: ora"), errors.New("exit 1"))
	out, err = Validate(context.Background(), mock, root)
	assert.Error(t, err)
	assert.Contains(t, out, "missing: ora")
}
