// Package project inspects a directory to decide whether it is a DNASPEC
// project checkout and to read its package metadata.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/ptreezh/dnaspec-cli/internal/logging"
)

// Marker files and directories that identify a project checkout.
const (
	SrcDir          = "src"
	PyprojectFile   = "pyproject.toml"
	PackageJSONFile = "package.json"
)

// PythonMeta is the subset of pyproject.toml dnaspec reports.
type PythonMeta struct {
	Name           string            `toml:"name"`
	Version        string            `toml:"version"`
	Description    string            `toml:"description"`
	RequiresPython string            `toml:"requires-python"`
	Scripts        map[string]string `toml:"scripts"`
}

type pyproject struct {
	Project PythonMeta `toml:"project"`
	Tool    struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// PackageJSON is the subset of package.json dnaspec reads.
type PackageJSON struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// Info holds analyzed project information
type Info struct {
	Dir            string
	HasSrc         bool
	HasPyproject   bool
	HasPackageJSON bool
	HasGit         bool
	Python         *PythonMeta
	Node           *PackageJSON
}

// IsProject reports whether all three project markers are present.
func (i *Info) IsProject() bool {
	return i.HasSrc && i.HasPyproject && i.HasPackageJSON
}

// Name returns the best available project name.
func (i *Info) Name() string {
	if i.Python != nil && i.Python.Name != "" {
		return i.Python.Name
	}
	if i.Node != nil && i.Node.Name != "" {
		return i.Node.Name
	}
	return filepath.Base(i.Dir)
}

// Version returns the best available project version.
func (i *Info) Version() string {
	if i.Python != nil && i.Python.Version != "" {
		return i.Python.Version
	}
	if i.Node != nil {
		return i.Node.Version
	}
	return ""
}

// Analyzer analyzes a directory
type Analyzer struct {
	dir string
}

// NewAnalyzer creates a new project analyzer
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{dir: dir}
}

// Analyze inspects the directory. Metadata files that fail to parse are
// logged and left out of the result.
func (a *Analyzer) Analyze() *Info {
	info := &Info{Dir: a.dir}

	logging.Debug("analyzing project", "path", a.dir)

	info.HasSrc = a.isDir(SrcDir)
	info.HasPyproject = a.fileExists(PyprojectFile)
	info.HasPackageJSON = a.fileExists(PackageJSONFile)
	info.HasGit = a.fileExists(".git")

	if info.HasPyproject {
		meta, err := ReadPyproject(filepath.Join(a.dir, PyprojectFile))
		if err != nil {
			logging.Debug("failed to parse pyproject.toml", "error", err)
		} else {
			info.Python = meta
		}
	}
	if info.HasPackageJSON {
		pkg, err := ReadPackageJSON(filepath.Join(a.dir, PackageJSONFile))
		if err != nil {
			logging.Debug("failed to parse package.json", "error", err)
		} else {
			info.Node = pkg
		}
	}

	logging.Debug("project analysis complete",
		"project", info.IsProject(),
		"src", info.HasSrc,
		"pyproject", info.HasPyproject,
		"packageJSON", info.HasPackageJSON)

	return info
}

// Path resolves rel inside the project directory. Paths that would escape
// the directory through ".." or symlinks are clamped to it.
func (a *Analyzer) Path(rel string) (string, error) {
	p, err := securejoin.SecureJoin(a.dir, rel)
	if err != nil {
		return "", fmt.Errorf("invalid project path %q: %w", rel, err)
	}
	return p, nil
}

// HasFile reports whether rel exists inside the project directory.
func (a *Analyzer) HasFile(rel string) bool {
	p, err := a.Path(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

func (a *Analyzer) fileExists(name string) bool {
	_, err := os.Stat(filepath.Join(a.dir, name))
	return err == nil
}

func (a *Analyzer) isDir(name string) bool {
	st, err := os.Stat(filepath.Join(a.dir, name))
	return err == nil && st.IsDir()
}

// IsProjectDir reports whether dir contains src/, pyproject.toml and
// package.json.
func IsProjectDir(dir string) bool {
	return NewAnalyzer(dir).Analyze().IsProject()
}

// ReadPyproject parses the [project] table of a pyproject.toml, falling
// back to [tool.poetry] for name and version.
func ReadPyproject(path string) (*PythonMeta, error) {
	var doc pyproject
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	meta := doc.Project
	if meta.Name == "" {
		meta.Name = doc.Tool.Poetry.Name
	}
	if meta.Version == "" {
		meta.Version = doc.Tool.Poetry.Version
	}
	return &meta, nil
}

// ReadPackageJSON parses a package.json file.
func ReadPackageJSON(path string) (*PackageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &pkg, nil
}
