package uninstall

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// ItemType classifies a planned removal.
type ItemType string

const (
	TypeDirectory        ItemType = "directory"
	TypeFile             ItemType = "file"
	TypePythonPackage    ItemType = "python-package"
	TypeNpmGlobalPackage ItemType = "npm-global-package"
	TypeNpmLocalPackage  ItemType = "npm-local-package"
	TypePlatformConfig   ItemType = "platform-config"
	TypeNpmConfig        ItemType = "npm-config"
)

// TypeOrder is the order item groups are printed and removed in.
var TypeOrder = []ItemType{
	TypeDirectory,
	TypeFile,
	TypePythonPackage,
	TypeNpmGlobalPackage,
	TypeNpmLocalPackage,
	TypePlatformConfig,
	TypeNpmConfig,
}

// Item is something the uninstaller would remove.
type Item struct {
	Type        ItemType `json:"type"`
	Description string   `json:"description"`
	Path        string   `json:"path,omitempty"`
	Name        string   `json:"name,omitempty"`
	Version     string   `json:"version,omitempty"`
	Location    string   `json:"location,omitempty"`
	Command     string   `json:"command,omitempty"`
	Platform    string   `json:"platform,omitempty"`
	Size        int64    `json:"size,omitempty"`
	LineNumber  int      `json:"lineNumber,omitempty"`
	Content     string   `json:"content,omitempty"`
}

// Platform is an AI tool whose home directory may hold dnaspec files.
type Platform struct {
	Name  string
	Paths []string
}

// Platforms lists AI tool locations relative to the home directory.
// Entries ending in "/" are directories.
var Platforms = []Platform{
	{Name: "claude", Paths: []string{".claude/"}},
	{Name: "cursor", Paths: []string{".cursor/", ".cursorrules"}},
	{Name: "copilot", Paths: []string{".github/copilot/"}},
	{Name: "qwen", Paths: []string{".qwen/"}},
	{Name: "gemini", Paths: []string{".gemini/"}},
	{Name: "iflow", Paths: []string{".iflow/"}},
	{Name: "codebuddy", Paths: []string{".codebuddy/"}},
	{Name: "qodercli", Paths: []string{".qoder/"}},
}

// PlatformMap returns Platforms keyed by name.
func PlatformMap() map[string][]string {
	m := make(map[string][]string, len(Platforms))
	for _, p := range Platforms {
		m[p.Name] = p.Paths
	}
	return m
}

// Package names and file patterns owned by dnaspec.
var (
	PythonPackages = []string{
		"dnaspec-context-engineering-skills",
		"dna-context-engineering-skills",
		"dna-spec-kit-integration",
		"dnaspec-spec-kit-integration",
	}
	NpmPackages = []string{"dnaspec", "stigmergy"}

	tempDirPatterns = []string{"dnaspec-install-tmp", "dnaspec-temp-*", "dnaspec-workspace-*"}
	configFiles     = []string{
		".dnaspec-config.json",
		".dnaspec-status.json",
		".dna-spec-integration.json",
		"dnaspec-integration-report.json",
	}
	buildPatterns = []string{"build", "dist", "*.egg-info", "*.pyc", "*.pyo"}

	// EnvAdvisory lists variables users must remove by hand.
	EnvAdvisory = []string{"NPM_AUTH_TOKEN", "DNASPEC_*", "DNA_SPEC_*"}
)

// Markers identifying dnaspec content in file names and .npmrc lines.
var contentMarkers = []string{"dnaspec", "dna-spec", "dna_context"}

// IsDNASpecName reports whether a platform file name belongs to dnaspec.
// Matching ignores case.
func IsDNASpecName(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range contentMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return strings.Contains(lower, "skill") && strings.Contains(lower, "dna")
}

// Plan is the set of items found by a scan.
type Plan struct {
	Items    []Item
	NotFound []string

	// Python is the interpreter used for pip commands, if any was found.
	Python string

	// Npmrc holds the rewrite of ~/.npmrc, nil when nothing matched.
	Npmrc *NpmrcEdit
}

// Grouped returns items keyed by type.
func (p *Plan) Grouped() map[ItemType][]Item {
	g := make(map[ItemType][]Item)
	for _, it := range p.Items {
		g[it.Type] = append(g[it.Type], it)
	}
	return g
}

// Empty reports whether nothing was found.
func (p *Plan) Empty() bool {
	return len(p.Items) == 0
}

// Scanner discovers installed dnaspec artifacts.
type Scanner struct {
	exec    system.CommandExecutor
	workDir string
	homeDir string

	// PythonCandidates are tried in order for pip commands.
	PythonCandidates []string
}

// NewScanner creates a scanner for workDir and homeDir.
func NewScanner(exec system.CommandExecutor, workDir, homeDir string) *Scanner {
	return &Scanner{
		exec:             exec,
		workDir:          workDir,
		homeDir:          homeDir,
		PythonCandidates: []string{"python", "python3", "py"},
	}
}

// Plan scans everything and returns what an uninstall would remove.
func (s *Scanner) Plan(ctx context.Context) (*Plan, error) {
	if s.workDir == "" || s.homeDir == "" {
		return nil, fmt.Errorf("work and home directories are required")
	}
	p := &Plan{}
	s.scanTempDirs(p)
	s.scanPythonPackages(ctx, p)
	s.scanNpmPackages(ctx, p)
	s.scanPlatforms(p)
	s.scanProjectConfigs(p)
	s.scanBuildFiles(p)
	if err := s.scanNpmrc(p); err != nil {
		logging.Warn("failed to read .npmrc", "error", err)
	}
	return p, nil
}

// checkPath adds root/rel as a file or directory item, or records it as
// not found.
func checkPath(p *Plan, root, rel, description string) {
	path, err := securejoin.SecureJoin(root, rel)
	if err != nil {
		p.NotFound = append(p.NotFound, description)
		return
	}
	st, err := os.Lstat(path)
	if err != nil {
		p.NotFound = append(p.NotFound, description)
		return
	}
	it := Item{Type: TypeFile, Path: path, Description: description, Size: st.Size()}
	if st.IsDir() {
		it.Type = TypeDirectory
		it.Size = 0
	}
	p.Items = append(p.Items, it)
}

func globTop(root, pattern string) []string {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		logging.Debug("invalid pattern", "pattern", pattern, "error", err)
		return nil
	}
	sort.Strings(matches)
	return matches
}

func (s *Scanner) scanTempDirs(p *Plan) {
	for _, pattern := range tempDirPatterns {
		if !strings.Contains(pattern, "*") {
			checkPath(p, s.workDir, pattern, "temp directory: "+pattern)
			continue
		}
		for _, rel := range globTop(s.workDir, pattern) {
			checkPath(p, s.workDir, rel, "temp directory: "+rel)
		}
	}
	for _, platform := range Platforms {
		for _, dir := range platform.Paths {
			if !strings.HasSuffix(dir, "/") {
				continue
			}
			checkPath(p, s.homeDir, dir+"temp", "temp directory: ~/"+dir+"temp")
		}
	}
}

func (s *Scanner) findPython(ctx context.Context) string {
	for _, py := range s.PythonCandidates {
		if _, err := s.exec.Output(ctx, system.Cmd(py, "--version")); err == nil {
			return py
		}
	}
	return ""
}

func (s *Scanner) scanPythonPackages(ctx context.Context, p *Plan) {
	p.Python = s.findPython(ctx)
	for _, pkg := range PythonPackages {
		if p.Python == "" {
			p.NotFound = append(p.NotFound, "python package: "+pkg)
			continue
		}
		out, err := s.exec.Output(ctx, system.Cmd(p.Python, "-m", "pip", "show", pkg))
		if err != nil {
			p.NotFound = append(p.NotFound, "python package: "+pkg)
			continue
		}
		version, location := ParsePipShow(string(out))
		p.Items = append(p.Items, Item{
			Type:        TypePythonPackage,
			Description: "python package: " + pkg,
			Name:        pkg,
			Version:     version,
			Location:    location,
			Command:     system.Cmd(p.Python, "-m", "pip", "uninstall", "-y", pkg).String(),
		})
	}
}

// ParsePipShow extracts Version and Location from "pip show" output.
// Missing fields are reported as "Unknown".
func ParsePipShow(out string) (version, location string) {
	version, location = "Unknown", "Unknown"
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if v, ok := strings.CutPrefix(line, "Version: "); ok {
			version = strings.TrimSpace(v)
		}
		if v, ok := strings.CutPrefix(line, "Location: "); ok {
			location = strings.TrimSpace(v)
		}
	}
	return version, location
}

// ParseNpmList finds pkg in "npm list --depth=0" output and returns its
// version.
func ParseNpmList(out, pkg string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, pkg+"@")
		if idx < 0 {
			continue
		}
		if idx > 0 && !treeBoundary(line[idx-1]) {
			continue
		}
		version := line[idx+len(pkg)+1:]
		if f := strings.Fields(version); len(f) > 0 {
			version = f[0]
		}
		if version == "" {
			version = "Unknown"
		}
		return version, true
	}
	return "", false
}

// treeBoundary reports whether b may precede a package name in npm's tree
// output. Bytes of the box-drawing characters are all >= 0x80.
func treeBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b >= 0x80
}

func (s *Scanner) scanNpmPackages(ctx context.Context, p *Plan) {
	for _, pkg := range NpmPackages {
		for _, global := range []bool{true, false} {
			args := []string{"list"}
			itemType, scope, uninstall := TypeNpmLocalPackage, "local", []string{"uninstall", pkg}
			if global {
				args = append(args, "-g")
				itemType, scope, uninstall = TypeNpmGlobalPackage, "global", []string{"uninstall", "-g", pkg}
			}
			args = append(args, pkg, "--depth=0")

			cmd := system.Cmd("npm", args...)
			cmd.Dir = s.workDir
			out, err := s.exec.Output(ctx, cmd)
			description := scope + " npm package: " + pkg
			if err != nil {
				p.NotFound = append(p.NotFound, description)
				continue
			}
			version, ok := ParseNpmList(string(out), pkg)
			if !ok {
				p.NotFound = append(p.NotFound, description)
				continue
			}
			p.Items = append(p.Items, Item{
				Type:        itemType,
				Description: description,
				Name:        pkg,
				Version:     version,
				Command:     system.Cmd("npm", uninstall...).String(),
			})
		}
	}
}

func (s *Scanner) scanPlatforms(p *Plan) {
	for _, platform := range Platforms {
		for _, rel := range platform.Paths {
			if !strings.HasSuffix(rel, "/") {
				continue
			}
			dir, err := securejoin.SecureJoin(s.homeDir, rel)
			if err != nil {
				continue
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				p.NotFound = append(p.NotFound, platform.Name+" platform directory: ~/"+rel)
				continue
			}
			for _, e := range entries {
				if !IsDNASpecName(e.Name()) {
					continue
				}
				kind := "file"
				if e.IsDir() {
					kind = "directory"
				}
				p.Items = append(p.Items, Item{
					Type:        TypePlatformConfig,
					Description: fmt.Sprintf("%s config %s: %s", platform.Name, kind, e.Name()),
					Path:        filepath.Join(dir, e.Name()),
					Platform:    platform.Name,
				})
			}
		}
	}
}

func (s *Scanner) scanProjectConfigs(p *Plan) {
	for _, name := range configFiles {
		checkPath(p, s.workDir, name, "config file: "+name)
	}
}

func (s *Scanner) scanBuildFiles(p *Plan) {
	for _, pattern := range buildPatterns {
		for _, rel := range globTop(s.workDir, pattern) {
			checkPath(p, s.workDir, rel, "python build file: "+rel)
		}
	}

	_ = filepath.WalkDir(s.workDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() || path == s.workDir {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || name == "node_modules" {
			return fs.SkipDir
		}
		if name == "__pycache__" {
			rel, _ := filepath.Rel(s.workDir, path)
			p.Items = append(p.Items, Item{Type: TypeDirectory, Path: path, Description: "python cache directory: " + filepath.ToSlash(rel)})
			return fs.SkipDir
		}
		return nil
	})
}

func (s *Scanner) scanNpmrc(p *Plan) error {
	path, err := securejoin.SecureJoin(s.homeDir, ".npmrc")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			p.NotFound = append(p.NotFound, "global npm config file")
			return nil
		}
		return err
	}

	edit := NewNpmrcEdit(path, string(data))
	if len(edit.Lines) == 0 {
		p.NotFound = append(p.NotFound, "dnaspec settings in npm config")
		return nil
	}
	p.Npmrc = edit
	for _, n := range edit.Lines {
		p.Items = append(p.Items, Item{
			Type:        TypeNpmConfig,
			Description: fmt.Sprintf("npm config line %d", n),
			Path:        path,
			LineNumber:  n,
			Content:     strings.TrimSpace(edit.lines[n-1]),
		})
	}
	return nil
}
