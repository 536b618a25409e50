package cleanup

import (
	"context"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/dustin/go-humanize"

	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/report"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// Category groups related cleanup targets.
type Category string

const (
	CategoryPythonCache    Category = "python-cache"
	CategoryBuild          Category = "build"
	CategoryTemp           Category = "temp"
	CategoryBackup         Category = "backup"
	CategoryIDE            Category = "ide"
	CategoryNodeCache      Category = "node-cache"
	CategoryPythonPackages Category = "python-packages"
)

// Glob patterns per category, relative to the root.
var (
	pythonCacheDirPatterns  = []string{"**/__pycache__"}
	pythonCacheFilePatterns = []string{"**/*.pyc", "**/*.pyo"}
	buildPatterns           = []string{"build", "dist", "*.egg-info"}
	tempPatterns            = []string{"*.tmp", "*.temp", "*.log", "dnaspec-install-tmp*", "dnaspec-temp-*", "coverage*", ".coverage", "nosetests.xml"}
	backupPatterns          = []string{"*.bak", "*.backup", "*~", "*.orig", "*.swp", "*.swo"}
	ideFiles                = []string{".vscode/settings.json", ".vscode/launch.json", ".vscode/extensions.json"}
	nodeCacheDir            = "node_modules/.cache"
)

// packageMarkers select dnaspec-related rows from "pip list".
var packageMarkers = []string{"dnaspec", "dna-context", "dna-spec"}

// Options selects what a run cleans.
type Options struct {
	PythonCache    bool
	BuildArtifacts bool
	TempFiles      bool
	Backups        bool
	IDEFiles       bool
	NodeCache      bool
	PythonPackages bool

	// SkipNPM skips "npm cache clean --force" but still removes
	// node_modules/.cache.
	SkipNPM bool

	// DryRun measures targets without removing them.
	DryRun bool

	// PythonCandidates are tried in order when listing packages.
	PythonCandidates []string
}

// DefaultOptions enables every category.
func DefaultOptions() Options {
	return Options{
		PythonCache:      true,
		BuildArtifacts:   true,
		TempFiles:        true,
		Backups:          true,
		IDEFiles:         true,
		NodeCache:        true,
		PythonPackages:   true,
		PythonCandidates: []string{"python", "python3", "py"},
	}
}

// ItemType describes what kind of target was cleaned.
type ItemType string

const (
	TypeDirectory ItemType = "directory"
	TypeFile      ItemType = "file"
	TypeCache     ItemType = "cache"
)

// Item is a cleaned (or, in a dry run, cleanable) target.
type Item struct {
	Item     string   `json:"item"`
	Path     string   `json:"path,omitempty"`
	Category Category `json:"category"`
	Type     ItemType `json:"type"`
	Files    int      `json:"files,omitempty"`
	Size     int64    `json:"size"`
}

// FailedItem is a target that could not be removed.
type FailedItem struct {
	Item     string   `json:"item"`
	Path     string   `json:"path,omitempty"`
	Category Category `json:"category"`
	Error    string   `json:"error"`
}

// Statistics summarises a run.
type Statistics struct {
	TotalItems     int     `json:"totalItems"`
	TotalFiles     int     `json:"totalFiles"`
	TotalSizeBytes int64   `json:"totalSizeBytes"`
	TotalSizeKB    float64 `json:"totalSizeKB"`
	TotalFailed    int     `json:"totalFailed"`
}

// Report is the result of a run, saved as dnaspec-cleanup-report.json.
type Report struct {
	Timestamp      time.Time    `json:"timestamp"`
	Mode           string       `json:"mode"`
	CleanedItems   []Item       `json:"cleanedItems"`
	FailedItems    []FailedItem `json:"failedItems"`
	PythonPackages []string     `json:"pythonPackages,omitempty"`
	Statistics     Statistics   `json:"statistics"`
}

// Report modes.
const (
	ModeClean  = "clean"
	ModeDryRun = "dry-run"
)

// Cleaner runs cleanup against a root directory.
type Cleaner struct {
	exec system.CommandExecutor
	root string
	opts Options

	cleaned  []Item
	failed   []FailedItem
	packages []string
	seen     map[string]bool
}

// New creates a cleaner rooted at root.
func New(exec system.CommandExecutor, root string, opts Options) *Cleaner {
	if len(opts.PythonCandidates) == 0 {
		opts.PythonCandidates = DefaultOptions().PythonCandidates
	}
	return &Cleaner{exec: exec, root: root, opts: opts}
}

// Run cleans every enabled category and returns the report. Per-item
// failures are collected in the report.
func (c *Cleaner) Run(ctx context.Context) *Report {
	c.cleaned = nil
	c.failed = nil
	c.packages = nil
	c.seen = make(map[string]bool)

	if c.opts.PythonCache {
		c.section(CategoryPythonCache)
		c.cleanPythonCache()
	}
	if c.opts.BuildArtifacts {
		c.section(CategoryBuild)
		c.cleanTopLevel(CategoryBuild, buildPatterns)
	}
	if c.opts.TempFiles {
		c.section(CategoryTemp)
		c.cleanTopLevel(CategoryTemp, tempPatterns)
	}
	if c.opts.Backups {
		c.section(CategoryBackup)
		c.cleanTopLevel(CategoryBackup, backupPatterns)
	}
	if c.opts.IDEFiles {
		c.section(CategoryIDE)
		for _, rel := range ideFiles {
			c.remove(CategoryIDE, rel)
		}
	}
	if c.opts.NodeCache {
		c.section(CategoryNodeCache)
		c.cleanNodeCache(ctx)
	}
	if c.opts.PythonPackages {
		c.section(CategoryPythonPackages)
		c.listPythonPackages(ctx)
	}

	return c.report()
}

func (c *Cleaner) section(cat Category) {
	logging.UserInfo("%s", i18n.T("cleanup.section", map[string]any{"Section": i18n.T("cleanup.category." + string(cat))}))
}

// cleanPythonCache walks the tree, skipping hidden directories and
// node_modules, and removes __pycache__ directories and compiled files.
func (c *Cleaner) cleanPythonCache() {
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != c.root {
				return fs.SkipDir
			}
			return nil
		}
		if path == c.root {
			return nil
		}

		rel, relErr := filepath.Rel(c.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDir(d.Name()) {
				return fs.SkipDir
			}
			if matchAny(pythonCacheDirPatterns, rel) {
				c.remove(CategoryPythonCache, rel)
				return fs.SkipDir
			}
			return nil
		}
		if matchAny(pythonCacheFilePatterns, rel) {
			c.remove(CategoryPythonCache, rel)
		}
		return nil
	})
	if err != nil {
		logging.Warn("python cache scan failed", "root", c.root, "error", err)
	}
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// cleanTopLevel removes root entries matching any of patterns.
func (c *Cleaner) cleanTopLevel(cat Category, patterns []string) {
	fsys := os.DirFS(c.root)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			logging.Debug("invalid cleanup pattern", "pattern", pattern, "error", err)
			continue
		}
		sort.Strings(matches)
		for _, rel := range matches {
			c.remove(cat, rel)
		}
	}
}

func (c *Cleaner) cleanNodeCache(ctx context.Context) {
	if !c.opts.SkipNPM {
		item := i18n.T("cleanup.npm_cache")
		if c.opts.DryRun {
			c.cleaned = append(c.cleaned, Item{Item: item, Category: CategoryNodeCache, Type: TypeCache})
			logging.UserInfo("%s", i18n.T("cleanup.would_remove", map[string]any{"Item": item, "Size": "-"}))
		} else if _, err := c.exec.Output(ctx, system.Cmd("npm", "cache", "clean", "--force")); err != nil {
			c.fail(CategoryNodeCache, item, "", err)
		} else {
			c.cleaned = append(c.cleaned, Item{Item: item, Category: CategoryNodeCache, Type: TypeCache})
			logging.UserSuccess("%s", i18n.T("cleanup.npm_cleaned"))
		}
	}
	c.remove(CategoryNodeCache, nodeCacheDir)
}

// listPythonPackages reports installed dnaspec-related packages using the
// first working Python. Nothing is uninstalled.
func (c *Cleaner) listPythonPackages(ctx context.Context) {
	for _, py := range c.opts.PythonCandidates {
		if _, err := c.exec.Output(ctx, system.Cmd(py, "--version")); err != nil {
			continue
		}
		out, err := c.exec.Output(ctx, system.Cmd(py, "-m", "pip", "list"))
		if err != nil {
			logging.UserWarning("%s", i18n.T("cleanup.pip_list_failed"))
			return
		}
		c.packages = ParsePipList(string(out))
		if len(c.packages) > 0 {
			logging.UserWarning("%s", i18n.T("cleanup.python_packages", map[string]any{"Count": len(c.packages)}))
			for _, p := range c.packages {
				logging.UserInfo("  - %s", p)
			}
		}
		return
	}
}

// ParsePipList returns the names of dnaspec-related packages in "pip list"
// output.
func ParsePipList(out string) []string {
	var pkgs []string
	for _, line := range strings.Split(out, "\n") {
		lower := strings.ToLower(line)
		for _, m := range packageMarkers {
			if strings.Contains(lower, m) {
				if fields := strings.Fields(line); len(fields) > 0 {
					pkgs = append(pkgs, fields[0])
				}
				break
			}
		}
	}
	return pkgs
}

// remove deletes root/rel, recording the outcome. Missing targets are
// ignored.
func (c *Cleaner) remove(cat Category, rel string) {
	path, err := securejoin.SecureJoin(c.root, rel)
	if err != nil {
		c.fail(cat, rel, "", err)
		return
	}
	if c.seen[path] {
		return
	}
	c.seen[path] = true

	st, err := os.Lstat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.fail(cat, rel, path, err)
		} else {
			logging.Debug("cleanup target not found", "path", path)
		}
		return
	}

	item := Item{Item: rel, Path: path, Category: cat, Type: TypeFile, Size: st.Size()}
	if st.IsDir() {
		item.Type = TypeDirectory
		item.Files, item.Size = measure(path)
	}

	size := humanize.Bytes(uint64(item.Size))
	if c.opts.DryRun {
		c.cleaned = append(c.cleaned, item)
		logging.UserInfo("%s", i18n.T("cleanup.would_remove", map[string]any{"Item": rel, "Size": size}))
		return
	}

	if err := os.RemoveAll(path); err != nil {
		c.fail(cat, rel, path, err)
		return
	}
	c.cleaned = append(c.cleaned, item)
	logging.UserSuccess("%s", i18n.T("cleanup.removed", map[string]any{"Item": rel, "Size": size}))
}

func (c *Cleaner) fail(cat Category, item, path string, err error) {
	c.failed = append(c.failed, FailedItem{Item: item, Path: path, Category: cat, Error: err.Error()})
	logging.UserError("%s", i18n.T("cleanup.failed", map[string]any{"Item": item, "Error": err.Error()}))
}

// measure counts regular files below dir and their total size.
func measure(dir string) (files int, size int64) {
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		files++
		if info, err := d.Info(); err == nil {
			size += info.Size()
		}
		return nil
	})
	return files, size
}

func (c *Cleaner) report() *Report {
	mode := ModeClean
	if c.opts.DryRun {
		mode = ModeDryRun
	}
	rep := &Report{
		Timestamp:      time.Now().UTC(),
		Mode:           mode,
		CleanedItems:   c.cleaned,
		FailedItems:    c.failed,
		PythonPackages: c.packages,
	}
	if rep.CleanedItems == nil {
		rep.CleanedItems = []Item{}
	}
	if rep.FailedItems == nil {
		rep.FailedItems = []FailedItem{}
	}
	rep.Statistics = Summarize(rep.CleanedItems, len(rep.FailedItems))
	return rep
}

// Summarize computes statistics for cleaned items. A file item counts as
// one file; a directory counts its contents.
func Summarize(items []Item, failed int) Statistics {
	s := Statistics{TotalItems: len(items), TotalFailed: failed}
	for _, it := range items {
		s.TotalSizeBytes += it.Size
		switch {
		case it.Files > 0:
			s.TotalFiles += it.Files
		case it.Type == TypeFile:
			s.TotalFiles++
		}
	}
	s.TotalSizeKB = math.Round(float64(s.TotalSizeBytes)/1024*100) / 100
	return s
}

// WriteReport saves rep as dnaspec-cleanup-report.json in the root.
func (c *Cleaner) WriteReport(rep *Report) (string, error) {
	return report.Write(c.root, report.CleanupFile, rep)
}
