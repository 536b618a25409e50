// Package depscan compares the npm packages a JavaScript project actually
// requires or imports against the ones declared in its package.json.
package depscan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/project"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

const sourcePattern = "**/*.js"

var (
	requireRegex = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	importRegex  = regexp.MustCompile(`(?m)^\s*import\s+(?:[^'"]*?\s+from\s+)?['"]([^'"]+)['"]`)
)

// OptionalPackages are dependencies the CLI can run without.
var OptionalPackages = []string{"fs-extra", "commander", "inquirer"}

var builtins = map[string]bool{}

func init() {
	for _, m := range []string{
		"assert", "async_hooks", "buffer", "child_process", "cluster",
		"console", "constants", "crypto", "dgram", "dns", "domain", "events",
		"fs", "http", "http2", "https", "inspector", "module", "net", "os",
		"path", "perf_hooks", "process", "punycode", "querystring", "readline",
		"repl", "stream", "string_decoder", "sys", "timers", "tls", "trace_events",
		"tty", "url", "util", "v8", "vm", "wasi", "worker_threads", "zlib",
	} {
		builtins[m] = true
	}
}

// IsBuiltin reports whether spec names a Node.js core module.
func IsBuiltin(spec string) bool {
	if strings.HasPrefix(spec, "node:") {
		return true
	}
	return builtins[NormalizeName(spec)]
}

// NormalizeName reduces an import specifier to its package name:
// "@scope/pkg/sub" becomes "@scope/pkg" and "pkg/sub" becomes "pkg".
func NormalizeName(spec string) string {
	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

func isRelative(spec string) bool {
	return strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/")
}

// ExtractImports returns the external package names referenced by src.
func ExtractImports(src string) []string {
	var names []string
	for _, re := range []*regexp.Regexp{requireRegex, importRegex} {
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			spec := m[1]
			if isRelative(spec) || IsBuiltin(spec) {
				continue
			}
			names = append(names, NormalizeName(spec))
		}
	}
	return names
}

// Result is the categorised dependency set. Every list is sorted.
type Result struct {
	Used     []string `json:"used"`
	Declared []string `json:"declared"`
	Unused   []string `json:"unused"`
	Missing  []string `json:"missing"`
	Critical []string `json:"critical"`
	Optional []string `json:"optional"`

	// Files is the number of scanned source files.
	Files int `json:"files"`
}

// Suggestion is a recommended package.json entry.
type Suggestion struct {
	Package string `json:"package"`
	Version string `json:"version"`
	Reason  string `json:"reason"`
}

// Analyzer scans one project root.
type Analyzer struct {
	root string
}

// New creates an analyzer for root.
func New(root string) *Analyzer {
	return &Analyzer{root: root}
}

// Scan walks the root, skipping hidden directories and node_modules, and
// collects external packages used by .js files.
func (a *Analyzer) Scan() (map[string]bool, int, error) {
	used := make(map[string]bool)
	files := 0
	err := filepath.WalkDir(a.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != a.root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(a.root, path)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(sourcePattern, filepath.ToSlash(rel)); !ok {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logging.Debug("skipping unreadable source", "path", path, "error", err)
			return nil
		}
		files++
		for _, name := range ExtractImports(string(data)) {
			used[name] = true
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan %s: %w", a.root, err)
	}
	return used, files, nil
}

// Declared returns every package named in package.json.
func Declared(pkg *project.PackageJSON) map[string]bool {
	declared := make(map[string]bool)
	for _, deps := range []map[string]string{
		pkg.Dependencies, pkg.DevDependencies, pkg.PeerDependencies, pkg.OptionalDependencies,
	} {
		for name := range deps {
			declared[name] = true
		}
	}
	return declared
}

// Analyze scans the sources, reads package.json and categorises the result.
func (a *Analyzer) Analyze() (*Result, *project.PackageJSON, error) {
	pkg, err := project.ReadPackageJSON(filepath.Join(a.root, project.PackageJSONFile))
	if err != nil {
		return nil, nil, err
	}
	used, files, err := a.Scan()
	if err != nil {
		return nil, nil, err
	}
	res := Categorize(used, Declared(pkg))
	res.Files = files
	return res, pkg, nil
}

// Categorize splits used and declared packages into categories.
func Categorize(used, declared map[string]bool) *Result {
	res := &Result{
		Used:     sortedKeys(used),
		Declared: sortedKeys(declared),
	}
	for _, name := range res.Declared {
		if !used[name] {
			res.Unused = append(res.Unused, name)
		}
	}
	for _, name := range res.Used {
		if declared[name] {
			res.Critical = append(res.Critical, name)
		} else {
			res.Missing = append(res.Missing, name)
		}
	}
	for _, name := range OptionalPackages {
		if declared[name] {
			res.Optional = append(res.Optional, name)
		}
	}
	sort.Strings(res.Optional)
	return res
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Suggest proposes version ranges: the declared version as a caret range
// for used packages, and "^latest" for missing ones.
func Suggest(res *Result, pkg *project.PackageJSON) []Suggestion {
	var out []Suggestion
	for _, name := range res.Critical {
		v := declaredVersion(pkg, name)
		out = append(out, Suggestion{Package: name, Version: "^" + strings.TrimLeft(v, "^~=v"), Reason: "declared"})
	}
	for _, name := range res.Missing {
		out = append(out, Suggestion{Package: name, Version: "^latest", Reason: "missing"})
	}
	return out
}

func declaredVersion(pkg *project.PackageJSON, name string) string {
	for _, deps := range []map[string]string{
		pkg.Dependencies, pkg.DevDependencies, pkg.PeerDependencies, pkg.OptionalDependencies,
	} {
		if v, ok := deps[name]; ok {
			return v
		}
	}
	return ""
}

// Validate runs "npm list --depth=0" in the root and returns its output.
func Validate(ctx context.Context, exec system.CommandExecutor, root string) (string, error) {
	cmd := system.Cmd("npm", "list", "--depth=0")
	cmd.Dir = root
	out, err := exec.Output(ctx, cmd)
	if err != nil {
		return string(out), fmt.Errorf("npm list failed: %w", err)
	}
	return string(out), nil
}
