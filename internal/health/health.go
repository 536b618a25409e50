package health

import (
	"context"
	"fmt"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/environment"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// Status represents the health of an installation.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusBroken   Status = "broken"

	// CLIName is the executable looked up on PATH.
	CLIName = "dnaspec"
)

// Check names.
const (
	CheckCLI    = "cli"
	CheckPython = "python"
	CheckImport = "import"
	CheckGit    = "git"
)

// CheckOptions holds options for health checking.
type CheckOptions struct {
	Executor         system.CommandExecutor
	WorkDir          string
	PythonCandidates []string

	// VerifyImport is the module imported by the import check. Empty means
	// the default core module.
	VerifyImport string
}

// Item is the outcome of a single check.
type Item struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// CheckResult contains the results of health checks.
type CheckResult struct {
	Items  []Item `json:"checks"`
	Python string `json:"python,omitempty"`
}

// Passed reports whether the named check succeeded.
func (r *CheckResult) Passed(name string) bool {
	for _, it := range r.Items {
		if it.Name == name {
			return it.OK
		}
	}
	return false
}

// Summary returns the overall status.
func (r *CheckResult) Summary() Status {
	if !r.Passed(CheckPython) {
		return StatusBroken
	}
	for _, it := range r.Items {
		if !it.OK {
			return StatusDegraded
		}
	}
	return StatusHealthy
}

// CheckCLIOnPath checks that the dnaspec executable is installed.
func CheckCLIOnPath(exec system.CommandExecutor) Item {
	path, err := exec.LookPath(CLIName)
	if err != nil {
		return Item{Name: CheckCLI, Detail: "not found in PATH"}
	}
	return Item{Name: CheckCLI, OK: true, Detail: path}
}

// CheckModuleImport runs "<python> -c 'import <module>'" in dir.
func CheckModuleImport(ctx context.Context, exec system.CommandExecutor, python, module, dir string) Item {
	if err := config.ValidateModule(module); err != nil {
		return Item{Name: CheckImport, Detail: err.Error()}
	}
	_, err := exec.Output(ctx, system.Command{
		Name: python,
		Args: []string{"-c", fmt.Sprintf("import %s", module)},
		Dir:  dir,
		Env:  system.ChildEnv(),
	})
	if err != nil {
		return Item{Name: CheckImport, Detail: fmt.Sprintf("import %s failed: %v", module, err)}
	}
	return Item{Name: CheckImport, OK: true, Detail: module}
}

// Check performs all health checks. The import check is skipped (and
// reported as failed) when no Python interpreter is available.
func Check(ctx context.Context, opts CheckOptions) *CheckResult {
	exec := opts.Executor
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	module := opts.VerifyImport
	if module == "" {
		module = config.DefaultVerifyImport
	}
	detector := environment.NewDetector(exec, opts.PythonCandidates)
	result := &CheckResult{}

	result.Items = append(result.Items, CheckCLIOnPath(exec))

	py, err := detector.Python(ctx)
	if err != nil {
		result.Items = append(result.Items,
			Item{Name: CheckPython, Detail: "no python interpreter found"},
			Item{Name: CheckImport, Detail: "skipped: python unavailable"},
		)
	} else {
		result.Python = py.Command
		result.Items = append(result.Items,
			Item{Name: CheckPython, OK: true, Detail: py.Version},
			CheckModuleImport(ctx, exec, py.Command, module, opts.WorkDir),
		)
	}

	git := detector.Detect(ctx, environment.ToolSpec{Name: "Git", Command: "git"})
	item := Item{Name: CheckGit, OK: git.Available, Detail: git.Version}
	if !git.Available {
		item.Detail = "git --version failed"
	}
	result.Items = append(result.Items, item)

	return result
}

// GetSummary runs Check and returns only the status.
func GetSummary(ctx context.Context, opts CheckOptions) Status {
	return Check(ctx, opts).Summary()
}
