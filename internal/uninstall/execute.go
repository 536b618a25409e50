package uninstall

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/report"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// FailedItem is a planned item that could not be removed.
type FailedItem struct {
	Item  string `json:"item"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error"`
}

// Result is the outcome of Execute.
type Result struct {
	Removed []Item
	Failed  []FailedItem
}

// Execute removes every planned item. Each item is handled on its own; a
// failure is recorded and the run continues. npm config lines are removed
// with a single rewrite of the file.
func Execute(ctx context.Context, exec system.CommandExecutor, workDir string, plan *Plan) *Result {
	res := &Result{}
	npmrcDone := false

	for _, it := range plan.Items {
		var err error
		switch it.Type {
		case TypeDirectory, TypeFile, TypePlatformConfig:
			err = os.RemoveAll(it.Path)
		case TypePythonPackage:
			if plan.Python == "" {
				err = fmt.Errorf("no python interpreter available")
				break
			}
			_, err = exec.Output(ctx, system.Cmd(plan.Python, "-m", "pip", "uninstall", "-y", it.Name))
		case TypeNpmGlobalPackage:
			_, err = exec.Output(ctx, system.Cmd("npm", "uninstall", "-g", it.Name))
		case TypeNpmLocalPackage:
			cmd := system.Cmd("npm", "uninstall", it.Name)
			cmd.Dir = workDir
			_, err = exec.Output(ctx, cmd)
		case TypeNpmConfig:
			if npmrcDone {
				continue
			}
			npmrcDone = true
			err = plan.Npmrc.Apply()
			if err == nil {
				it = Item{Type: TypeNpmConfig, Description: "npm config cleanup", Path: plan.Npmrc.Path}
			}
		default:
			err = fmt.Errorf("unknown item type %q", it.Type)
		}

		if err != nil {
			logging.UserError("%s: %v", it.Description, err)
			res.Failed = append(res.Failed, FailedItem{Item: it.Description, Path: it.Path, Error: err.Error()})
			continue
		}
		logging.UserSuccess("%s", it.Description)
		res.Removed = append(res.Removed, it)
	}
	return res
}

// Report modes.
const (
	ModeDryRun    = "dry-run"
	ModeUninstall = "uninstall"
)

// DryRunStatistics summarises a dry run.
type DryRunStatistics struct {
	TotalFound    int `json:"totalFound"`
	TotalNotFound int `json:"totalNotFound"`
}

// DryRunReport is saved as dnaspec-dry-run-report.json.
type DryRunReport struct {
	Timestamp        time.Time        `json:"timestamp"`
	Mode             string           `json:"mode"`
	WouldRemoveItems []Item           `json:"wouldRemoveItems"`
	NotFoundItems    []string         `json:"notFoundItems"`
	Statistics       DryRunStatistics `json:"statistics"`
}

// NewDryRunReport builds the dry-run report for plan.
func NewDryRunReport(plan *Plan) *DryRunReport {
	r := &DryRunReport{
		Timestamp:        time.Now().UTC(),
		Mode:             ModeDryRun,
		WouldRemoveItems: nonNil(plan.Items),
		NotFoundItems:    plan.NotFound,
	}
	if r.NotFoundItems == nil {
		r.NotFoundItems = []string{}
	}
	r.Statistics = DryRunStatistics{TotalFound: len(plan.Items), TotalNotFound: len(plan.NotFound)}
	return r
}

// UninstallStatistics summarises a real run.
type UninstallStatistics struct {
	TotalRemoved int `json:"totalRemoved"`
	TotalFailed  int `json:"totalFailed"`
}

// UninstallReport is saved as dnaspec-uninstall-report.json.
type UninstallReport struct {
	Timestamp      time.Time           `json:"timestamp"`
	Mode           string              `json:"mode"`
	RemovedItems   []Item              `json:"removedItems"`
	FailedItems    []FailedItem        `json:"failedItems"`
	Statistics     UninstallStatistics `json:"statistics"`
	Platforms      map[string][]string `json:"platforms"`
	PythonPackages []string            `json:"pythonPackages"`
	NpmPackages    []string            `json:"npmPackages"`
}

// NewUninstallReport builds the report for an executed plan.
func NewUninstallReport(res *Result) *UninstallReport {
	r := &UninstallReport{
		Timestamp:      time.Now().UTC(),
		Mode:           ModeUninstall,
		RemovedItems:   nonNil(res.Removed),
		FailedItems:    res.Failed,
		Platforms:      PlatformMap(),
		PythonPackages: PythonPackages,
		NpmPackages:    NpmPackages,
	}
	if r.FailedItems == nil {
		r.FailedItems = []FailedItem{}
	}
	r.Statistics = UninstallStatistics{TotalRemoved: len(res.Removed), TotalFailed: len(res.Failed)}
	return r
}

func nonNil(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}

// WriteDryRunReport saves r in dir.
func WriteDryRunReport(dir string, r *DryRunReport) (string, error) {
	return report.Write(dir, report.DryRunFile, r)
}

// WriteUninstallReport saves r in dir.
func WriteUninstallReport(dir string, r *UninstallReport) (string, error) {
	return report.Write(dir, report.UninstallFile, r)
}
