package environment

import (
	"context"
	"fmt"
	goruntime "runtime"
	"strings"
	"time"

	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/fallback"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// versionTimeout bounds a single "<tool> --version" call.
const versionTimeout = 15 * time.Second

// ToolSpec names a tool and the command used to detect it.
type ToolSpec struct {
	Name    string
	Command string
}

// AITools are the tools reported by setup.
var AITools = []ToolSpec{
	{Name: "Claude Code", Command: "claude"},
	{Name: "Stigmergy", Command: "stigmergy"},
	{Name: "npx", Command: "npx"},
	{Name: "Node.js", Command: "node"},
	{Name: "npm", Command: "npm"},
	{Name: "Git", Command: "git"},
}

// Tool is the detection result for one tool.
type Tool struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
}

// Environment is the set of tools the install pipeline depends on.
type Environment struct {
	OS     string
	Python Tool
	Git    Tool
}

// Detector checks the host for tools through a CommandExecutor.
type Detector struct {
	exec             system.CommandExecutor
	pythonCandidates []string
}

// NewDetector creates a detector. Empty candidates fall back to python,
// then python3.
func NewDetector(exec system.CommandExecutor, pythonCandidates []string) *Detector {
	if len(pythonCandidates) == 0 {
		pythonCandidates = []string{"python", "python3"}
	}
	return &Detector{exec: exec, pythonCandidates: pythonCandidates}
}

// Version runs "<command> --version" and returns the first output line.
func (d *Detector) Version(ctx context.Context, command string) (string, error) {
	out, err := d.exec.Output(ctx, system.Command{
		Name:    command,
		Args:    []string{"--version"},
		Timeout: versionTimeout,
	})
	if err != nil {
		return "", err
	}
	return firstLine(string(out)), nil
}

// Detect reports whether a single tool answers its version command.
func (d *Detector) Detect(ctx context.Context, spec ToolSpec) Tool {
	tool := Tool{Name: spec.Name, Command: spec.Command}
	version, err := d.Version(ctx, spec.Command)
	if err != nil {
		logging.Debug("tool not available", "tool", spec.Command, "error", err)
		return tool
	}
	tool.Available = true
	tool.Version = version
	return tool
}

// Tools detects each spec in order.
func (d *Detector) Tools(ctx context.Context, specs []ToolSpec) []Tool {
	tools := make([]Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, d.Detect(ctx, spec))
	}
	return tools
}

// Python returns the first candidate interpreter whose --version succeeds.
func (d *Detector) Python(ctx context.Context) (Tool, error) {
	var found Tool
	strategies := make([]fallback.Strategy, 0, len(d.pythonCandidates))
	for _, candidate := range d.pythonCandidates {
		candidate := candidate
		strategies = append(strategies, fallback.Strategy{
			Name: candidate,
			Run: func(ctx context.Context) error {
				version, err := d.Version(ctx, candidate)
				if err != nil {
					return err
				}
				found = Tool{Name: "Python", Command: candidate, Available: true, Version: version}
				return nil
			},
		})
	}

	if _, err := fallback.First(ctx, strategies...); err != nil {
		return Tool{Name: "Python"}, errors.MissingDependency("Python", err)
	}
	logging.Debug("detected python", "command", found.Command, "version", found.Version)
	return found, nil
}

// Pip checks "<python> -m pip --version".
func (d *Detector) Pip(ctx context.Context, python string) Tool {
	tool := Tool{Name: "pip", Command: python + " -m pip"}
	out, err := d.exec.Output(ctx, system.Command{
		Name:    python,
		Args:    []string{"-m", "pip", "--version"},
		Timeout: versionTimeout,
	})
	if err != nil {
		return tool
	}
	tool.Available = true
	tool.Version = firstLine(string(out))
	return tool
}

// Git checks that git is installed.
func (d *Detector) Git(ctx context.Context) (Tool, error) {
	tool := d.Detect(ctx, ToolSpec{Name: "Git", Command: "git"})
	if !tool.Available {
		return tool, errors.MissingDependency("Git", fmt.Errorf("git --version failed"))
	}
	return tool, nil
}

// Require checks for Python and, when needGit is set, Git. A missing tool
// is returned as a MissingDependency error.
func (d *Detector) Require(ctx context.Context, needGit bool) (*Environment, error) {
	env := &Environment{OS: goruntime.GOOS}

	python, err := d.Python(ctx)
	if err != nil {
		return nil, err
	}
	env.Python = python

	if needGit {
		git, err := d.Git(ctx)
		if err != nil {
			return nil, err
		}
		env.Git = git
	}
	return env, nil
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
