package cmd

import (
	"fmt"
	goruntime "runtime"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/project"
	"github.com/ptreezh/dnaspec-cli/internal/workspace"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version, platform, paths and project details",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	p := paths()
	s := settings()

	fmt.Fprintf(out, "dnaspec: %s\n", config.Version)
	fmt.Fprintf(out, "Platform: %s/%s\n", goruntime.GOOS, goruntime.GOARCH)
	fmt.Fprintf(out, "Language: %s\n", i18n.GetLang())
	fmt.Fprintf(out, "Work dir: %s\n", p.WorkDir)
	fmt.Fprintf(out, "State dir: %s\n", p.StateDir)

	source := s.Source
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintf(out, "Config: %s\n", source)
	fmt.Fprintln(out)

	info := project.NewAnalyzer(p.WorkDir).Analyze()
	fmt.Fprintln(out, "Project:")
	fmt.Fprintf(out, "  src/: %s\n", boolStatus(info.HasSrc))
	fmt.Fprintf(out, "  pyproject.toml: %s\n", boolStatus(info.HasPyproject))
	fmt.Fprintf(out, "  package.json: %s\n", boolStatus(info.HasPackageJSON))
	if info.IsProject() {
		fmt.Fprintf(out, "  Name: %s\n", info.Name())
		if v := info.Version(); v != "" {
			fmt.Fprintf(out, "  Version: %s\n", v)
		}
	}

	layout := workspace.NewLayout(p.WorkDir, s.TempDir, s.RepoDir)
	ws := workspace.Resolve(layout)
	fmt.Fprintf(out, "  Install source: %s\n", ws.Source)

	if cfg, err := config.LoadProjectConfig(p.WorkDir); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Setup (%s):\n", config.ProjectConfigFile)
		fmt.Fprintf(out, "  Version: %s\n", cfg.Version)
		fmt.Fprintf(out, "  Configured: %s\n", cfg.Timestamp.Local().Format("2006-01-02 15:04:05"))
		names := make([]string, 0, len(cfg.DetectedTools))
		for name := range cfg.DetectedTools {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %s\n", name, boolStatus(cfg.DetectedTools[name]))
		}
	}

	return nil
}

func boolStatus(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}
