package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/audit"
	"github.com/ptreezh/dnaspec-cli/internal/guide"
	"github.com/ptreezh/dnaspec-cli/internal/installer"
)

var (
	deployForceStigmergy bool
	deployForceProject   bool
	deployVerify         bool
	deployList           bool

	integratePlatform  string
	integrateList      bool
	integrateStigmergy bool
	integrateProject   bool
	integrateStatus    bool
)

var installCmd = &cobra.Command{
	Use:     "install [args...]",
	Aliases: []string{"init"},
	Short:   "Install DNASPEC and run auto-configuration",
	Long: `Installs the DNASPEC Python package and runs its auto-configuration.

The project is used in place when the current directory is a DNASPEC
checkout, reused from a previous clone, or cloned from the first reachable
mirror. Remaining arguments are passed to run_auto_config.py.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd, installer.MustRoute(cmd.CalledAs()), args)
	},
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy DNASPEC skills to AI tools",
	Long:  `Installs DNASPEC if needed and runs deploy_cli.py with the selected options.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var forwarded []string
		if deployForceStigmergy {
			forwarded = append(forwarded, "--force-stigmergy")
		}
		if deployForceProject {
			forwarded = append(forwarded, "--force-project")
		}
		if deployVerify {
			forwarded = append(forwarded, "--verify")
		}
		if deployList {
			forwarded = append(forwarded, "--list")
		}
		return runInstall(cmd, installer.MustRoute("deploy"), forwarded)
	},
}

var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Integrate DNASPEC with AI platforms",
	Long:  `Installs DNASPEC if needed and runs the integrate subcommand of the project CLI.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var forwarded []string
		if integratePlatform != "" {
			forwarded = append(forwarded, "--platform", integratePlatform)
		}
		if integrateList {
			forwarded = append(forwarded, "--list")
		}
		if integrateStigmergy {
			forwarded = append(forwarded, "--stigmergy")
		}
		if integrateProject {
			forwarded = append(forwarded, "--project")
		}
		if integrateStatus {
			forwarded = append(forwarded, "--status")
		}
		return runInstall(cmd, installer.MustRoute("integrate"), forwarded)
	},
}

func init() {
	deployCmd.Flags().BoolVar(&deployForceStigmergy, "force-stigmergy", false, "Force Stigmergy deployment mode")
	deployCmd.Flags().BoolVar(&deployForceProject, "force-project", false, "Force project-level deployment mode")
	deployCmd.Flags().BoolVar(&deployVerify, "verify", false, "Verify the deployment")
	deployCmd.Flags().BoolVar(&deployList, "list", false, "List deployable skills")

	integrateCmd.Flags().StringVar(&integratePlatform, "platform", "", "Integrate with a single platform")
	integrateCmd.Flags().BoolVar(&integrateList, "list", false, "List supported platforms")
	integrateCmd.Flags().BoolVar(&integrateStigmergy, "stigmergy", false, "Use Stigmergy cross-CLI integration")
	integrateCmd.Flags().BoolVar(&integrateProject, "project", false, "Integrate at project level")
	integrateCmd.Flags().BoolVar(&integrateStatus, "status", false, "Show integration status")

	rootCmd.AddCommand(installCmd, deployCmd, integrateCmd)
}

// runInstall runs the full install pipeline for route and records it in
// the history.
func runInstall(cmd *cobra.Command, route installer.Route, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := newInstaller(cmd).Install(ctx, route, args)
	details := res.Summary()
	if len(args) > 0 {
		details += " args=" + strings.Join(args, " ")
	}
	recordRun(audit.EventInstall, route.Command, details, err)
	if err != nil {
		return err
	}

	renderGuide(cmd, guide.PostInstall)
	return nil
}
