package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/app"
	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configFile string
	langFlag   string
	keepTemp   bool
)

var rootCmd = &cobra.Command{
	Use:   "dnaspec",
	Short: "DNASPEC context engineering skills installer and CLI",
	Long: `dnaspec installs the DNASPEC context engineering skills and forwards
commands to the Python implementation.

Full-install commands (install, deploy, integrate) locate or clone the
project, install it with pip and run the target script. Query commands
(validate, list --installed) read the installed package without cloning.
Project commands (exec, shell, slash, security) run the CLI script in the
current project.`,
	Version:           config.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cmd.Help(); err != nil {
			return err
		}
		logInfo("%s", i18n.T("root.tips_hint"))
		return nil
	},
}

// setupRun configures logging, user output, settings and the message
// catalog before any command runs.
func setupRun(cmd *cobra.Command, args []string) error {
	logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
	logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := app.Default.LoadSettings(cmd.Flags(), configFile)
	if err != nil {
		i18n.Init(config.LangFromEnv())
		return errors.ConfigError("failed to load configuration", err)
	}
	i18n.Init(s.Lang)
	logging.Debug("settings loaded", "lang", s.Lang, "source", s.Source, "workDir", paths().WorkDir)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a dnaspec.toml config file")
	rootCmd.PersistentFlags().StringVar(&langFlag, config.FlagLang, "", "Output language (en or zh)")
	rootCmd.PersistentFlags().BoolVar(&keepTemp, config.FlagKeepTemp, false, "Keep the temporary clone after a full install")
	rootCmd.SetVersionTemplate("dnaspec {{.Version}}\n")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
