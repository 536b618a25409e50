package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
)

var (
	configInitForce bool
	configInitUser  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the dnaspec configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := settings()
		data, err := config.Encode(s)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if s.Source != "" {
			fmt.Fprintf(out, "# %s\n", s.Source)
		} else {
			fmt.Fprintln(out, "# built-in defaults")
		}
		_, err = out.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a dnaspec.toml with the default settings",
	Long: `Writes the default settings to dnaspec.toml in the current directory,
or to the user config directory with --user.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := paths()
		path := filepath.Join(p.WorkDir, config.ConfigFileName)
		if configInitUser {
			path = p.UserConfigFile()
		}
		if err := config.WriteFile(path, config.Defaults(), configInitForce); err != nil {
			return errors.ConfigError(err.Error(), err)
		}
		logSuccess("%s", i18n.T("config.written", map[string]any{"Path": path}))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "Write to the user config directory")

	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
