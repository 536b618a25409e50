package cmd

import (
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive DNASPEC shell",
	Long:  `Runs "python <cli_script> shell" in the current project with the terminal attached.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, "shell", nil)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
