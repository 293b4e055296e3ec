package cmd

import (
	"log"

	"github.com/josephlewis42/hsh/core/config"
	"github.com/spf13/cobra"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration into the --config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		dir := cfgPath
		if dir == "" {
			dir = "."
		}

		_, err := config.Initialize(dir, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
