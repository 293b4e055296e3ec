package cmd

import (
	"fmt"

	"github.com/josephlewis42/hsh/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands run inside the interpreter
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, v := range shell.ListBuiltins() {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
