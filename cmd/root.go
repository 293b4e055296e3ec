package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/hsh/core/config"
	"github.com/josephlewis42/hsh/core/logger"
	"github.com/josephlewis42/hsh/core/shell"
	"github.com/josephlewis42/hsh/core/vos"
	"github.com/spf13/cobra"
)

var cfgPath string

// exit is replaced in tests.
var exit = os.Exit

func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.New(cmd.ErrOrStderr(), "", 0).Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd runs the interpreter when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hsh",
	Short: "A minimal line-oriented command interpreter",
	Long: `hsh reads one command per line, runs it and waits for it to finish.

Commands are split on spaces and tabs. Lines starting with # are ignored.
The builtins exit and env run inside the interpreter, everything else is
looked up on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		events, closer, err := openEvents(configuration)
		if err != nil {
			return err
		}

		hostOS := vos.NewOS()
		hostOS.VIO = vos.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

		sh := shell.NewShell(os.Args[0], hostOS, configuration)
		sh.Events = events.NewSession()
		status := sh.Run()

		if err := closer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: event log: %v\n", os.Args[0], err)
		}

		exit(status)
		return nil
	},
}

func openEvents(configuration *config.Configuration) (*logger.Logger, io.Closer, error) {
	if !configuration.HasEventLog() {
		return logger.NewNopLogRecorder(), io.NopCloser(nil), nil
	}

	fd, err := configuration.OpenEventLog()
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't open event log: %w", err)
	}

	return logger.NewJsonLinesLogRecorder(fd), fd, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration directory, built-in defaults if empty")
}
