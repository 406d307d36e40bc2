package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/palabra/internal/bootstrap"
	"github.com/at-ishikawa/palabra/internal/config"
)

var (
	configFile      string
	debugMode       bool
	progressBackend ProgressBackend
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:          "palabra",
		Short:        "Spanish to English vocabulary drills",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debugMode)
		},
	}

	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./config.yml or $HOME/.config/palabra/config.yml)")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flags.Var(&progressBackend, "progress", fmt.Sprintf("override the progress backend. Possible values are %v", allProgressBackends))

	rootCommand.AddCommand(
		newQuizCommand(),
		newCheckCommand(),
		newExpandCommand(),
		newLessonsCommand(),
		newStatsCommand(),
		newValidateCommand(),
	)
	return rootCommand
}

func setupLogger(debug bool) {
	slog.SetDefault(bootstrap.NewLogger(config.LogConfig{}, os.Stderr, debug))
}
