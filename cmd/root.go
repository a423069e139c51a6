package cmd

import (
	"fmt"
	"os"

	"kg-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "kg-sync",
	Short: "Product catalog sync for schema.org knowledge graphs",
	Long: `kg-sync turns product records into schema.org entities with GS1 Digital
Link identifiers, validates them and pushes them to a knowledge-graph API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable
		// timestamps on a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
