package cmd

import (
	"fmt"
	"os"

	"rinksync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "rinksync",
	Short: "Rink schedule calendar sync",
	Long: `rinksync mirrors a published rink schedule feed into a managed slice
of a Google Calendar, reconciling on every run so events are never
duplicated, lost, or needlessly rewritten.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the debug (development) config so CLI
		// users get readable ISO8601 timestamps instead of epochs.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
