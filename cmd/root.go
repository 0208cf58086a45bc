package cmd

import (
	"fmt"
	"os"

	"codesync/core/logger"
	"codesync/feature/codes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Process exit codes.
const (
	ExitFailed    = 1
	ExitCancelled = 2
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "codesync",
	Short: "Classification code synchronization",
	Long: `codesync copies classification codes between a live element catalog and
portable snapshot files, and derives display names from them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a status derived from its error.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// Console format with the development config gives ISO8601 timestamps.
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}

	if codes.StatusOf(err) == codes.StatusCancelled {
		l.Warn("command cancelled", zap.Error(err))
	} else {
		l.Error("command failed", zap.Error(err))
	}
	_ = l.Sync()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch codes.StatusOf(err) {
	case codes.StatusSucceeded:
		return 0
	case codes.StatusCancelled:
		return ExitCancelled
	default:
		return ExitFailed
	}
}
