package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/megaspaz/pychmod/internal/cli"
)

var (
	configPath string
	logLevel   string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(cli.ExitCode(err))
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewRootCmd()

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.LogLevel = &logLevel

	// Add subcommands
	cmd.AddCommand(
		cli.NewVersionCmd(),
	)

	return cmd
}
