// Package main provides the entry point for the Offlist CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for Offlist.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offlist",
		Short: "Find and remove your personal data from people-search sites",
		Long: `Offlist scans data brokers, people-search sites, social platforms, and
business directories for your exposed personal information.

Found exposures are scored for confidence, persisted locally, and can be
removed by filing opt-out requests (automated email where supported,
manual instructions otherwise). Confirmed removals are re-checked
periodically so re-listed data raises an alert.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewOptOutCmd())
	cmd.AddCommand(NewWorkerCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
