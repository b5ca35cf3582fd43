package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/offlist/offlist/internal/database"
	"github.com/offlist/offlist/internal/identity"
	"github.com/offlist/offlist/internal/model"
	"github.com/offlist/offlist/internal/monitor"
	"github.com/offlist/offlist/internal/removal"
)

// NewOptOutCmd creates the optout command group.
func NewOptOutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optout",
		Short: "File and track removal requests for found exposures",
		Long: `Optout files removal requests against the sources where your data was
found during a scan.

Sources with a known opt-out email receive an automated CCPA/deletion
letter. Sources that require a web form or a CAPTCHA-protected flow fall
back to printed manual instructions; the request stays open until you
confirm completion.

Examples:
  # File removal requests for every listed exposure
  offlist optout file --all

  # File a removal request for one exposure (see 'offlist history' for IDs)
  offlist optout file 12

  # List open removal requests
  offlist optout list

  # Mark a manual request as done after completing the site's flow
  offlist optout complete 3

  # Re-check whether a source actually removed the listing
  offlist optout verify 12`,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .offlist.yaml in current or home directory)")

	cmd.AddCommand(newOptOutFileCmd())
	cmd.AddCommand(newOptOutListCmd())
	cmd.AddCommand(newOptOutCompleteCmd())
	cmd.AddCommand(newOptOutFailCmd())
	cmd.AddCommand(newOptOutVerifyCmd())

	return cmd
}

// newOptOutFileCmd creates the "optout file" subcommand.
func newOptOutFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file [exposure-id]",
		Short: "File removal requests for one or all exposures",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOptOutFileCmd,
	}

	cmd.Flags().BoolP("all", "a", false,
		"File requests for every exposure still listed")

	return cmd
}

// runOptOutFileCmd executes the "optout file" subcommand.
func runOptOutFileCmd(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	if !all && len(args) == 0 {
		return errors.New("an exposure ID is required (or use --all)")
	}

	return withManager(cmd, func(ctx context.Context, mgr *removal.Manager, _ *database.Store) error {
		if all {
			filed, skipped, err := mgr.FileAll(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Filed %d removal request(s), %d skipped (already in progress).\n", filed, skipped)
			if filed > 0 {
				fmt.Println("\nUse 'offlist optout list' to see request status and manual steps.")
			}
			return nil
		}

		exposureID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exposure ID %q", args[0])
		}

		req, err := mgr.FileRequest(ctx, exposureID)
		if err != nil {
			switch {
			case errors.Is(err, removal.ErrActiveRequest):
				return fmt.Errorf("exposure %d already has a removal request in progress", exposureID)
			case errors.Is(err, removal.ErrExposureRemoved):
				return fmt.Errorf("exposure %d is already removed", exposureID)
			case errors.Is(err, database.ErrNotFound):
				return fmt.Errorf("exposure %d not found (use 'offlist history' to list exposures)", exposureID)
			}
			return err
		}

		printRequest(req)
		return nil
	})
}

// newOptOutListCmd creates the "optout list" subcommand.
func newOptOutListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List removal requests",
		Args:  cobra.NoArgs,
		RunE:  runOptOutListCmd,
	}

	cmd.Flags().StringP("status", "s", "",
		"Filter by status (pending, submitted, requires_action, completed, failed)")

	return cmd
}

// runOptOutListCmd executes the "optout list" subcommand.
func runOptOutListCmd(cmd *cobra.Command, _ []string) error {
	statusStr, err := cmd.Flags().GetString("status")
	if err != nil {
		return err
	}

	return withManager(cmd, func(ctx context.Context, mgr *removal.Manager, store *database.Store) error {
		requests, err := store.ListRequests(ctx, mgr.ProfileName(), model.RequestStatus(statusStr))
		if err != nil {
			return err
		}

		if len(requests) == 0 {
			fmt.Println("No removal requests found.")
			fmt.Println("\nUse 'offlist optout file --all' to file requests for found exposures.")
			return nil
		}

		fmt.Printf("Removal requests (%d):\n\n", len(requests))
		fmt.Printf("  %-6s  %-24s  %-16s  %-10s  %s\n", "ID", "Source", "Status", "Method", "Expected")
		fmt.Println("  " + strings.Repeat("-", 74))
		for _, req := range requests {
			expected := "-"
			if req.ExpectedCompletion != nil {
				expected = req.ExpectedCompletion.Format("2006-01-02")
			}
			method := string(req.MethodUsed)
			if method == "" {
				method = "-"
			}
			fmt.Printf("  %-6d  %-24s  %-16s  %-10s  %s\n",
				req.ID, truncate(req.SourceName, 24), string(req.Status), method, expected)
		}

		fmt.Println("\nRequests delivered by the manual method need you to finish the site's")
		fmt.Println("flow; run 'offlist optout complete <id>' once done.")

		return nil
	})
}

// newOptOutCompleteCmd creates the "optout complete" subcommand.
func newOptOutCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <request-id>",
		Short: "Mark a removal request as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid request ID %q", args[0])
			}

			return withManager(cmd, func(ctx context.Context, mgr *removal.Manager, _ *database.Store) error {
				if err := mgr.Complete(ctx, requestID); err != nil {
					return err
				}
				fmt.Printf("Request %d marked completed; exposure recorded as removed.\n", requestID)
				fmt.Println("The monitor will re-check the source periodically for re-listing.")
				return nil
			})
		},
	}
}

// newOptOutFailCmd creates the "optout fail" subcommand.
func newOptOutFailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fail <request-id>",
		Short: "Mark a removal request as failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid request ID %q", args[0])
			}

			note, err := cmd.Flags().GetString("note")
			if err != nil {
				return err
			}

			return withManager(cmd, func(ctx context.Context, mgr *removal.Manager, _ *database.Store) error {
				if err := mgr.Fail(ctx, requestID, note); err != nil {
					return err
				}
				fmt.Printf("Request %d marked failed; the exposure is listed again and can be re-filed.\n", requestID)
				return nil
			})
		},
	}

	cmd.Flags().StringP("note", "n", "",
		"Reason the request failed, kept in the audit trail")

	return cmd
}

// newOptOutVerifyCmd creates the "optout verify" subcommand.
func newOptOutVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <exposure-id>",
		Short: "Probe a source to confirm a removal actually happened",
		Args:  cobra.ExactArgs(1),
		RunE:  runOptOutVerifyCmd,
	}
}

// runOptOutVerifyCmd executes the "optout verify" subcommand.
func runOptOutVerifyCmd(cmd *cobra.Command, args []string) error {
	exposureID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid exposure ID %q", args[0])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose)

	profile, err := cfg.RequireProfile()
	if err != nil {
		return fmt.Errorf("profile error: %w (run 'offlist init' to create a config file)", err)
	}

	ctx := cmd.Context()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	reg, err := buildRegistry(ctx, store, cfg)
	if err != nil {
		return err
	}

	mon := monitor.NewMonitor(store, buildDispatcher(cfg, logger),
		identity.Normalize(profile), profile.FullName(), planSources(reg), logger,
		monitor.WithWindow(cfg.MonitorWindow),
	)

	removed, err := mon.Verify(ctx, exposureID)
	if err != nil {
		return err
	}

	if removed {
		fmt.Printf("Exposure %d is no longer listed; removal confirmed.\n", exposureID)
	} else {
		fmt.Printf("Exposure %d is still listed at the source.\n", exposureID)
	}
	return nil
}

// withManager wires configuration, store, and removal manager, then
// runs fn with a background context.
func withManager(cmd *cobra.Command, fn func(context.Context, *removal.Manager, *database.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose)

	profile, err := cfg.RequireProfile()
	if err != nil {
		return fmt.Errorf("profile error: %w (run 'offlist init' to create a config file)", err)
	}

	ctx := cmd.Context()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, buildManager(store, cfg, profile, logger), store)
}

// printRequest summarizes a freshly filed removal request.
func printRequest(req *model.RemovalRequest) {
	fmt.Printf("Removal request %d filed against %s.\n", req.ID, req.SourceName)
	fmt.Printf("  Status: %s\n", req.Status)
	if req.MethodUsed != "" {
		fmt.Printf("  Method: %s\n", req.MethodUsed)
	}
	if req.Confirmation != "" {
		fmt.Printf("  Confirmation: %s\n", req.Confirmation)
	}
	if req.ExpectedCompletion != nil {
		fmt.Printf("  Expected completion: %s\n", req.ExpectedCompletion.Format("2006-01-02"))
	}
	if req.RequiresUserAction && req.Instructions != "" {
		fmt.Printf("\nThis source requires manual action:\n\n%s\n", indent(req.Instructions, "  "))
		fmt.Println("\nRun 'offlist optout complete' with this request ID once you finish.")
	}
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// truncate shortens a string for fixed-width table display.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
