package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/offlist/offlist/internal/database"
	"github.com/offlist/offlist/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded exposures, removal requests, and alerts",
		Long: `History reads the local database and shows what past scans found and
what happened to it since.

By default it lists exposures with their lifecycle status (found,
pending_removal, removed, re_listed). Use --requests for the removal
request audit trail and --alerts for notifications raised by scans and
the monitor.

Examples:
  # List all recorded exposures for the configured profile
  offlist history

  # Only exposures still listed
  offlist history --status found

  # Removal request audit trail
  offlist history --requests

  # Recent alerts (new exposures, re-listings, confirmed removals)
  offlist history --alerts`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("requests", "r", false,
		"List removal requests instead of exposures")
	cmd.Flags().BoolP("alerts", "a", false,
		"List alerts instead of exposures")
	cmd.Flags().StringP("status", "s", "",
		"Filter exposures by status (found, pending_removal, removed, re_listed)")
	cmd.Flags().IntP("limit", "l", 50,
		"Maximum number of alerts to show")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .offlist.yaml in current or home directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose)

	profile, err := cfg.RequireProfile()
	if err != nil {
		return fmt.Errorf("profile error: %w (run 'offlist init' to create a config file)", err)
	}

	showRequests, err := cmd.Flags().GetBool("requests")
	if err != nil {
		return err
	}
	showAlerts, err := cmd.Flags().GetBool("alerts")
	if err != nil {
		return err
	}
	statusStr, err := cmd.Flags().GetString("status")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case showRequests:
		return listRequestHistory(ctx, store, profile.FullName())
	case showAlerts:
		return listAlertHistory(ctx, store, profile.FullName(), limit)
	default:
		return listExposureHistory(ctx, store, profile.FullName(), statusStr)
	}
}

// listExposureHistory prints the exposure table with a status summary.
func listExposureHistory(ctx context.Context, store *database.Store, profileName, statusStr string) error {
	var statuses []model.ExposureStatus
	if statusStr != "" {
		statuses = append(statuses, model.ExposureStatus(statusStr))
	}

	exposures, err := store.ListExposures(ctx, profileName, statuses...)
	if err != nil {
		return err
	}

	if len(exposures) == 0 {
		fmt.Printf("No exposures recorded for %s.\n", profileName)
		fmt.Println("\nUse 'offlist scan' to scan for exposed data.")
		return nil
	}

	// Status summary: listed vs in-flight vs gone.
	counts := map[model.ExposureStatus]int{}
	for _, exp := range exposures {
		counts[exp.Status]++
	}

	fmt.Printf("Exposures for %s (%d):\n\n", profileName, len(exposures))
	fmt.Printf("  found: %d  pending_removal: %d  removed: %d  re_listed: %d\n\n",
		counts[model.ExposureFound],
		counts[model.ExposurePendingRemoval],
		counts[model.ExposureRemoved],
		counts[model.ExposureRelisted],
	)

	fmt.Printf("  %-6s  %-24s  %-16s  %-6s  %-6s  %s\n",
		"ID", "Source", "Status", "Risk", "Conf", "First Seen")
	fmt.Println("  " + strings.Repeat("-", 76))
	for _, exp := range exposures {
		fmt.Printf("  %-6d  %-24s  %-16s  %-6s  %3.0f%%  %s\n",
			exp.ID,
			truncate(exp.SourceName, 24),
			string(exp.Status),
			string(exp.Risk),
			exp.Confidence*100,
			exp.FirstDetectedAt.Format("2006-01-02"),
		)
	}

	fmt.Println("\nUse 'offlist optout file <id>' to request removal of a listed exposure.")

	return nil
}

// listRequestHistory prints the removal request audit trail.
func listRequestHistory(ctx context.Context, store *database.Store, profileName string) error {
	requests, err := store.ListRequests(ctx, profileName, "")
	if err != nil {
		return err
	}

	if len(requests) == 0 {
		fmt.Printf("No removal requests recorded for %s.\n", profileName)
		return nil
	}

	fmt.Printf("Removal requests for %s (%d):\n\n", profileName, len(requests))
	fmt.Printf("  %-6s  %-24s  %-16s  %-10s  %-12s  %s\n",
		"ID", "Source", "Status", "Method", "Submitted", "Completed")
	fmt.Println("  " + strings.Repeat("-", 84))
	for _, req := range requests {
		submitted := "-"
		if req.SubmittedAt != nil {
			submitted = req.SubmittedAt.Format("2006-01-02")
		}
		completed := "-"
		if req.CompletedAt != nil {
			completed = req.CompletedAt.Format("2006-01-02")
		}
		method := string(req.MethodUsed)
		if method == "" {
			method = "-"
		}
		fmt.Printf("  %-6d  %-24s  %-16s  %-10s  %-12s  %s\n",
			req.ID, truncate(req.SourceName, 24), string(req.Status), method, submitted, completed)
	}

	return nil
}

// listAlertHistory prints recent alerts, newest first.
func listAlertHistory(ctx context.Context, store *database.Store, profileName string, limit int) error {
	alerts, err := store.ListAlerts(ctx, profileName, limit)
	if err != nil {
		return err
	}

	if len(alerts) == 0 {
		fmt.Printf("No alerts recorded for %s.\n", profileName)
		return nil
	}

	fmt.Printf("Alerts for %s (%d):\n\n", profileName, len(alerts))
	for _, alert := range alerts {
		fmt.Printf("  [%s] %s  %s\n",
			strings.ToUpper(alert.Severity.String()),
			alert.CreatedAt.Format("2006-01-02 15:04"),
			alert.Title,
		)
		if alert.Description != "" {
			fmt.Printf("      %s\n", alert.Description)
		}
		if alert.SourceURL != "" {
			fmt.Printf("      %s\n", alert.SourceURL)
		}
	}

	return nil
}
