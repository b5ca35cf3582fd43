package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/offlist/offlist/internal/config"
	"github.com/offlist/offlist/internal/database"
	"github.com/offlist/offlist/internal/model"
	"github.com/offlist/offlist/internal/pipeline"
	"github.com/offlist/offlist/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan people-search sites and data brokers for your data",
		Long: `Scan probes data brokers, people-search sites, social platforms, business
directories, and a search engine for the profile configured in .offlist.yaml.

Each source is fetched concurrently, its content is matched against the
profile's identity signals, and matches above the confidence threshold are
recorded as exposures. Exposures are persisted locally so removal requests
and re-listing checks can track them over time.

Examples:
  # Scan with the profile from .offlist.yaml
  offlist scan

  # Use a specific configuration file
  offlist scan -c myconfig.yaml

  # Output JSON report to a file
  offlist scan --json -o report.json

  # One-off scan without persisting exposures
  offlist scan --no-save`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Fetch timeout for each source")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum number of concurrent source fetches")
	cmd.Flags().Float64("threshold", config.DefaultConfidenceThreshold,
		"Minimum confidence score to record an exposure (0..1)")

	// Household scanning flags
	cmd.Flags().IntP("batch", "b", 2,
		"Number of household profiles scanned concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .offlist.yaml in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not persist exposures to the local database")

	return cmd
}

// reportOptions carries the output-format flags through the scan run.
type reportOptions struct {
	json     bool
	markdown bool
	path     string
	verbose  bool
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, ropts, batch, err := buildScanConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, ropts, batch, logger)
}

// buildScanConfig creates a Config from cobra command flags.
func buildScanConfig(cmd *cobra.Command) (*config.Config, reportOptions, int, error) {
	var ropts reportOptions

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, ropts, 0, err
	}

	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, ropts, 0, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, ropts, 0, err
	}

	cfg.ConfidenceThreshold, err = cmd.Flags().GetFloat64("threshold")
	if err != nil {
		return nil, ropts, 0, err
	}

	batch, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, ropts, 0, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, ropts, 0, err
	}
	if noSave {
		cfg.DBDir = ""
	}

	ropts.json, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, ropts, 0, err
	}

	ropts.markdown, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, ropts, 0, err
	}

	if ropts.json && ropts.markdown {
		return nil, ropts, 0, errors.New("--json and --markdown are mutually exclusive")
	}

	ropts.path, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, ropts, 0, err
	}

	ropts.verbose = cfg.Verbose

	return cfg, ropts, batch, nil
}

// runScan executes the scan for every configured profile.
func runScan(ctx context.Context, cfg *config.Config, ropts reportOptions, batch int, logger *slog.Logger) error {
	profiles, err := cfg.Profiles()
	if err != nil {
		return fmt.Errorf("profile error: %w (run 'offlist init' to create a config file)", err)
	}

	var store *database.Store
	if cfg.DBDir != "" {
		store, err = openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	reg, err := buildRegistry(ctx, store, cfg)
	if err != nil {
		return err
	}

	dispatcher := buildDispatcher(cfg, logger)
	aggregator := buildAggregator(cfg)

	logger.Info("starting scan",
		"profiles", len(profiles),
		"sources", reg.Len(),
		"persist", store != nil,
	)

	newPipeline := func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline(dispatcher, reg, aggregator, store, logger)
	}

	if len(profiles) > 1 && batch > 1 {
		return runBatchScan(ctx, profiles, newPipeline, batch, ropts, logger)
	}
	return runSequentialScan(ctx, profiles, newPipeline, ropts, logger)
}

// runSequentialScan scans profiles one at a time.
func runSequentialScan(ctx context.Context, profiles []*model.Profile, newPipeline func() *pipeline.Pipeline, ropts reportOptions, logger *slog.Logger) error {
	for _, profile := range profiles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		scanReport := model.NewScanReport(profile)

		fmt.Printf("Scanning for %s...\n", scanReport.ProfileName)
		startTime := time.Now()

		if err := newPipeline().Execute(ctx, scanReport); err != nil {
			logger.Error("scan failed", "profile", scanReport.ProfileName, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", scanReport.ProfileName, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputReport(ropts, scanReport); err != nil {
			logger.Error("report failed", "profile", scanReport.ProfileName, "error", err)
		}
	}

	return nil
}

// runBatchScan scans household profiles concurrently using the
// BatchProcessor.
func runBatchScan(ctx context.Context, profiles []*model.Profile, newPipeline func() *pipeline.Pipeline, batch int, ropts reportOptions, logger *slog.Logger) error {
	fmt.Printf("Starting batch scan of %d profiles (concurrency: %d)...\n\n",
		len(profiles), batch)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(newPipeline,
		pipeline.WithBatchConcurrency(batch),
		pipeline.WithBatchLogger(logger),
	)

	reports, err := bp.ProcessBatch(ctx, profiles)

	for i, scanReport := range reports {
		if scanReport == nil {
			continue
		}
		fmt.Printf("[%d/%d] Scan completed: %s\n", i+1, len(profiles), scanReport.ProfileName)
		if rerr := outputReport(ropts, scanReport); rerr != nil {
			logger.Error("report failed", "profile", scanReport.ProfileName, "error", rerr)
		}
	}

	fmt.Printf("\nBatch scan completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	return err
}

// outputReport writes the scan report in the requested format.
func outputReport(ropts reportOptions, scanReport *model.ScanReport) error {
	var output *os.File
	if ropts.path != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(ropts.path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain PII, so keep them owner-readable only.
		f, err := os.OpenFile(ropts.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case ropts.json:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case ropts.markdown:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(ropts.verbose))
	}

	_, err := writer.Write(scanReport)
	return err
}
