package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/offlist/offlist/internal/config"
	"github.com/offlist/offlist/internal/database"
	"github.com/offlist/offlist/internal/identity"
	"github.com/offlist/offlist/internal/model"
	"github.com/offlist/offlist/internal/monitor"
	"github.com/offlist/offlist/internal/pipeline"
	"github.com/offlist/offlist/internal/registry"
	"github.com/offlist/offlist/internal/scanner"
)

// Default worker cadences. Removal requests are cheap to process, so
// they run often; full rescans hit every source and stay daily.
const (
	defaultProcessInterval = time.Hour
	defaultMonitorInterval = 6 * time.Hour
	defaultRescanInterval  = 24 * time.Hour
)

// NewWorkerCmd creates the worker command.
func NewWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the background removal and monitoring worker",
		Long: `Worker runs until interrupted, periodically driving the removal and
monitoring machinery:

- pending removal requests are executed (process interval)
- confirmed removals are re-probed for re-listing (monitor interval)
- every profile gets a full rescan to catch new exposures (rescan interval)

Re-listed data and newly found exposures raise alerts; view them with
'offlist history --alerts'.

Examples:
  # Run with default cadences
  offlist worker

  # Tighter monitoring cadence
  offlist worker --monitor-interval 1h

  # Run one pass of everything and exit (for cron)
  offlist worker --once`,
		Args: cobra.NoArgs,
		RunE: runWorkerCmd,
	}

	cmd.Flags().Duration("process-interval", defaultProcessInterval,
		"How often pending removal requests are executed")
	cmd.Flags().Duration("monitor-interval", defaultMonitorInterval,
		"How often confirmed removals are re-checked for re-listing")
	cmd.Flags().Duration("rescan-interval", defaultRescanInterval,
		"How often profiles are fully rescanned")
	cmd.Flags().Bool("once", false,
		"Run one pass of every task and exit")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .offlist.yaml in current or home directory)")

	return cmd
}

// worker bundles everything one daemon run needs.
type worker struct {
	cfg        *config.Config
	store      *database.Store
	reg        *registry.Registry
	dispatcher *scanner.Dispatcher
	profiles   []*model.Profile
	logger     *slog.Logger
}

// runWorkerCmd executes the worker command.
func runWorkerCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	processInterval, err := cmd.Flags().GetDuration("process-interval")
	if err != nil {
		return err
	}
	monitorInterval, err := cmd.Flags().GetDuration("monitor-interval")
	if err != nil {
		return err
	}
	rescanInterval, err := cmd.Flags().GetDuration("rescan-interval")
	if err != nil {
		return err
	}
	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	profiles, err := cfg.Profiles()
	if err != nil {
		return fmt.Errorf("profile error: %w (run 'offlist init' to create a config file)", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	reg, err := buildRegistry(ctx, store, cfg)
	if err != nil {
		return err
	}

	w := &worker{
		cfg:        cfg,
		store:      store,
		reg:        reg,
		dispatcher: buildDispatcher(cfg, logger),
		profiles:   profiles,
		logger:     logger,
	}

	if once {
		w.processPass(ctx)
		w.monitorPass(ctx)
		w.rescanPass(ctx)
		return ctx.Err()
	}

	return w.run(ctx, processInterval, monitorInterval, rescanInterval)
}

// run drives the periodic tasks until the context is cancelled.
func (w *worker) run(ctx context.Context, processInterval, monitorInterval, rescanInterval time.Duration) error {
	w.logger.Info("worker started",
		"profiles", len(w.profiles),
		"processInterval", processInterval,
		"monitorInterval", monitorInterval,
		"rescanInterval", rescanInterval,
	)
	fmt.Println("Worker running; press Ctrl-C to stop.")

	// Catch up on pending work immediately rather than waiting a full
	// interval after startup.
	w.processPass(ctx)
	w.monitorPass(ctx)

	processTicker := time.NewTicker(processInterval)
	defer processTicker.Stop()
	monitorTicker := time.NewTicker(monitorInterval)
	defer monitorTicker.Stop()
	rescanTicker := time.NewTicker(rescanInterval)
	defer rescanTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopping")
			fmt.Println("\nWorker stopped.")
			return nil
		case <-processTicker.C:
			w.processPass(ctx)
		case <-monitorTicker.C:
			w.monitorPass(ctx)
		case <-rescanTicker.C:
			w.rescanPass(ctx)
		}
	}
}

// processPass executes pending removal requests for every profile.
func (w *worker) processPass(ctx context.Context) {
	for _, profile := range w.profiles {
		if ctx.Err() != nil {
			return
		}

		mgr := buildManager(w.store, w.cfg, profile, w.logger)
		stats, err := mgr.ProcessPending(ctx)
		if err != nil {
			w.logger.Error("processing pending requests failed",
				"profile", profile.FullName(), "error", err)
			continue
		}
		if stats.Processed > 0 {
			w.logger.Info("processed pending requests",
				"profile", profile.FullName(),
				"processed", stats.Processed,
				"succeeded", stats.Succeeded,
				"manual", stats.Manual,
				"failed", stats.Failed,
			)
		}
	}
}

// monitorPass re-checks confirmed removals for re-listing.
func (w *worker) monitorPass(ctx context.Context) {
	for _, profile := range w.profiles {
		if ctx.Err() != nil {
			return
		}

		mon := monitor.NewMonitor(w.store, w.dispatcher,
			identity.Normalize(profile), profile.FullName(), planSources(w.reg), w.logger,
			monitor.WithWindow(w.cfg.MonitorWindow),
		)
		stats, err := mon.CheckRemoved(ctx)
		if err != nil {
			w.logger.Error("re-listing check failed",
				"profile", profile.FullName(), "error", err)
			continue
		}
		if stats.Checked > 0 {
			w.logger.Info("re-listing check complete",
				"profile", profile.FullName(),
				"checked", stats.Checked,
				"relisted", stats.Relisted,
				"clean", stats.Clean,
				"skipped", stats.Skipped,
			)
		}
		if stats.Relisted > 0 {
			fmt.Printf("WARNING: %d removed listing(s) for %s re-appeared; see 'offlist history --alerts'.\n",
				stats.Relisted, profile.FullName())
		}
	}
}

// rescanPass runs the full scan pipeline for every profile, persisting
// new exposures.
func (w *worker) rescanPass(ctx context.Context) {
	aggregator := buildAggregator(w.cfg)

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(w.dispatcher, w.reg, aggregator, w.store, w.logger)
		},
		pipeline.WithBatchLogger(w.logger),
	)

	reports, err := bp.ProcessBatch(ctx, w.profiles)
	if err != nil {
		w.logger.Error("rescan failed", "error", err)
		return
	}

	for _, rep := range reports {
		if rep == nil {
			continue
		}
		w.logger.Info("rescan complete",
			"profile", rep.ProfileName,
			"exposures", len(rep.Candidates),
			"new", rep.NewExposures,
		)
	}
}
