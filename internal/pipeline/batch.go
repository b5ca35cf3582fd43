package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/offlist/offlist/internal/model"
)

// BatchProcessor scans several profiles, such as a household,
// concurrently.
//
// Design decision: a separate BatchProcessor rather than batch
// functionality on Pipeline keeps the Pipeline focused on single-scan
// execution and leaves room for different batch strategies.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each scan.
	// A factory ensures each scan gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent profile scans.
	// Each scan already fans out internally, so this stays small.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed scan reports.
	// Access is synchronized via mutex.
	results []*model.ScanReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithBatchConcurrency sets the maximum number of concurrent profile
// scans. Default is 2.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each scan to create a
// fresh pipeline instance, so pipeline state doesn't leak between
// scans.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     2,
		results:         make([]*model.ScanReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans multiple profiles concurrently. It respects the
// configured concurrency limit and context cancellation.
//
// Returns all reports collected, in input order, even for profiles
// whose scan failed; failures are recorded in the report itself.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, profiles []*model.Profile) ([]*model.ScanReport, error) {
	bp.logger.Info("starting batch scan",
		"profiles", len(profiles),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order.
	bp.results = make([]*model.ScanReport, len(profiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, profile := range profiles {
		i, profile := i, profile
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := model.NewScanReport(profile)
			bp.logger.Info("scanning profile",
				"profile", report.ProfileName,
				"index", i+1,
				"total", len(profiles),
			)

			pipe := bp.pipelineFactory()
			err := pipe.Execute(ctx, report)

			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			if err != nil {
				// The error is recorded in the report; keep scanning
				// the remaining profiles.
				bp.logger.Warn("profile scan failed",
					"profile", report.ProfileName,
					"error", err,
				)
				return nil
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch scan complete",
		"profiles", len(profiles),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}
