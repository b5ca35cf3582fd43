package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/offlist/offlist/internal/aggregate"
	"github.com/offlist/offlist/internal/database"
	"github.com/offlist/offlist/internal/identity"
	"github.com/offlist/offlist/internal/model"
	"github.com/offlist/offlist/internal/scanner"
)

// ScanStep fans probes out across the scan plan and collects the raw
// per-source results.
//
// Design decision: the step normalizes the profile itself rather than
// receiving an identity, so a batch run can push different profiles
// through one pipeline instance.
type ScanStep struct {
	// dispatcher drives the concurrent probes.
	dispatcher *scanner.Dispatcher

	// plan enumerates the sources to probe.
	plan scanner.Plan

	// logger for structured logging.
	logger *slog.Logger
}

// ScanStepOption configures a ScanStep.
type ScanStepOption func(*ScanStep)

// WithScanLogger sets a custom logger for the scan step.
func WithScanLogger(logger *slog.Logger) ScanStepOption {
	return func(s *ScanStep) {
		s.logger = logger
	}
}

// NewScanStep creates the probing step.
func NewScanStep(dispatcher *scanner.Dispatcher, plan scanner.Plan, opts ...ScanStepOption) *ScanStep {
	s := &ScanStep{
		dispatcher: dispatcher,
		plan:       plan,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ScanStep) Name() string {
	return "scan"
}

// Do executes the scan step.
func (s *ScanStep) Do(ctx context.Context, report *model.ScanReport) error {
	id := identity.Normalize(report.Profile)
	if len(id.Variants) == 0 {
		return fmt.Errorf("profile %q has no usable name", report.ProfileName)
	}

	report.Sources = len(s.plan.Brokers()) + len(s.plan.Sites()) +
		len(s.plan.Social()) + len(s.plan.BusinessDirs()) + 1
	report.Results = s.dispatcher.Scan(ctx, id, s.plan)

	s.logger.Info("scan completed",
		"profile", report.ProfileName,
		"sources", report.Sources,
		"results", len(report.Results),
	)
	return ctx.Err()
}

// AggregateStep filters, deduplicates, ranks, and classifies the raw
// results into exposure candidates.
type AggregateStep struct {
	// aggregator applies the threshold, dedup, and ranking rules.
	aggregator *aggregate.Aggregator

	// logger for structured logging.
	logger *slog.Logger
}

// AggregateStepOption configures an AggregateStep.
type AggregateStepOption func(*AggregateStep)

// WithAggregateLogger sets a custom logger for the aggregate step.
func WithAggregateLogger(logger *slog.Logger) AggregateStepOption {
	return func(s *AggregateStep) {
		s.logger = logger
	}
}

// NewAggregateStep creates the aggregation step.
func NewAggregateStep(aggregator *aggregate.Aggregator, opts ...AggregateStepOption) *AggregateStep {
	s := &AggregateStep{
		aggregator: aggregator,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do executes the aggregation step.
func (s *AggregateStep) Do(_ context.Context, report *model.ScanReport) error {
	report.Candidates = s.aggregator.Aggregate(report.Results)
	report.Errors = aggregate.CountErrors(report.Results)

	s.logger.Info("aggregation completed",
		"profile", report.ProfileName,
		"candidates", len(report.Candidates),
		"fetch_errors", len(report.Errors),
	)
	return nil
}

// PersistStep upserts candidates as exposures and raises alerts for
// first-time findings. Without a store the step is skipped, which is
// how one-off scans run.
type PersistStep struct {
	// store receives the exposures and alerts.
	store *database.Store

	// logger for structured logging.
	logger *slog.Logger
}

// PersistStepOption configures a PersistStep.
type PersistStepOption func(*PersistStep)

// WithPersistLogger sets a custom logger for the persist step.
func WithPersistLogger(logger *slog.Logger) PersistStepOption {
	return func(s *PersistStep) {
		s.logger = logger
	}
}

// NewPersistStep creates the persistence step.
func NewPersistStep(store *database.Store, opts ...PersistStepOption) *PersistStep {
	s := &PersistStep{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Do executes the persistence step.
func (s *PersistStep) Do(ctx context.Context, report *model.ScanReport) error {
	if s.store == nil {
		s.logger.Debug("skipping persist, no store configured")
		return nil
	}

	for _, c := range report.Candidates {
		src := c.Result.Source
		exp := &model.Exposure{
			ProfileName:    report.ProfileName,
			SourceID:       src.ID,
			SourceIdentity: src.Identity(),
			SourceName:     src.Name,
			SourceType:     src.Category,
			Risk:           c.Risk,
			Confidence:     c.Result.Confidence,
			ProfileURL:     c.Result.ProfileURL,
			DataFound:      c.Result.DataFound,
		}

		stored, created, err := s.store.UpsertExposure(ctx, exp)
		if err != nil {
			return err
		}
		if !created {
			continue
		}

		report.NewExposures++
		if _, err := s.store.CreateAlert(ctx, &model.Alert{
			ProfileName: report.ProfileName,
			Type:        model.AlertNewExposure,
			Severity:    model.SeverityForRisk(c.Risk),
			Title:       fmt.Sprintf("New exposure on %s", src.Name),
			Description: fmt.Sprintf("Your data was found on %s with %.0f%% confidence.", src.Name, c.Result.Confidence*100),
			SourceURL:   stored.ProfileURL,
		}); err != nil {
			return err
		}
	}

	s.logger.Info("persistence completed",
		"profile", report.ProfileName,
		"candidates", len(report.Candidates),
		"new_exposures", report.NewExposures,
	)
	return nil
}

// DefaultPipeline assembles the standard scan pass: probe, aggregate,
// persist. A nil store yields a transient scan that only reports.
func DefaultPipeline(dispatcher *scanner.Dispatcher, plan scanner.Plan, aggregator *aggregate.Aggregator, store *database.Store, logger *slog.Logger) *Pipeline {
	p := New(WithLogger(logger))
	p.AddSteps(
		NewScanStep(dispatcher, plan, WithScanLogger(logger)),
		NewAggregateStep(aggregator, WithAggregateLogger(logger)),
		NewPersistStep(store, WithPersistLogger(logger)),
	)
	return p
}
