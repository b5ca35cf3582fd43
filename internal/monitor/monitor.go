package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/offlist/offlist/internal/database"
	"github.com/offlist/offlist/internal/identity"
	"github.com/offlist/offlist/internal/model"
)

// SourceScanner rechecks a single source. *scanner.Dispatcher
// satisfies it.
type SourceScanner interface {
	ScanSource(ctx context.Context, src model.Source, id *identity.Identity) model.ScanResult
}

// CheckStats summarizes one re-listing pass.
type CheckStats struct {
	// Checked counts exposures that were actually probed.
	Checked int

	// Relisted counts exposures whose data reappeared.
	Relisted int

	// Clean counts exposures confirmed still absent.
	Clean int

	// Skipped counts exposures that could not be probed, either
	// because the source is gone from the plan or the fetch failed.
	Skipped int
}

// Monitor watches a profile's removed exposures for re-listing.
//
// Design decision: the monitor probes one source at a time instead of
// reusing the dispatcher's fan-out. Recheck batches are small and
// sequential probes keep the traffic footprint low for sites that
// already removed the data once.
type Monitor struct {
	store       *database.Store
	scanner     SourceScanner
	id          *identity.Identity
	profileName string
	logger      *slog.Logger

	window  time.Duration
	sources map[string]model.Source
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithWindow sets how long a removed exposure rests between rechecks.
func WithWindow(window time.Duration) MonitorOption {
	return func(m *Monitor) {
		m.window = window
	}
}

// NewMonitor creates a monitor over the given sources. The source
// lists are indexed by identity so exposures can be traced back to a
// probe target.
func NewMonitor(store *database.Store, scanner SourceScanner, id *identity.Identity, profileName string, sources []model.Source, logger *slog.Logger, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		store:       store,
		scanner:     scanner,
		id:          id,
		profileName: profileName,
		logger:      logger,
		window:      7 * 24 * time.Hour,
		sources:     make(map[string]model.Source, len(sources)),
	}
	for _, src := range sources {
		m.sources[src.Identity()] = src
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CheckRemoved rechecks removed exposures that have rested past the
// window. Reappearing data flips the exposure to re_listed and raises
// a critical alert; confirmed absences just refresh the check
// timestamp, so the pass is idempotent.
func (m *Monitor) CheckRemoved(ctx context.Context) (CheckStats, error) {
	var stats CheckStats

	due, err := m.store.RemovedExposuresBefore(ctx, m.profileName, time.Now().UTC().Add(-m.window))
	if err != nil {
		return stats, err
	}

	for i := range due {
		exp := &due[i]
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		src, ok := m.sources[exp.SourceIdentity]
		if !ok {
			m.logger.Warn("removed exposure has no probe target", "exposure", exp.ID, "source", exp.SourceIdentity)
			if err := m.store.TouchExposure(ctx, exp.ID); err != nil {
				return stats, err
			}
			stats.Skipped++
			continue
		}

		result := m.scanner.ScanSource(ctx, src, m.id)
		switch {
		case result.Error != "":
			// Inconclusive; rest the exposure until the next window.
			m.logger.Warn("recheck failed", "source", src.Name, "error", result.Error, "detail", result.Detail)
			if err := m.store.TouchExposure(ctx, exp.ID); err != nil {
				return stats, err
			}
			stats.Skipped++

		case result.Found:
			stats.Checked++
			stats.Relisted++
			if err := m.markRelisted(ctx, exp, result.ProfileURL); err != nil {
				return stats, err
			}

		default:
			stats.Checked++
			stats.Clean++
			if err := m.store.TouchExposure(ctx, exp.ID); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

// Verify rechecks a single exposure awaiting removal. When the data is
// gone, the exposure moves to removed, any active request completes,
// and a confirmation alert is raised. Returns whether removal was
// confirmed.
func (m *Monitor) Verify(ctx context.Context, exposureID int64) (bool, error) {
	exp, err := m.store.GetExposure(ctx, exposureID)
	if err != nil {
		return false, err
	}
	if exp.Status == model.ExposureRemoved {
		return true, nil
	}

	src, ok := m.sources[exp.SourceIdentity]
	if !ok {
		return false, fmt.Errorf("exposure %d: no probe target for source %q", exp.ID, exp.SourceIdentity)
	}

	result := m.scanner.ScanSource(ctx, src, m.id)
	if result.Error != "" {
		return false, fmt.Errorf("recheck of %s failed: %s", src.Name, result.Error)
	}
	if result.Found {
		if err := m.store.TouchExposure(ctx, exp.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := m.completeActiveRequest(ctx, exp.ID); err != nil {
		return false, err
	}
	if err := m.store.UpdateExposureStatus(ctx, exp.ID, model.ExposureRemoved); err != nil {
		return false, err
	}

	_, err = m.store.CreateAlert(ctx, &model.Alert{
		ProfileName: m.profileName,
		Type:        model.AlertRemovalConfirmed,
		Severity:    model.SeverityLow,
		Title:       fmt.Sprintf("Removal verified on %s", exp.SourceName),
		Description: fmt.Sprintf("Your listing is no longer visible on %s.", exp.SourceName),
		SourceURL:   exp.ProfileURL,
	})
	if err != nil {
		return false, err
	}

	m.logger.Info("removal verified", "exposure", exp.ID, "source", exp.SourceName)
	return true, nil
}

// markRelisted records a reappearance and raises the critical alert.
func (m *Monitor) markRelisted(ctx context.Context, exp *model.Exposure, profileURL string) error {
	if err := m.store.UpdateExposureStatus(ctx, exp.ID, model.ExposureRelisted); err != nil {
		return err
	}

	url := profileURL
	if url == "" {
		url = exp.ProfileURL
	}
	_, err := m.store.CreateAlert(ctx, &model.Alert{
		ProfileName: m.profileName,
		Type:        model.AlertRelisted,
		Severity:    model.SeverityCritical,
		Title:       fmt.Sprintf("Data re-listed on %s", exp.SourceName),
		Description: fmt.Sprintf("Your data reappeared on %s after a confirmed removal.", exp.SourceName),
		SourceURL:   url,
	})
	if err != nil {
		return err
	}

	m.logger.Warn("exposure re-listed", "exposure", exp.ID, "source", exp.SourceName)
	return nil
}

// completeActiveRequest closes the exposure's in-flight request, if
// one exists and its status permits completion.
func (m *Monitor) completeActiveRequest(ctx context.Context, exposureID int64) error {
	req, err := m.store.ActiveRequest(ctx, exposureID)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !req.Status.CanTransition(model.RequestCompleted) {
		return nil
	}

	now := time.Now().UTC()
	req.Status = model.RequestCompleted
	req.CompletedAt = &now
	return m.store.UpdateRequest(ctx, req)
}
