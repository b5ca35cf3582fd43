package removal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/offlist/offlist/internal/database"
	"github.com/offlist/offlist/internal/model"
	"github.com/offlist/offlist/internal/optout"
)

// Sentinel errors for request filing.
var (
	// ErrActiveRequest means the exposure already has a non-terminal
	// removal request.
	ErrActiveRequest = errors.New("exposure already has an active removal request")

	// ErrExposureRemoved means the exposure is already confirmed
	// removed, so there is nothing to file.
	ErrExposureRemoved = errors.New("exposure is already removed")
)

// Stats summarizes one worker pass over pending requests. Manual
// counts submissions waiting on a user step; Failed counts requests
// abandoned as unrecoverable.
type Stats struct {
	Processed int
	Succeeded int
	Manual    int
	Failed    int
}

// Manager files removal requests for a profile's exposures and drives
// them through the request state machine. At most one active request
// exists per exposure; the store's ActiveRequest lookup backs that
// guard.
type Manager struct {
	store    *database.Store
	resolver *optout.Resolver
	executor *optout.Executor
	profile  *model.Profile
	logger   *slog.Logger

	processingDays int
	manualDays     int
	batchSize      int
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithProcessingDays sets the expected turnaround for automated
// requests when the source does not advertise one.
func WithProcessingDays(days int) ManagerOption {
	return func(m *Manager) {
		m.processingDays = days
	}
}

// WithManualProcessingDays sets the expected turnaround for requests
// that need user action.
func WithManualProcessingDays(days int) ManagerOption {
	return func(m *Manager) {
		m.manualDays = days
	}
}

// WithBatchSize caps how many pending requests one worker pass takes.
func WithBatchSize(n int) ManagerOption {
	return func(m *Manager) {
		m.batchSize = n
	}
}

// NewManager creates a removal manager for one profile.
func NewManager(store *database.Store, resolver *optout.Resolver, executor *optout.Executor, profile *model.Profile, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:          store,
		resolver:       resolver,
		executor:       executor,
		profile:        profile,
		logger:         logger,
		processingDays: 7,
		manualDays:     21,
		batchSize:      50,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ProfileName returns the full name of the profile this manager files
// requests for.
func (m *Manager) ProfileName() string {
	return m.profile.FullName()
}

// FileRequest creates a removal request for the exposure and executes
// it synchronously. The exposure moves to pending_removal; the request
// lands in submitted, flagged requires_user_action when delivery could
// not be automated.
func (m *Manager) FileRequest(ctx context.Context, exposureID int64) (*model.RemovalRequest, error) {
	exp, err := m.store.GetExposure(ctx, exposureID)
	if err != nil {
		return nil, err
	}
	if exp.Status == model.ExposureRemoved {
		return nil, ErrExposureRemoved
	}
	if _, err := m.store.ActiveRequest(ctx, exp.ID); err == nil {
		return nil, ErrActiveRequest
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	req := &model.RemovalRequest{
		ProfileName: exp.ProfileName,
		ExposureID:  exp.ID,
		SourceID:    exp.SourceID,
		SourceName:  exp.SourceName,
		RequestType: "opt_out",
		Status:      model.RequestPending,
	}
	id, err := m.store.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id

	if err := m.store.UpdateExposureStatus(ctx, exp.ID, model.ExposurePendingRemoval); err != nil {
		return nil, err
	}

	if err := m.execute(ctx, req, exp); err != nil {
		return nil, err
	}
	return m.store.GetRequest(ctx, req.ID)
}

// FileAll files a request for every listed exposure of the profile.
// Exposures with an active request are skipped, not errors.
func (m *Manager) FileAll(ctx context.Context) (filed, skipped int, err error) {
	exposures, err := m.store.ListExposures(ctx, m.profile.FullName(),
		model.ExposureFound, model.ExposureRelisted)
	if err != nil {
		return 0, 0, err
	}

	for i := range exposures {
		_, err := m.FileRequest(ctx, exposures[i].ID)
		switch {
		case errors.Is(err, ErrActiveRequest):
			skipped++
		case err != nil:
			return filed, skipped, err
		default:
			filed++
		}
	}
	return filed, skipped, nil
}

// ProcessPending executes queued requests for this profile, up to the
// batch size. Requests left pending by an interrupted run are retried
// here; a cancelled context stops the pass without failing processed
// requests.
func (m *Manager) ProcessPending(ctx context.Context) (Stats, error) {
	var stats Stats

	batch, err := m.store.PendingRequests(ctx, m.batchSize)
	if err != nil {
		return stats, err
	}

	for i := range batch {
		req := &batch[i]
		if req.ProfileName != m.profile.FullName() {
			continue
		}
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		stats.Processed++

		exp, err := m.store.GetExposure(ctx, req.ExposureID)
		if err != nil {
			// An orphaned request can never succeed; park it as failed
			// so later passes skip it.
			m.logger.Warn("pending request has no exposure", "request", req.ID, "error", err)
			req.Status = model.RequestFailed
			req.Notes = fmt.Sprintf("exposure %d not found: %v", req.ExposureID, err)
			if uerr := m.store.UpdateRequest(ctx, req); uerr != nil {
				return stats, uerr
			}
			stats.Failed++
			continue
		}

		if err := m.execute(ctx, req, exp); err != nil {
			return stats, err
		}
		if req.RequiresUserAction {
			stats.Manual++
		} else {
			stats.Succeeded++
		}
	}
	return stats, nil
}

// Complete confirms a removal. Legal only from submitted or
// requires_action; the exposure cascades to removed and a confirmation
// alert is raised.
func (m *Manager) Complete(ctx context.Context, requestID int64) error {
	req, err := m.store.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.Status.CanTransition(model.RequestCompleted) {
		return fmt.Errorf("request %d: cannot complete from status %q", req.ID, req.Status)
	}

	now := time.Now().UTC()
	req.Status = model.RequestCompleted
	req.CompletedAt = &now
	if err := m.store.UpdateRequest(ctx, req); err != nil {
		return err
	}

	if err := m.store.UpdateExposureStatus(ctx, req.ExposureID, model.ExposureRemoved); err != nil {
		return err
	}

	_, err = m.store.CreateAlert(ctx, &model.Alert{
		ProfileName: req.ProfileName,
		Type:        model.AlertRemovalConfirmed,
		Severity:    model.SeverityLow,
		Title:       fmt.Sprintf("Removal confirmed on %s", req.SourceName),
		Description: fmt.Sprintf("Your data was removed from %s.", req.SourceName),
	})
	if err != nil {
		return err
	}

	m.logger.Info("removal confirmed", "request", req.ID, "source", req.SourceName)
	return nil
}

// Fail abandons a request. The exposure returns to found so a later
// run can try again.
func (m *Manager) Fail(ctx context.Context, requestID int64, note string) error {
	req, err := m.store.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.Status.CanTransition(model.RequestFailed) {
		return fmt.Errorf("request %d: cannot fail from status %q", req.ID, req.Status)
	}

	req.Status = model.RequestFailed
	if note != "" {
		req.Notes = note
	}
	if err := m.store.UpdateRequest(ctx, req); err != nil {
		return err
	}
	return m.store.UpdateExposureStatus(ctx, req.ExposureID, model.ExposureFound)
}

// execute resolves the opt-out method, delivers the request, and
// records the outcome on the request row.
func (m *Manager) execute(ctx context.Context, req *model.RemovalRequest, exp *model.Exposure) error {
	conf, days := m.resolveMethod(ctx, exp)

	outcome := m.executor.Execute(ctx, conf, m.profile, exp.SourceName, exp.ProfileURL)
	if ctx.Err() != nil {
		// Leave the request pending; the worker retries it next pass.
		return ctx.Err()
	}

	now := time.Now().UTC()
	req.MethodUsed = outcome.Method
	req.Notes = outcome.Message

	if outcome.Success {
		expected := now.AddDate(0, 0, days)
		req.Status = model.RequestSubmitted
		req.RequiresUserAction = false
		req.SubmittedAt = &now
		req.ExpectedCompletion = &expected
		req.Confirmation = outcome.Confirmation
	} else {
		// A manual fallback is still a submission; the open user step
		// rides on requires_user_action. The requires_action status is
		// reserved for later transitions out of submitted.
		expected := now.AddDate(0, 0, m.manualDays)
		req.Status = model.RequestSubmitted
		req.RequiresUserAction = true
		req.SubmittedAt = &now
		req.ExpectedCompletion = &expected
		req.Instructions = manualText(outcome)
	}

	if err := m.store.UpdateRequest(ctx, req); err != nil {
		return err
	}

	m.logger.Info("removal request processed",
		"request", req.ID,
		"source", exp.SourceName,
		"status", req.Status,
		"method", req.MethodUsed)
	return nil
}

// resolveMethod picks the opt-out descriptor and expected turnaround
// for an exposure. Catalog brokers carry their own configuration and
// processing days; everything else goes through the name table.
func (m *Manager) resolveMethod(ctx context.Context, exp *model.Exposure) (model.OptOut, int) {
	days := m.processingDays
	if exp.SourceID != 0 {
		src, err := m.store.GetSource(ctx, exp.SourceID)
		if err == nil {
			if src.ProcessingDays > 0 {
				days = src.ProcessingDays
			}
			return m.resolver.ResolveSource(src), days
		}
		m.logger.Warn("exposure references missing source", "exposure", exp.ID, "source_id", exp.SourceID)
	}
	return m.resolver.Resolve(exp.SourceName), days
}

// manualText renders the user-facing steps for a manual request.
func manualText(outcome optout.Outcome) string {
	text := outcome.Instructions
	if text == "" {
		text = optout.ManualInstructions
	}
	if outcome.FallbackURL != "" {
		text = text + "\nOpt-out page: " + outcome.FallbackURL
	}
	return text
}
