package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/offlist/offlist/internal/model"
	"github.com/offlist/offlist/internal/registry"
)

// setupTestStore creates a temporary database for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testExposure(profile, identity string) *model.Exposure {
	return &model.Exposure{
		ProfileName:    profile,
		SourceIdentity: identity,
		SourceName:     "Spokeo",
		SourceType:     model.CategoryBroker,
		Risk:           model.RiskHigh,
		Confidence:     0.8,
		ProfileURL:     "https://www.spokeo.com/jane-doe/p1",
		DataFound:      []model.DataCategory{model.DataAddress, model.DataPhone},
	}
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		s, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer s.Close()

		if _, err := os.Stat(filepath.Join(dbDir, "offlist.db")); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")
		_, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected informative error, got %q", err.Error())
		}
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "existing-db")
		s1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		_ = s1.Close()

		s2, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open existing database: %v", err)
		}
		_ = s2.Close()
	})
}

// TestSeedSources tests first-run seeding and its idempotence.
func TestSeedSources(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.SeedSources(ctx, registry.SeedBrokers()); err != nil {
		t.Fatalf("failed to seed sources: %v", err)
	}

	sources, err := s.ListSources(ctx, false)
	if err != nil {
		t.Fatalf("failed to list sources: %v", err)
	}
	if len(sources) != len(registry.SeedBrokers()) {
		t.Fatalf("seeded %d sources, want %d", len(sources), len(registry.SeedBrokers()))
	}

	// Seeding again must not duplicate or overwrite the catalog.
	if err := s.SetSourceActive(ctx, sources[0].ID, false); err != nil {
		t.Fatalf("failed to deactivate source: %v", err)
	}
	if err := s.SeedSources(ctx, registry.SeedBrokers()); err != nil {
		t.Fatalf("re-seed failed: %v", err)
	}

	again, err := s.ListSources(ctx, false)
	if err != nil {
		t.Fatalf("failed to list sources: %v", err)
	}
	if len(again) != len(sources) {
		t.Errorf("re-seed changed catalog size: %d -> %d", len(sources), len(again))
	}

	active, err := s.ListSources(ctx, true)
	if err != nil {
		t.Fatalf("failed to list active sources: %v", err)
	}
	if len(active) != len(sources)-1 {
		t.Errorf("active filter returned %d sources, want %d", len(active), len(sources)-1)
	}
}

// TestGetSource tests catalog retrieval including the opt-out config
// round trip.
func TestGetSource(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	id, err := s.InsertSource(ctx, &model.Source{
		Name:           "Spokeo",
		Domain:         "spokeo.com",
		Category:       model.CategoryBroker,
		Risk:           model.RiskHigh,
		URLTemplate:    "https://www.spokeo.com/{first_name}-{last_name}",
		Separator:      "-",
		ProcessingDays: 7,
		OptOut: model.OptOut{
			Method:      model.MethodForm,
			URL:         "https://www.spokeo.com/optout",
			Endpoint:    "https://www.spokeo.com/optout/submit",
			Fields:      map[string]string{"url": "{profile_url}", "email": "{user_email}"},
			CanAutomate: true,
		},
		Active: true,
	})
	if err != nil {
		t.Fatalf("failed to insert source: %v", err)
	}

	src, err := s.GetSource(ctx, id)
	if err != nil {
		t.Fatalf("failed to get source: %v", err)
	}
	if src.Name != "Spokeo" || src.ProcessingDays != 7 || !src.Active {
		t.Errorf("unexpected source: %+v", src)
	}
	if src.OptOut.Method != model.MethodForm || src.OptOut.Fields["url"] != "{profile_url}" {
		t.Errorf("opt-out config did not round trip: %+v", src.OptOut)
	}

	if _, err := s.GetSource(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing source: got %v, want ErrNotFound", err)
	}
}

// TestUpsertExposure tests insert, refresh, and re-listing detection.
func TestUpsertExposure(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	exp, created, err := s.UpsertExposure(ctx, testExposure("Jane Doe", "broker:1"))
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}
	if !created {
		t.Error("first upsert should report a new exposure")
	}
	if exp.Status != model.ExposureFound {
		t.Errorf("status: got %q, want found", exp.Status)
	}
	if len(exp.DataFound) != 2 {
		t.Errorf("data categories did not round trip: %v", exp.DataFound)
	}

	// Same pair again: refreshed, not duplicated.
	update := testExposure("Jane Doe", "broker:1")
	update.Confidence = 0.95
	again, created, err := s.UpsertExposure(ctx, update)
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}
	if created {
		t.Error("second upsert should not report a new exposure")
	}
	if again.ID != exp.ID {
		t.Errorf("upsert created a second row: %d vs %d", again.ID, exp.ID)
	}
	if again.Confidence != 0.95 {
		t.Errorf("confidence not refreshed: %v", again.Confidence)
	}

	// A removed exposure that surfaces again flips to re_listed.
	if err := s.UpdateExposureStatus(ctx, exp.ID, model.ExposureRemoved); err != nil {
		t.Fatalf("failed to mark removed: %v", err)
	}
	relisted, created, err := s.UpsertExposure(ctx, testExposure("Jane Doe", "broker:1"))
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}
	if created {
		t.Error("re-listing is not a new exposure")
	}
	if relisted.Status != model.ExposureRelisted {
		t.Errorf("status: got %q, want re_listed", relisted.Status)
	}

	// Different profile, same source: separate row.
	_, created, err = s.UpsertExposure(ctx, testExposure("John Roe", "broker:1"))
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}
	if !created {
		t.Error("a different profile should get its own exposure")
	}
}

// TestUpdateExposureStatus tests the removed_at stamp.
func TestUpdateExposureStatus(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	exp, _, err := s.UpsertExposure(ctx, testExposure("Jane Doe", "broker:1"))
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}

	if err := s.UpdateExposureStatus(ctx, exp.ID, model.ExposureRemoved); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	removed, err := s.GetExposure(ctx, exp.ID)
	if err != nil {
		t.Fatalf("failed to get exposure: %v", err)
	}
	if removed.Status != model.ExposureRemoved {
		t.Errorf("status: got %q, want removed", removed.Status)
	}
	if removed.RemovedAt == nil {
		t.Error("removed_at should be stamped")
	}

	if err := s.UpdateExposureStatus(ctx, exp.ID, model.ExposureRelisted); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	relisted, err := s.GetExposure(ctx, exp.ID)
	if err != nil {
		t.Fatalf("failed to get exposure: %v", err)
	}
	if relisted.RemovedAt != nil {
		t.Error("removed_at should clear when the exposure leaves removed")
	}

	if err := s.UpdateExposureStatus(ctx, 9999, model.ExposureRemoved); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing exposure: got %v, want ErrNotFound", err)
	}
}

// TestListExposures tests status filtering.
func TestListExposures(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	first, _, err := s.UpsertExposure(ctx, testExposure("Jane Doe", "broker:1"))
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}
	if _, _, err := s.UpsertExposure(ctx, testExposure("Jane Doe", "whitepages")); err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}
	if err := s.UpdateExposureStatus(ctx, first.ID, model.ExposureRemoved); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	all, err := s.ListExposures(ctx, "Jane Doe")
	if err != nil {
		t.Fatalf("failed to list exposures: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d exposures, want 2", len(all))
	}

	found, err := s.ListExposures(ctx, "Jane Doe", model.ExposureFound)
	if err != nil {
		t.Fatalf("failed to list exposures: %v", err)
	}
	if len(found) != 1 || found[0].SourceIdentity != "whitepages" {
		t.Errorf("status filter broken: %+v", found)
	}

	none, err := s.ListExposures(ctx, "Nobody")
	if err != nil {
		t.Fatalf("failed to list exposures: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown profile should have no exposures: %+v", none)
	}
}

// TestRemovedExposuresBefore tests the monitor's recheck query.
func TestRemovedExposuresBefore(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	exp, _, err := s.UpsertExposure(ctx, testExposure("Jane Doe", "broker:1"))
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}
	if err := s.UpdateExposureStatus(ctx, exp.ID, model.ExposureRemoved); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	// A cutoff in the past excludes the freshly checked row.
	past, err := s.RemovedExposuresBefore(ctx, "Jane Doe", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to query removed exposures: %v", err)
	}
	if len(past) != 0 {
		t.Errorf("fresh exposure should not be due: %+v", past)
	}

	// A future cutoff makes it due.
	due, err := s.RemovedExposuresBefore(ctx, "Jane Doe", time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to query removed exposures: %v", err)
	}
	if len(due) != 1 || due[0].ID != exp.ID {
		t.Errorf("exposure should be due for recheck: %+v", due)
	}
}

// TestRemovalRequests tests the request lifecycle and the active
// request lookup.
func TestRemovalRequests(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	exp, _, err := s.UpsertExposure(ctx, testExposure("Jane Doe", "broker:1"))
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}

	id, err := s.CreateRequest(ctx, &model.RemovalRequest{
		ProfileName: "Jane Doe",
		ExposureID:  exp.ID,
		SourceName:  "Spokeo",
		RequestType: "opt_out",
		Status:      model.RequestPending,
	})
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	active, err := s.ActiveRequest(ctx, exp.ID)
	if err != nil {
		t.Fatalf("failed to query active request: %v", err)
	}
	if active.ID != id {
		t.Errorf("active request: got %d, want %d", active.ID, id)
	}

	// Move it to a terminal state; the exposure then has no active
	// request again.
	now := time.Now().UTC()
	active.Status = model.RequestCompleted
	active.MethodUsed = model.MethodAutoEmail
	active.Confirmation = "email_42"
	active.SubmittedAt = &now
	active.CompletedAt = &now
	if err := s.UpdateRequest(ctx, active); err != nil {
		t.Fatalf("failed to update request: %v", err)
	}

	if _, err := s.ActiveRequest(ctx, exp.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("terminal request still counted active: %v", err)
	}

	got, err := s.GetRequest(ctx, id)
	if err != nil {
		t.Fatalf("failed to get request: %v", err)
	}
	if got.Status != model.RequestCompleted || got.Confirmation != "email_42" {
		t.Errorf("unexpected request: %+v", got)
	}
	if got.SubmittedAt == nil || got.CompletedAt == nil {
		t.Error("timestamps did not round trip")
	}
}

// TestPendingRequests tests worker batch ordering and the limit.
func TestPendingRequests(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	exp, _, err := s.UpsertExposure(ctx, testExposure("Jane Doe", "broker:1"))
	if err != nil {
		t.Fatalf("failed to upsert exposure: %v", err)
	}

	var ids []int64
	for _, name := range []string{"Spokeo", "WhitePages", "Radaris"} {
		id, err := s.CreateRequest(ctx, &model.RemovalRequest{
			ProfileName: "Jane Doe",
			ExposureID:  exp.ID,
			SourceName:  name,
			RequestType: "opt_out",
			Status:      model.RequestPending,
		})
		if err != nil {
			t.Fatalf("failed to create request: %v", err)
		}
		ids = append(ids, id)
	}

	batch, err := s.PendingRequests(ctx, 2)
	if err != nil {
		t.Fatalf("failed to query pending requests: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("got %d requests, want 2", len(batch))
	}
	if batch[0].ID != ids[0] || batch[1].ID != ids[1] {
		t.Errorf("pending batch out of order: %+v", batch)
	}
}

// TestAlerts tests alert storage and ordering.
func TestAlerts(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	for i, a := range []model.Alert{
		{ProfileName: "Jane Doe", Type: model.AlertNewExposure, Severity: model.SeverityHigh, Title: "New exposure on Spokeo", SourceURL: "https://www.spokeo.com/jane-doe/p1"},
		{ProfileName: "Jane Doe", Type: model.AlertRelisted, Severity: model.SeverityCritical, Title: "Data re-listed on Radaris"},
	} {
		if _, err := s.CreateAlert(ctx, &a); err != nil {
			t.Fatalf("failed to create alert %d: %v", i, err)
		}
	}

	alerts, err := s.ListAlerts(ctx, "Jane Doe", 10)
	if err != nil {
		t.Fatalf("failed to list alerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[0].Type != model.AlertRelisted {
		t.Errorf("alerts should be newest first: %+v", alerts)
	}
	if alerts[0].Severity != model.SeverityCritical {
		t.Errorf("severity did not round trip: %v", alerts[0].Severity)
	}
	if alerts[0].Title != "Data re-listed on Radaris" {
		t.Errorf("title did not round trip: %q", alerts[0].Title)
	}
	if alerts[1].Title != "New exposure on Spokeo" || alerts[1].SourceURL != "https://www.spokeo.com/jane-doe/p1" {
		t.Errorf("alert fields did not round trip: %+v", alerts[1])
	}

	capped, err := s.ListAlerts(ctx, "Jane Doe", 1)
	if err != nil {
		t.Fatalf("failed to list alerts: %v", err)
	}
	if len(capped) != 1 {
		t.Errorf("limit ignored: got %d alerts", len(capped))
	}
}
