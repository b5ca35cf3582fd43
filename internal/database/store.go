package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/offlist/offlist/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Store provides SQLite-based storage for the broker catalog, exposure
// records, removal requests, and alerts.
//
// Design decision: one database file per data directory rather than
// per profile. Exposures and requests carry the profile name, so one
// file serves every identity a user monitors and cross-profile queries
// stay cheap.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Store at the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created. If CreateIfNotExists is false and the database doesn't
// exist, an error is returned.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, "offlist.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection also
	// keeps the in-process upsert sequences race-free.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- Sources is the mutable broker catalog
	CREATE TABLE IF NOT EXISTS sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		domain TEXT,
		category TEXT NOT NULL DEFAULT 'broker',
		risk TEXT NOT NULL DEFAULT 'medium',
		url_template TEXT NOT NULL,
		separator TEXT NOT NULL DEFAULT '-',
		processing_days INTEGER DEFAULT 0,
		opt_out TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_sources_active ON sources(active);

	-- Exposures track data found at a source, one live row per
	-- (profile, source identity) pair
	CREATE TABLE IF NOT EXISTS exposures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_name TEXT NOT NULL,
		source_id INTEGER DEFAULT 0,
		source_identity TEXT NOT NULL,
		source_name TEXT NOT NULL,
		source_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'found',
		risk TEXT NOT NULL DEFAULT 'medium',
		confidence REAL NOT NULL DEFAULT 0,
		profile_url TEXT,
		data_found TEXT,
		first_detected_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_checked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		removed_at DATETIME,
		UNIQUE(profile_name, source_identity)
	);

	CREATE INDEX IF NOT EXISTS idx_exposures_profile ON exposures(profile_name);
	CREATE INDEX IF NOT EXISTS idx_exposures_status ON exposures(status);

	-- Removal requests are an append-only audit trail
	CREATE TABLE IF NOT EXISTS removal_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_name TEXT NOT NULL,
		exposure_id INTEGER NOT NULL,
		source_id INTEGER DEFAULT 0,
		source_name TEXT NOT NULL,
		request_type TEXT NOT NULL DEFAULT 'opt_out',
		status TEXT NOT NULL DEFAULT 'pending',
		method_used TEXT,
		instructions TEXT,
		requires_user_action INTEGER NOT NULL DEFAULT 0,
		confirmation TEXT,
		notes TEXT,
		submitted_at DATETIME,
		expected_completion DATETIME,
		completed_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_requests_exposure ON removal_requests(exposure_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status ON removal_requests(status);

	-- Alerts surface engine events to the user
	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_name TEXT NOT NULL,
		type TEXT NOT NULL,
		severity TEXT NOT NULL DEFAULT 'medium',
		title TEXT NOT NULL,
		description TEXT,
		source_url TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_alerts_profile ON alerts(profile_name);
	CREATE INDEX IF NOT EXISTS idx_alerts_created ON alerts(created_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SeedSources inserts the given catalog rows when the sources table is
// empty. An already-populated catalog is left untouched, so user edits
// survive restarts.
func (s *Store) SeedSources(ctx context.Context, sources []model.Source) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sources").Scan(&count); err != nil {
		return fmt.Errorf("failed to count sources: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range sources {
		if _, err := s.InsertSource(ctx, &sources[i]); err != nil {
			return err
		}
	}
	return nil
}

// InsertSource adds a broker to the catalog and returns its ID.
func (s *Store) InsertSource(ctx context.Context, src *model.Source) (int64, error) {
	optOutJSON, err := json.Marshal(src.OptOut)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize opt-out config: %w", err)
	}

	query := `
	INSERT INTO sources (name, domain, category, risk, url_template, separator, processing_days, opt_out, active)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		src.Name,
		src.Domain,
		string(src.Category),
		string(src.Risk),
		src.URLTemplate,
		src.Separator,
		src.ProcessingDays,
		string(optOutJSON),
		boolToInt(src.Active),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert source: %w", err)
	}

	return result.LastInsertId()
}

// ListSources returns catalog brokers, optionally restricted to active
// rows, ordered by name.
func (s *Store) ListSources(ctx context.Context, activeOnly bool) ([]model.Source, error) {
	query := "SELECT id, name, domain, category, risk, url_template, separator, processing_days, opt_out, active FROM sources"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *src)
	}
	return sources, rows.Err()
}

// GetSource retrieves one catalog broker by ID.
func (s *Store) GetSource(ctx context.Context, id int64) (*model.Source, error) {
	query := "SELECT id, name, domain, category, risk, url_template, separator, processing_days, opt_out, active FROM sources WHERE id = ?"
	src, err := scanSource(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return src, err
}

// SetSourceActive toggles a catalog broker in or out of the scan plan.
func (s *Store) SetSourceActive(ctx context.Context, id int64, active bool) error {
	result, err := s.db.ExecContext(ctx, "UPDATE sources SET active = ? WHERE id = ?", boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("failed to update source: %w", err)
	}
	return requireRow(result)
}

// scanner abstracts *sql.Row and *sql.Rows for the row mappers.
type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (*model.Source, error) {
	var (
		src        model.Source
		optOutJSON string
		active     int
	)
	err := row.Scan(
		&src.ID,
		&src.Name,
		&src.Domain,
		&src.Category,
		&src.Risk,
		&src.URLTemplate,
		&src.Separator,
		&src.ProcessingDays,
		&optOutJSON,
		&active,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(optOutJSON), &src.OptOut); err != nil {
		return nil, fmt.Errorf("failed to parse opt-out config for %s: %w", src.Name, err)
	}
	src.Active = active != 0
	return &src, nil
}

// UpsertExposure records a confidence-scored finding. A new row starts
// as found; an existing row keeps its status but refreshes confidence,
// profile URL, discovered data, and the check timestamp, except that a
// previously removed exposure flips to re_listed. The bool reports
// whether the exposure is new.
func (s *Store) UpsertExposure(ctx context.Context, exp *model.Exposure) (*model.Exposure, bool, error) {
	existing, err := s.GetExposureByIdentity(ctx, exp.ProfileName, exp.SourceIdentity)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	dataJSON, err := json.Marshal(exp.DataFound)
	if err != nil {
		return nil, false, fmt.Errorf("failed to serialize data categories: %w", err)
	}

	if existing == nil {
		query := `
		INSERT INTO exposures (profile_name, source_id, source_identity, source_name, source_type, status, risk, confidence, profile_url, data_found)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		result, err := s.db.ExecContext(ctx, query,
			exp.ProfileName,
			exp.SourceID,
			exp.SourceIdentity,
			exp.SourceName,
			string(exp.SourceType),
			string(model.ExposureFound),
			string(exp.Risk),
			exp.Confidence,
			exp.ProfileURL,
			string(dataJSON),
		)
		if err != nil {
			return nil, false, fmt.Errorf("failed to insert exposure: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, false, err
		}
		created, err := s.GetExposure(ctx, id)
		return created, true, err
	}

	status := existing.Status
	if status == model.ExposureRemoved {
		status = model.ExposureRelisted
	}

	query := `
	UPDATE exposures
	SET status = ?, confidence = ?, profile_url = ?, data_found = ?, last_checked_at = CURRENT_TIMESTAMP
	WHERE id = ?
	`
	if _, err := s.db.ExecContext(ctx, query, string(status), exp.Confidence, exp.ProfileURL, string(dataJSON), existing.ID); err != nil {
		return nil, false, fmt.Errorf("failed to update exposure: %w", err)
	}
	updated, err := s.GetExposure(ctx, existing.ID)
	return updated, false, err
}

// GetExposure retrieves one exposure by ID.
func (s *Store) GetExposure(ctx context.Context, id int64) (*model.Exposure, error) {
	exp, err := scanExposure(s.db.QueryRowContext(ctx, exposureSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return exp, err
}

// GetExposureByIdentity retrieves the exposure for a profile/source
// pair, which the schema keeps unique.
func (s *Store) GetExposureByIdentity(ctx context.Context, profileName, sourceIdentity string) (*model.Exposure, error) {
	exp, err := scanExposure(s.db.QueryRowContext(ctx,
		exposureSelect+" WHERE profile_name = ? AND source_identity = ?", profileName, sourceIdentity))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return exp, err
}

// ListExposures returns a profile's exposures, newest detection first.
// With statuses given, only matching rows are returned.
func (s *Store) ListExposures(ctx context.Context, profileName string, statuses ...model.ExposureStatus) ([]model.Exposure, error) {
	query := exposureSelect + " WHERE profile_name = ?"
	args := []any{profileName}
	if len(statuses) > 0 {
		query += " AND status IN (" + placeholders(len(statuses)) + ")"
		for _, st := range statuses {
			args = append(args, string(st))
		}
	}
	query += " ORDER BY first_detected_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exposures: %w", err)
	}
	defer rows.Close()

	var exposures []model.Exposure
	for rows.Next() {
		exp, err := scanExposure(rows)
		if err != nil {
			return nil, err
		}
		exposures = append(exposures, *exp)
	}
	return exposures, rows.Err()
}

// RemovedExposuresBefore returns removed exposures last checked before
// the cutoff. This feeds the re-listing monitor.
func (s *Store) RemovedExposuresBefore(ctx context.Context, profileName string, cutoff time.Time) ([]model.Exposure, error) {
	query := exposureSelect + `
	 WHERE profile_name = ? AND status = ? AND last_checked_at < ?
	 ORDER BY last_checked_at ASC`

	rows, err := s.db.QueryContext(ctx, query, profileName, string(model.ExposureRemoved), cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to query removed exposures: %w", err)
	}
	defer rows.Close()

	var exposures []model.Exposure
	for rows.Next() {
		exp, err := scanExposure(rows)
		if err != nil {
			return nil, err
		}
		exposures = append(exposures, *exp)
	}
	return exposures, rows.Err()
}

// UpdateExposureStatus moves an exposure to the given status. Moving to
// removed stamps removed_at; leaving removed clears it. Every move
// refreshes last_checked_at.
func (s *Store) UpdateExposureStatus(ctx context.Context, id int64, status model.ExposureStatus) error {
	var query string
	if status == model.ExposureRemoved {
		query = `UPDATE exposures SET status = ?, removed_at = CURRENT_TIMESTAMP, last_checked_at = CURRENT_TIMESTAMP WHERE id = ?`
	} else {
		query = `UPDATE exposures SET status = ?, removed_at = NULL, last_checked_at = CURRENT_TIMESTAMP WHERE id = ?`
	}
	result, err := s.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update exposure status: %w", err)
	}
	return requireRow(result)
}

// TouchExposure refreshes last_checked_at without changing status.
// The monitor calls this when a recheck finds nothing.
func (s *Store) TouchExposure(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "UPDATE exposures SET last_checked_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to touch exposure: %w", err)
	}
	return requireRow(result)
}

const exposureSelect = `
	SELECT id, profile_name, source_id, source_identity, source_name, source_type,
	       status, risk, confidence, profile_url, data_found,
	       first_detected_at, last_checked_at, removed_at
	FROM exposures`

func scanExposure(row scanner) (*model.Exposure, error) {
	var (
		exp                      model.Exposure
		profileURL, dataJSON     sql.NullString
		firstDetected, lastCheck string
		removedAt                sql.NullString
	)
	err := row.Scan(
		&exp.ID,
		&exp.ProfileName,
		&exp.SourceID,
		&exp.SourceIdentity,
		&exp.SourceName,
		&exp.SourceType,
		&exp.Status,
		&exp.Risk,
		&exp.Confidence,
		&profileURL,
		&dataJSON,
		&firstDetected,
		&lastCheck,
		&removedAt,
	)
	if err != nil {
		return nil, err
	}
	exp.ProfileURL = profileURL.String
	if dataJSON.String != "" {
		if err := json.Unmarshal([]byte(dataJSON.String), &exp.DataFound); err != nil {
			return nil, fmt.Errorf("failed to parse data categories: %w", err)
		}
	}
	exp.FirstDetectedAt = parseTimestamp(firstDetected)
	exp.LastCheckedAt = parseTimestamp(lastCheck)
	if removedAt.Valid {
		t := parseTimestamp(removedAt.String)
		exp.RemovedAt = &t
	}
	return &exp, nil
}

// CreateRequest inserts a removal request and returns its ID.
func (s *Store) CreateRequest(ctx context.Context, req *model.RemovalRequest) (int64, error) {
	query := `
	INSERT INTO removal_requests (profile_name, exposure_id, source_id, source_name, request_type, status,
		method_used, instructions, requires_user_action, confirmation, notes, submitted_at, expected_completion)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		req.ProfileName,
		req.ExposureID,
		req.SourceID,
		req.SourceName,
		req.RequestType,
		string(req.Status),
		string(req.MethodUsed),
		req.Instructions,
		boolToInt(req.RequiresUserAction),
		req.Confirmation,
		req.Notes,
		nullTime(req.SubmittedAt),
		nullTime(req.ExpectedCompletion),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert removal request: %w", err)
	}
	return result.LastInsertId()
}

// UpdateRequest persists the mutable fields of a removal request.
func (s *Store) UpdateRequest(ctx context.Context, req *model.RemovalRequest) error {
	query := `
	UPDATE removal_requests
	SET status = ?, method_used = ?, instructions = ?, requires_user_action = ?,
	    confirmation = ?, notes = ?, submitted_at = ?, expected_completion = ?, completed_at = ?
	WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		string(req.Status),
		string(req.MethodUsed),
		req.Instructions,
		boolToInt(req.RequiresUserAction),
		req.Confirmation,
		req.Notes,
		nullTime(req.SubmittedAt),
		nullTime(req.ExpectedCompletion),
		nullTime(req.CompletedAt),
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update removal request: %w", err)
	}
	return requireRow(result)
}

// GetRequest retrieves one removal request by ID.
func (s *Store) GetRequest(ctx context.Context, id int64) (*model.RemovalRequest, error) {
	req, err := scanRequest(s.db.QueryRowContext(ctx, requestSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return req, err
}

// ActiveRequest returns the non-terminal request for an exposure, or
// ErrNotFound. The manager consults this before filing a new one.
func (s *Store) ActiveRequest(ctx context.Context, exposureID int64) (*model.RemovalRequest, error) {
	query := requestSelect + ` WHERE exposure_id = ? AND status NOT IN (?, ?) ORDER BY created_at DESC LIMIT 1`
	req, err := scanRequest(s.db.QueryRowContext(ctx, query,
		exposureID, string(model.RequestCompleted), string(model.RequestFailed)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return req, err
}

// ListRequests returns a profile's removal requests, newest first.
// An empty status matches everything.
func (s *Store) ListRequests(ctx context.Context, profileName string, status model.RequestStatus) ([]model.RemovalRequest, error) {
	query := requestSelect + " WHERE profile_name = ?"
	args := []any{profileName}
	if status != "" {
		query += " AND status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query removal requests: %w", err)
	}
	defer rows.Close()

	var requests []model.RemovalRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// PendingRequests returns up to limit pending requests across all
// profiles, oldest first. This feeds the background worker.
func (s *Store) PendingRequests(ctx context.Context, limit int) ([]model.RemovalRequest, error) {
	query := requestSelect + " WHERE status = ? ORDER BY created_at ASC, id ASC LIMIT ?"

	rows, err := s.db.QueryContext(ctx, query, string(model.RequestPending), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	var requests []model.RemovalRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

const requestSelect = `
	SELECT id, profile_name, exposure_id, source_id, source_name, request_type, status,
	       method_used, instructions, requires_user_action, confirmation, notes,
	       submitted_at, expected_completion, completed_at, created_at
	FROM removal_requests`

func scanRequest(row scanner) (*model.RemovalRequest, error) {
	var (
		req                            model.RemovalRequest
		methodUsed, instructions       sql.NullString
		confirmation, notes            sql.NullString
		submitted, expected, completed sql.NullString
		requiresAction                 int
		created                        string
	)
	err := row.Scan(
		&req.ID,
		&req.ProfileName,
		&req.ExposureID,
		&req.SourceID,
		&req.SourceName,
		&req.RequestType,
		&req.Status,
		&methodUsed,
		&instructions,
		&requiresAction,
		&confirmation,
		&notes,
		&submitted,
		&expected,
		&completed,
		&created,
	)
	if err != nil {
		return nil, err
	}
	req.MethodUsed = model.RequestMethod(methodUsed.String)
	req.Instructions = instructions.String
	req.RequiresUserAction = requiresAction != 0
	req.Confirmation = confirmation.String
	req.Notes = notes.String
	req.SubmittedAt = timePtr(submitted)
	req.ExpectedCompletion = timePtr(expected)
	req.CompletedAt = timePtr(completed)
	req.CreatedAt = parseTimestamp(created)
	return &req, nil
}

// CreateAlert inserts an alert and returns its ID.
func (s *Store) CreateAlert(ctx context.Context, alert *model.Alert) (int64, error) {
	query := `
	INSERT INTO alerts (profile_name, type, severity, title, description, source_url)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		alert.ProfileName,
		string(alert.Type),
		alert.Severity.String(),
		alert.Title,
		alert.Description,
		alert.SourceURL,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert alert: %w", err)
	}
	return result.LastInsertId()
}

// ListAlerts returns a profile's alerts, newest first, capped at limit.
func (s *Store) ListAlerts(ctx context.Context, profileName string, limit int) ([]model.Alert, error) {
	query := `
	SELECT id, profile_name, type, severity, title, description, source_url, created_at
	FROM alerts
	WHERE profile_name = ?
	ORDER BY created_at DESC, id DESC
	LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, profileName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var (
			alert                  model.Alert
			severity               string
			description, sourceURL sql.NullString
			created                string
		)
		err := rows.Scan(
			&alert.ID,
			&alert.ProfileName,
			&alert.Type,
			&severity,
			&alert.Title,
			&description,
			&sourceURL,
			&created,
		)
		if err != nil {
			return nil, err
		}
		alert.Severity = model.ParseSeverity(severity)
		alert.Description = description.String
		alert.SourceURL = sourceURL.String
		alert.CreatedAt = parseTimestamp(created)
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may
// return. The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats, returning the zero time when none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// nullTime renders an optional timestamp for storage.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// timePtr converts a nullable stored timestamp back to a pointer.
func timePtr(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t := parseTimestamp(ns.String)
	return &t
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// placeholders returns n comma-separated "?" markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	marks := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			marks = append(marks, ',')
		}
		marks = append(marks, '?')
	}
	return string(marks)
}
