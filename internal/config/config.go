package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror the behavior of typical
// people-search sites: generous per-site timeouts (the slow ones sit
// behind CDNs that stall bots), moderate fan-out, and a detection
// threshold tuned against live broker result pages.
const (
	// DefaultConcurrency is the maximum number of in-flight fetches.
	// People-search sites tolerate this level of parallelism without
	// tripping rate limits, and a full scan of ~70 sources completes
	// in roughly one timeout window.
	DefaultConcurrency = 15

	// DefaultFetchTimeout applies independently to each source fetch.
	// One hanging site must never hold the batch beyond its own limit.
	DefaultFetchTimeout = 15 * time.Second

	// DefaultMaxBodySize caps how much of a response body is read.
	// Broker result pages are well under 2MB; anything larger is
	// bulk assets we do not need for text matching.
	DefaultMaxBodySize = 2 * 1024 * 1024 // 2MB

	// DefaultUserAgent mimics a current desktop Chrome. Several
	// brokers serve an empty shell page to obvious bot agents.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

	// DefaultConfidenceThreshold is the minimum match score for a hit.
	// Empirically tuned: below 0.40 the dominant failure mode is
	// marketing boilerplate that echoes the search terms.
	DefaultConfidenceThreshold = 0.40

	// DefaultMaxCandidates caps aggregator output to bound downstream
	// persistence and removal work.
	DefaultMaxCandidates = 200

	// DefaultMonitorWindow is how stale a removed exposure's last
	// check may be before the monitor re-verifies it.
	DefaultMonitorWindow = 7 * 24 * time.Hour

	// DefaultProcessingDays estimates opt-out turnaround when the
	// source does not advertise one.
	DefaultProcessingDays = 7

	// DefaultManualProcessingDays is the longer estimate used when the
	// request falls back to manual handling by the user.
	DefaultManualProcessingDays = 21

	// DefaultRequestBatchSize bounds one ProcessPending pass.
	DefaultRequestBatchSize = 50

	// DefaultSendInterval paces successive opt-out submissions so the
	// outbound mail provider does not throttle the burst.
	DefaultSendInterval = 500 * time.Millisecond

	// DefaultSearchQueries limits how many search-engine queries one
	// scan issues. More than two attracts rate limiting.
	DefaultSearchQueries = 2

	// AppName is used for XDG directory paths.
	AppName = "offlist"
)

// Config holds all runtime options for the engine. It is populated
// from CLI flags plus the config file and passed by injection; there
// is no global state.
type Config struct {
	// Concurrency is the fan-out limit for the scan dispatcher.
	Concurrency int

	// FetchTimeout is the per-source fetch deadline.
	FetchTimeout time.Duration

	// MaxBodySize limits response body reads, in bytes.
	MaxBodySize int64

	// UserAgent is sent with every scan fetch.
	UserAgent string

	// ConfidenceThreshold gates found=true decisions. Exposed as
	// configuration, not an invariant: the value is tuned, not derived.
	ConfidenceThreshold float64

	// MaxCandidates caps aggregator output.
	MaxCandidates int

	// MonitorWindow is the re-verification age for removed exposures.
	MonitorWindow time.Duration

	// RequestBatchSize bounds one pending-request processing pass.
	RequestBatchSize int

	// SendInterval paces opt-out submissions.
	SendInterval time.Duration

	// DBDir is the directory holding the SQLite database. Empty means
	// scan results are not persisted.
	DBDir string

	// ConfigFilePath is an explicit config file location. If empty the
	// loader searches the working directory and then the home
	// directory for .offlist.yaml.
	ConfigFilePath string

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// File holds the loaded profile/config file, when one was found.
	File *File
}

// NewConfig returns a Config with all defaults applied.
func NewConfig() *Config {
	return &Config{
		Concurrency:         DefaultConcurrency,
		FetchTimeout:        DefaultFetchTimeout,
		MaxBodySize:         DefaultMaxBodySize,
		UserAgent:           DefaultUserAgent,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		MaxCandidates:       DefaultMaxCandidates,
		MonitorWindow:       DefaultMonitorWindow,
		RequestBatchSize:    DefaultRequestBatchSize,
		SendInterval:        DefaultSendInterval,
	}
}

// XDGDataDir returns the XDG data directory for offlist.
// On Linux: ~/.local/share/offlist.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration, returning the first problem
// found. Called once after flag parsing, before any scanning begins.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return ErrInvalidThreshold
	}
	if c.MaxCandidates <= 0 {
		return ErrInvalidMaxCandidates
	}
	if c.RequestBatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	return nil
}
