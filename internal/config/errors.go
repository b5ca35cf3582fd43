package config

import "errors"

// Configuration validation errors. Package-level sentinels so callers
// can branch with errors.Is while still printing a clear message.
var (
	// ErrInvalidConcurrency is returned when the fan-out limit is not
	// positive. Zero would mean no fetches run at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the per-fetch timeout is not
	// positive. A zero timeout fails every fetch immediately.
	ErrInvalidTimeout = errors.New("invalid fetch timeout: must be positive")

	// ErrInvalidMaxBodySize is returned for a negative body cap.
	// Use 0 to apply the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidThreshold is returned when the confidence threshold
	// falls outside [0,1].
	ErrInvalidThreshold = errors.New("invalid confidence threshold: must be within [0,1]")

	// ErrInvalidMaxCandidates is returned when the aggregator cap is
	// not positive.
	ErrInvalidMaxCandidates = errors.New("invalid max candidates: must be positive")

	// ErrInvalidBatchSize is returned when the request batch size is
	// not positive.
	ErrInvalidBatchSize = errors.New("invalid request batch size: must be positive")

	// ErrNoProfile is returned when a command needs an identity
	// profile but the config file has none.
	ErrNoProfile = errors.New("no profile configured: run 'offlist init' and edit the generated file")

	// ErrProfileIncomplete is returned when the profile lacks the
	// first and last name every scan requires.
	ErrProfileIncomplete = errors.New("profile incomplete: first_name and last_name are required")
)
