package model

import "time"

// ExposureStatus is the lifecycle state of an exposure record.
type ExposureStatus string

// Exposure statuses.
const (
	// ExposureFound means the data is currently listed at the source.
	ExposureFound ExposureStatus = "found"

	// ExposurePendingRemoval means an active removal request exists.
	ExposurePendingRemoval ExposureStatus = "pending_removal"

	// ExposureRemoved means removal was confirmed. Removed exposures
	// stay under periodic monitoring for re-listing.
	ExposureRemoved ExposureStatus = "removed"

	// ExposureRelisted means a monitor rescan found the data again
	// after a confirmed removal.
	ExposureRelisted ExposureStatus = "re_listed"
)

// Exposure is a persisted, confidence-scored instance of a person's
// data found at a source. At most one non-removed exposure exists per
// (profile, source identity) pair; the store enforces this with an
// upsert keyed on both.
type Exposure struct {
	ID int64 `json:"id"`

	// ProfileName keys exposures to the scanned identity. A service
	// deployment would use a user ID here; the CLI uses the profile's
	// full name.
	ProfileName string `json:"profile_name"`

	// SourceID references the broker catalog when the source came from
	// it, zero otherwise.
	SourceID int64 `json:"source_id,omitempty"`

	// SourceIdentity is the dedup key (Source.Identity()).
	SourceIdentity string `json:"source_identity"`

	// SourceName is the human-readable source name, kept for sources
	// that have no catalog row.
	SourceName string         `json:"source_name"`
	SourceType SourceCategory `json:"source_type"`

	Status     ExposureStatus `json:"status"`
	Risk       RiskTier       `json:"risk"`
	Confidence float64        `json:"confidence"`

	ProfileURL string         `json:"profile_url,omitempty"`
	DataFound  []DataCategory `json:"data_found,omitempty"`

	FirstDetectedAt time.Time  `json:"first_detected_at"`
	LastCheckedAt   time.Time  `json:"last_checked_at"`
	RemovedAt       *time.Time `json:"removed_at,omitempty"`
}

// Listed reports whether the exposure is currently visible at the
// source (found or re-listed).
func (e *Exposure) Listed() bool {
	return e.Status == ExposureFound || e.Status == ExposureRelisted
}
