package model

// FetchError tags why a fetch produced no usable content. Fetch errors
// are values, not Go errors: a failed fetch yields a found=false
// ScanResult and never aborts sibling fetches.
type FetchError string

// Fetch error tags.
const (
	// FetchTimeout means the per-source deadline expired.
	FetchTimeout FetchError = "fetch_timeout"

	// FetchBlocked means the site answered HTTP 403. Ambiguous: the
	// profile may exist behind bot defenses, so it is logged
	// distinctly even though the result is treated as not-found.
	FetchBlocked FetchError = "fetch_blocked"

	// FetchNotFound means HTTP 404 or an explicit no-result phrase.
	FetchNotFound FetchError = "fetch_not_found"

	// FetchHTTPError means any other non-200 status.
	FetchHTTPError FetchError = "fetch_http_error"

	// FetchFailed means a transport-level failure (DNS, TLS, read).
	FetchFailed FetchError = "fetch_error"
)

// Signal identifies a piece of evidence that contributed to a match.
type Signal string

// Match signals.
const (
	SignalName        Signal = "name"
	SignalNamePattern Signal = "name_pattern"
	SignalMiddleName  Signal = "middle_name"
	SignalEmail       Signal = "email"
	SignalPhone       Signal = "phone"
	SignalCity        Signal = "city"
	SignalState       Signal = "state"
	SignalAddress     Signal = "address"
	SignalIndicator   Signal = "personal_info_indicator"
	SignalProfilePage Signal = "profile_page_indicator"
	SignalBrokerSite  Signal = "broker_site_bonus"
)

// DataCategory is a kind of personal data a source exposes.
type DataCategory string

// Exposed data categories.
const (
	DataAddress         DataCategory = "address"
	DataPhone           DataCategory = "phone"
	DataEmail           DataCategory = "email"
	DataRelatives       DataCategory = "relatives"
	DataAge             DataCategory = "age"
	DataSocialMedia     DataCategory = "social_media"
	DataPropertyRecords DataCategory = "property_records"
	DataCourtRecords    DataCategory = "court_records"
	DataEducation       DataCategory = "education"
	DataEmployment      DataCategory = "employment"
	DataPhotos          DataCategory = "photos"
	DataFinancial       DataCategory = "financial"
)

// ScanResult is the outcome of probing one source for one profile.
// Results are ephemeral: produced by the dispatcher, consumed by the
// aggregator within a single scan pass.
type ScanResult struct {
	// Source is the probed source (copied, not referenced, so results
	// stay valid if the registry reloads).
	Source Source `json:"source"`

	Found bool `json:"found"`

	// Confidence is the clamped [0,1] match score.
	Confidence float64 `json:"confidence"`

	// Signals lists the evidence behind Confidence, for auditability.
	Signals []Signal `json:"signals,omitempty"`

	// ProfileURL is the post-redirect URL that served the content.
	ProfileURL string `json:"profile_url,omitempty"`

	// DataFound are the categories of personal data detected.
	DataFound []DataCategory `json:"data_found,omitempty"`

	// Error is set when the fetch failed; Found is always false then.
	Error FetchError `json:"error,omitempty"`

	// Detail carries a short human-readable error or match note.
	Detail string `json:"detail,omitempty"`
}
