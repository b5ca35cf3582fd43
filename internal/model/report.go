package model

import "time"

// DomainClass buckets a hit by the kind of site hosting it. The class,
// not the raw confidence, decides whether a removal action is offered.
type DomainClass string

// Domain classes.
const (
	ClassDataBroker  DomainClass = "data_broker"
	ClassSocialMedia DomainClass = "social_media"
	ClassNews        DomainClass = "news"
	ClassGovernment  DomainClass = "government"
	ClassOther       DomainClass = "other"
)

// ExposureCandidate is an aggregated, classified hit ready to be
// persisted as an exposure or presented to the user.
type ExposureCandidate struct {
	Result ScanResult  `json:"result"`
	Class  DomainClass `json:"class"`
	Risk   RiskTier    `json:"risk"`

	// Removable reports whether a removal action may be offered for
	// this class of site. News and government records are reported but
	// not removable.
	Removable bool `json:"removable"`
}

// ScanReport accumulates everything one scan pass produced. It flows
// through the pipeline steps and is what the report writers render.
type ScanReport struct {
	ProfileName string   `json:"profile_name"`
	Profile     *Profile `json:"-"`

	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`

	// Sources is the number of sources probed.
	Sources int `json:"sources"`

	// Results holds every per-source outcome, including errors and
	// not-found results. Kept for auditability; writers summarize it.
	Results []ScanResult `json:"results,omitempty"`

	// Candidates are the deduplicated, threshold-filtered, ranked hits.
	Candidates []ExposureCandidate `json:"candidates"`

	// NewExposures counts candidates persisted as first-time exposures
	// (populated by the persist step when a store is configured).
	NewExposures int `json:"new_exposures"`

	// Errors counts failed fetches, by tag.
	Errors map[FetchError]int `json:"errors,omitempty"`

	// Error records a pipeline-level failure; per-source fetch errors
	// never land here.
	Error        error  `json:"-"`
	ErrorMessage string `json:"error_message,omitempty"`

	// PerformedSteps lists pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewScanReport creates a report for the given profile.
func NewScanReport(profile *Profile) *ScanReport {
	return &ScanReport{
		ProfileName: profile.FullName(),
		Profile:     profile,
		StartedAt:   time.Now(),
		Errors:      make(map[FetchError]int),
	}
}

// CountByRisk returns how many candidates fall in each risk tier.
func (r *ScanReport) CountByRisk() map[RiskTier]int {
	counts := make(map[RiskTier]int)
	for _, c := range r.Candidates {
		counts[c.Risk]++
	}
	return counts
}

// Removable returns the candidates a removal action may be offered for.
func (r *ScanReport) Removable() []ExposureCandidate {
	out := make([]ExposureCandidate, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		if c.Removable {
			out = append(out, c)
		}
	}
	return out
}
