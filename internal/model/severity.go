package model

// Severity grades alerts and exposure risk for presentation.
//
// Design decision: iota constants rather than strings so severities
// sort and compare cheaply; String() provides the readable form.
type Severity int

// Severity levels, in ascending order of urgency.
const (
	// SeverityLow covers confirmations and informational events, such
	// as a removal being verified.
	SeverityLow Severity = iota

	// SeverityMedium covers exposures on sources the user controls or
	// that are not removable.
	SeverityMedium

	// SeverityHigh covers new exposures on removable sources, which
	// warrant filing a removal request.
	SeverityHigh

	// SeverityCritical covers re-listings: data that reappeared after
	// a confirmed removal.
	SeverityCritical
)

// String returns the lowercase wire form used in storage and reports.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a stored string back to a Severity.
// Unknown strings map to SeverityMedium.
func ParseSeverity(s string) Severity {
	switch s {
	case "low":
		return SeverityLow
	case "medium":
		return SeverityMedium
	case "high":
		return SeverityHigh
	case "critical":
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

// SeverityForRisk maps a source risk tier to an alert severity.
func SeverityForRisk(r RiskTier) Severity {
	switch r {
	case RiskHigh:
		return SeverityHigh
	case RiskMedium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
