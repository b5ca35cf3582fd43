package model

import "testing"

// TestSeverityString tests the wire form round trip.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	for _, sev := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		if got := ParseSeverity(sev.String()); got != sev {
			t.Errorf("ParseSeverity(%q) = %v, want %v", sev.String(), got, sev)
		}
	}

	if got := Severity(99).String(); got != "unknown" {
		t.Errorf("expected 'unknown' for out-of-range severity, got %q", got)
	}
}

// TestParseSeverityUnknown tests the fallback for unknown strings.
func TestParseSeverityUnknown(t *testing.T) {
	t.Parallel()

	if got := ParseSeverity("bogus"); got != SeverityMedium {
		t.Errorf("ParseSeverity(bogus) = %v, want medium", got)
	}
}

// TestSeverityForRisk tests the risk tier mapping.
func TestSeverityForRisk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		risk RiskTier
		want Severity
	}{
		{risk: RiskHigh, want: SeverityHigh},
		{risk: RiskMedium, want: SeverityMedium},
		{risk: RiskLow, want: SeverityLow},
		{risk: RiskTier(""), want: SeverityLow},
	}

	for _, tt := range tests {
		if got := SeverityForRisk(tt.risk); got != tt.want {
			t.Errorf("SeverityForRisk(%q) = %v, want %v", tt.risk, got, tt.want)
		}
	}
}

// TestSeverityOrdering tests that severities compare by urgency.
func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	if !(SeverityLow < SeverityMedium && SeverityMedium < SeverityHigh && SeverityHigh < SeverityCritical) {
		t.Error("expected severities to ascend low < medium < high < critical")
	}
}
