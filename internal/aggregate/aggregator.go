package aggregate

import (
	"sort"

	"github.com/offlist/offlist/internal/model"
)

// Aggregator reduces a scan pass to ranked exposure candidates.
type Aggregator struct {
	// threshold re-filters confidence. Normally equal to the scorer's
	// threshold; a caller may raise it for a stricter view.
	threshold float64

	// maxCandidates caps output to bound downstream persistence and
	// removal work.
	maxCandidates int
}

// NewAggregator creates an aggregator.
func NewAggregator(threshold float64, maxCandidates int) *Aggregator {
	return &Aggregator{
		threshold:     threshold,
		maxCandidates: maxCandidates,
	}
}

// Aggregate filters to found hits above the threshold, collapses
// duplicate resolved URLs (first occurrence wins, so a variant retry
// that landed on the same page counts once), ranks by confidence
// descending, caps, and classifies.
func (a *Aggregator) Aggregate(results []model.ScanResult) []model.ExposureCandidate {
	seen := map[string]bool{}
	hits := make([]model.ScanResult, 0, len(results))

	for _, r := range results {
		if !r.Found || r.Confidence < a.threshold {
			continue
		}
		if r.ProfileURL != "" {
			if seen[r.ProfileURL] {
				continue
			}
			seen[r.ProfileURL] = true
		}
		hits = append(hits, r)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Confidence > hits[j].Confidence
	})

	if a.maxCandidates > 0 && len(hits) > a.maxCandidates {
		hits = hits[:a.maxCandidates]
	}

	candidates := make([]model.ExposureCandidate, 0, len(hits))
	for _, r := range hits {
		class, risk, removable := Classify(&r.Source, r.ProfileURL)
		candidates = append(candidates, model.ExposureCandidate{
			Result:    r,
			Class:     class,
			Risk:      risk,
			Removable: removable,
		})
	}
	return candidates
}

// CountErrors tallies failed fetches by tag, for the report summary.
func CountErrors(results []model.ScanResult) map[model.FetchError]int {
	counts := make(map[model.FetchError]int)
	for _, r := range results {
		if r.Error != "" {
			counts[r.Error]++
		}
	}
	return counts
}
