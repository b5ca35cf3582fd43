package match

import (
	"strings"

	"github.com/offlist/offlist/internal/identity"
	"github.com/offlist/offlist/internal/model"
)

// Weights holds the evidence weight per signal. The values are tuned
// against live broker result pages.
type Weights struct {
	// FullName is the base evidence for a "first last" substring.
	FullName float64

	// NamePattern applies per separator variant ("last, first",
	// "first_last", "first-last", "first, last").
	NamePattern float64

	// MiddleFull and MiddleInitial cover "first middle last" and
	// "first m last".
	MiddleFull    float64
	MiddleInitial float64

	// Email and Phone are near-certain identity signals.
	Email float64
	Phone float64

	// City, State, and Street are location corroboration.
	City   float64
	State  float64
	Street float64

	// Indicator applies once per personal-info category detected.
	Indicator float64

	// ProfilePage applies per profile-page phrase detected.
	ProfilePage float64

	// BrokerBonus applies when the source is a known data broker.
	BrokerBonus float64
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{
		FullName:      0.50,
		NamePattern:   0.30,
		MiddleFull:    0.40,
		MiddleInitial: 0.30,
		Email:         0.55,
		Phone:         0.55,
		City:          0.10,
		State:         0.05,
		Street:        0.20,
		Indicator:     0.10,
		ProfilePage:   0.20,
		BrokerBonus:   0.15,
	}
}

// Scorer evaluates page text against an identity.
type Scorer struct {
	weights   Weights
	threshold float64
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithWeights overrides the default weight table.
func WithWeights(w Weights) ScorerOption {
	return func(s *Scorer) {
		s.weights = w
	}
}

// NewScorer creates a scorer with the given found threshold.
func NewScorer(threshold float64, opts ...ScorerOption) *Scorer {
	s := &Scorer{
		weights:   DefaultWeights(),
		threshold: threshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluation is the scored outcome for one page.
type Evaluation struct {
	Found      bool
	Confidence float64
	Signals    []model.Signal
	Data       []model.DataCategory
}

// Evaluate scores text fetched from src against id.
//
// A no-result phrase anywhere in the content forces not-found
// regardless of other evidence. Both name tokens must appear for a
// found decision; confidence still reports the accumulated evidence
// so callers can log near-misses.
func (s *Scorer) Evaluate(src *model.Source, id *identity.Identity, text string) Evaluation {
	lower := strings.ToLower(text)

	for _, phrase := range noResultPhrases {
		if strings.Contains(lower, phrase) {
			return Evaluation{}
		}
	}

	if id.FirstName == "" || id.LastName == "" {
		return Evaluation{}
	}

	var (
		conf    float64
		signals []model.Signal
	)

	if strings.Contains(lower, id.FirstName+" "+id.LastName) {
		conf += s.weights.FullName
		signals = append(signals, model.SignalName)
	}

	patterns := []string{
		id.FirstName + ", " + id.LastName,
		id.LastName + ", " + id.FirstName,
		id.FirstName + "_" + id.LastName,
		id.FirstName + "-" + id.LastName,
	}
	patternHit := false
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			conf += s.weights.NamePattern
			patternHit = true
		}
	}
	if patternHit {
		signals = append(signals, model.SignalNamePattern)
	}

	if id.MiddleName != "" {
		middleHit := false
		if strings.Contains(lower, id.FirstName+" "+id.MiddleName+" "+id.LastName) {
			conf += s.weights.MiddleFull
			middleHit = true
		}
		if strings.Contains(lower, id.FirstName+" "+id.MiddleName[:1]+" "+id.LastName) {
			conf += s.weights.MiddleInitial
			middleHit = true
		}
		if middleHit {
			signals = append(signals, model.SignalMiddleName)
		}
	}

	for _, email := range id.Emails {
		if strings.Contains(lower, email) {
			conf += s.weights.Email
			signals = append(signals, model.SignalEmail)
			break
		}
	}

	if phoneMatch(lower, id) {
		conf += s.weights.Phone
		signals = append(signals, model.SignalPhone)
	}

	if id.City != "" && strings.Contains(lower, id.City) {
		conf += s.weights.City
		signals = append(signals, model.SignalCity)
	}
	if id.State != "" && strings.Contains(lower, id.State) {
		conf += s.weights.State
		signals = append(signals, model.SignalState)
	}
	for _, street := range id.Streets {
		if strings.Contains(lower, street) {
			conf += s.weights.Street
			signals = append(signals, model.SignalAddress)
			break
		}
	}

	indicatorHit := false
	for _, keywords := range personalIndicators {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				conf += s.weights.Indicator
				indicatorHit = true
				break
			}
		}
	}
	if indicatorHit {
		signals = append(signals, model.SignalIndicator)
	}

	pageHit := false
	for _, phrase := range profilePageIndicators {
		if strings.Contains(lower, phrase) {
			conf += s.weights.ProfilePage
			pageHit = true
		}
	}
	if pageHit {
		signals = append(signals, model.SignalProfilePage)
	}

	if src != nil && (src.Category == model.CategoryBroker || IsBrokerDomain(src.Domain)) {
		conf += s.weights.BrokerBonus
		signals = append(signals, model.SignalBrokerSite)
	}

	if conf > 1 {
		conf = 1
	}

	eval := Evaluation{
		Confidence: conf,
		Signals:    signals,
	}

	namePresent := strings.Contains(lower, id.FirstName) && strings.Contains(lower, id.LastName)
	if conf >= s.threshold && namePresent {
		eval.Found = true
		eval.Data = ExtractData(text)
	}

	return eval
}

// SearchExposure reports whether search-engine result text indicates
// data-broker listings for the identity: both name tokens present and
// at least one known broker mentioned.
func (s *Scorer) SearchExposure(id *identity.Identity, text string) bool {
	lower := strings.ToLower(text)

	if id.FirstName == "" || id.LastName == "" {
		return false
	}
	if !strings.Contains(lower, id.FirstName) || !strings.Contains(lower, id.LastName) {
		return false
	}

	for _, key := range searchMentionKeys {
		if strings.Contains(lower, key) {
			return true
		}
	}
	return false
}

// phoneMatch checks the formatted numbers against the text and the
// digit-only forms against a condensed digit stream, so a number
// matches however the page formats it.
func phoneMatch(lower string, id *identity.Identity) bool {
	for _, ph := range id.Phones {
		if ph != "" && strings.Contains(lower, strings.ToLower(ph)) {
			return true
		}
	}

	if len(id.Digits) == 0 {
		return false
	}
	var b strings.Builder
	for _, r := range lower {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	stream := b.String()
	for _, d := range id.Digits {
		if strings.Contains(stream, d) {
			return true
		}
	}
	return false
}
