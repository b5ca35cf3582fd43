package aggregate

import (
	"net/url"
	"strings"

	"github.com/offlist/offlist/internal/match"
	"github.com/offlist/offlist/internal/model"
)

// socialDomains classify a hit as a user-controlled social profile.
var socialDomains = map[string]bool{
	"facebook.com":  true,
	"twitter.com":   true,
	"x.com":         true,
	"linkedin.com":  true,
	"instagram.com": true,
	"tiktok.com":    true,
	"pinterest.com": true,
	"reddit.com":    true,
	"youtube.com":   true,
	"github.com":    true,
	"medium.com":    true,
	"quora.com":     true,
	"snapchat.com":  true,
}

// newsDomains classify a hit as press coverage, which no opt-out can
// remove.
var newsDomains = map[string]bool{
	"nytimes.com":        true,
	"washingtonpost.com": true,
	"wsj.com":            true,
	"cnn.com":            true,
	"bbc.com":            true,
	"reuters.com":        true,
	"apnews.com":         true,
	"bloomberg.com":      true,
	"forbes.com":         true,
	"usatoday.com":       true,
}

// Classify buckets a hit by domain. The class, not the confidence,
// decides whether a removal action is offered: press and government
// records are not removable no matter how confident the match is.
func Classify(src *model.Source, profileURL string) (model.DomainClass, model.RiskTier, bool) {
	domain := src.Domain
	if domain == "" {
		domain = hostOf(profileURL)
	}
	domain = strings.TrimPrefix(strings.ToLower(domain), "www.")

	switch {
	case src.Category == model.CategoryBroker || match.IsBrokerDomain(domain):
		return model.ClassDataBroker, model.RiskHigh, true
	case src.Category == model.CategorySocialMedia || socialDomains[domain]:
		return model.ClassSocialMedia, model.RiskMedium, true
	case strings.HasSuffix(domain, ".gov"):
		return model.ClassGovernment, model.RiskMedium, false
	case newsDomains[domain]:
		return model.ClassNews, model.RiskLow, false
	default:
		return model.ClassOther, model.RiskMedium, true
	}
}

// hostOf extracts the host from a URL, or "" when unparseable.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
