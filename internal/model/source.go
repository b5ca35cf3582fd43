package model

import (
	"fmt"
	"regexp"
	"strings"
)

// SourceCategory classifies where a source sits in the scan plan.
// Broker sources come from the mutable catalog and are retried across
// name variants; the other categories are compiled configuration and
// are probed with the primary variant only.
type SourceCategory string

// Source categories.
const (
	CategoryBroker            SourceCategory = "broker"
	CategoryAdditionalSite    SourceCategory = "additional_site"
	CategorySocialMedia       SourceCategory = "social_media"
	CategoryBusinessDirectory SourceCategory = "business_directory"
	CategorySearchEngine      SourceCategory = "search_engine"
)

// RiskTier is the coarse exposure risk a source represents.
type RiskTier string

// Risk tiers.
const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// OptOutMethod is how a removal request is delivered to a source.
type OptOutMethod string

// Opt-out delivery methods.
const (
	MethodEmail  OptOutMethod = "email"
	MethodForm   OptOutMethod = "form"
	MethodManual OptOutMethod = "manual"
)

// OptOut describes how to request removal from a source.
// For MethodEmail, Email and Subject are set. For MethodForm, Endpoint
// and Fields are set; Fields values are templates over profile data
// (e.g. "{profile_url}", "{user_email}"). For MethodManual only URL
// and Instructions are meaningful.
type OptOut struct {
	Method       OptOutMethod      `yaml:"method" json:"method"`
	Email        string            `yaml:"email,omitempty" json:"email,omitempty"`
	Subject      string            `yaml:"subject,omitempty" json:"subject,omitempty"`
	URL          string            `yaml:"url,omitempty" json:"url,omitempty"`
	Endpoint     string            `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Fields       map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
	Instructions string            `yaml:"instructions,omitempty" json:"instructions,omitempty"`

	// CanAutomate is false for sources whose flow is known to break
	// under automation even when a method is configured.
	CanAutomate bool `yaml:"can_automate" json:"can_automate"`

	// Captcha marks sources that gate their opt-out flow behind a
	// CAPTCHA. Such sources always resolve to manual handling.
	Captcha bool `yaml:"captcha,omitempty" json:"captcha,omitempty"`
}

// Source is a single scan target: a data broker, people-search site,
// social platform, business directory, or search-engine probe.
// Static sources have ID == 0; catalog brokers carry their database ID.
type Source struct {
	ID       int64          `yaml:"-" json:"id,omitempty"`
	Name     string         `yaml:"name" json:"name"`
	Domain   string         `yaml:"domain,omitempty" json:"domain,omitempty"`
	Category SourceCategory `yaml:"category,omitempty" json:"category"`
	Risk     RiskTier       `yaml:"risk,omitempty" json:"risk"`

	// URLTemplate contains {first_name}, {last_name}, {city} and
	// {state} placeholders. Name tokens are substituted with slugs
	// produced by the identity normalizer.
	URLTemplate string `yaml:"url_template" json:"url_template"`

	// Separator joins multi-word name tokens in the URL ("-", "+",
	// "%20", or "" for platforms that use bare concatenation).
	Separator string `yaml:"separator,omitempty" json:"separator,omitempty"`

	// ProcessingDays is the advertised opt-out turnaround. Zero means
	// unknown; callers fall back to a default.
	ProcessingDays int `yaml:"processing_days,omitempty" json:"processing_days,omitempty"`

	OptOut OptOut `yaml:"opt_out,omitempty" json:"opt_out"`

	Active bool `yaml:"-" json:"active"`
}

// templatePlaceholder matches {name} tokens inside a URL template.
var templatePlaceholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// allowedPlaceholders are the tokens a URL template may reference.
var allowedPlaceholders = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"city":       true,
	"state":      true,
}

// ValidateTemplate reports an error when the URL template references
// an unknown placeholder. Called once at registry build time so that
// malformed configuration fails at startup, not mid-scan.
func (s *Source) ValidateTemplate() error {
	if s.URLTemplate == "" {
		return fmt.Errorf("source %q: empty URL template", s.Name)
	}
	for _, m := range templatePlaceholder.FindAllStringSubmatch(s.URLTemplate, -1) {
		if !allowedPlaceholders[m[1]] {
			return fmt.Errorf("source %q: unknown placeholder {%s}", s.Name, m[1])
		}
	}
	return nil
}

// BuildURL expands the URL template with slugified name tokens and
// the profile's primary city/state.
func (s *Source) BuildURL(firstSlug, lastSlug, city, state string) string {
	r := strings.NewReplacer(
		"{first_name}", firstSlug,
		"{last_name}", lastSlug,
		"{city}", city,
		"{state}", state,
	)
	return r.Replace(s.URLTemplate)
}

// Identity returns the key used to collapse exposures onto a source:
// the catalog ID when present, otherwise the normalized display name.
// This backs the one-non-terminal-exposure-per-source invariant.
func (s *Source) Identity() string {
	if s.ID != 0 {
		return fmt.Sprintf("broker:%d", s.ID)
	}
	return strings.ToLower(strings.Join(strings.Fields(s.Name), "_"))
}
