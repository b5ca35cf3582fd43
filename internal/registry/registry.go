package registry

import (
	"errors"
	"fmt"

	"github.com/offlist/offlist/internal/model"
)

// ErrDuplicateSource is returned when two sources collapse onto the
// same identity key. Duplicate identities would break the
// one-exposure-per-source rule downstream.
var ErrDuplicateSource = errors.New("duplicate source identity")

// Registry is the complete ordered scan plan for one run. Build it
// with New; the zero value is not usable.
type Registry struct {
	brokers []model.Source
	sites   []model.Source
	social  []model.Source
	biz     []model.Source
	search  model.Source
}

// New assembles a scan plan from the catalog brokers and optional
// user-supplied sources. Custom sources are appended to the
// people-search table. Every template is validated here so malformed
// configuration fails before any network traffic.
func New(brokers, custom []model.Source) (*Registry, error) {
	r := &Registry{
		brokers: activeOnly(brokers),
		sites:   PeopleSearchSites(),
		social:  SocialPlatforms(),
		biz:     BusinessDirectories(),
		search:  SearchEngine(),
	}

	for i := range custom {
		c := custom[i]
		if c.Separator == "" {
			c.Separator = "-"
		}
		r.sites = append(r.sites, c)
	}

	seen := map[string]bool{}
	for _, group := range [][]model.Source{r.brokers, r.sites, r.social, r.biz} {
		for i := range group {
			s := &group[i]
			if err := s.ValidateTemplate(); err != nil {
				return nil, err
			}
			id := s.Identity()
			if seen[id] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateSource, id)
			}
			seen[id] = true
		}
	}

	return r, nil
}

// Brokers returns the removable catalog brokers. These are probed
// across all name variants.
func (r *Registry) Brokers() []model.Source { return r.brokers }

// Sites returns people-search sites plus custom sources. Probed with
// the primary variant only.
func (r *Registry) Sites() []model.Source { return r.sites }

// Social returns the social platform sources.
func (r *Registry) Social() []model.Source { return r.social }

// BusinessDirs returns the business directory sources.
func (r *Registry) BusinessDirs() []model.Source { return r.biz }

// SearchProbe returns the search-engine probe source.
func (r *Registry) SearchProbe() model.Source { return r.search }

// Len reports the total number of sources in the plan, the probe
// included.
func (r *Registry) Len() int {
	return len(r.brokers) + len(r.sites) + len(r.social) + len(r.biz) + 1
}

// activeOnly filters out brokers disabled in the catalog.
func activeOnly(sources []model.Source) []model.Source {
	out := make([]model.Source, 0, len(sources))
	for _, s := range sources {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}
