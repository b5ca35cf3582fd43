package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/offlist/offlist/internal/identity"
	"github.com/offlist/offlist/internal/match"
	"github.com/offlist/offlist/internal/model"
)

// Plan is the ordered set of sources one scan covers. The registry
// package provides the production implementation.
type Plan interface {
	// Brokers are probed across all name variants.
	Brokers() []model.Source

	// Sites, Social, and BusinessDirs are probed with the primary
	// variant only.
	Sites() []model.Source
	Social() []model.Source
	BusinessDirs() []model.Source

	// SearchProbe is the search-engine source.
	SearchProbe() model.Source
}

// Dispatcher fans probes out across a scan plan with bounded
// concurrency. Each fetch gets an independent timeout; a source that
// fails or times out produces a found=false result and never cancels
// its siblings.
type Dispatcher struct {
	fetcher *Fetcher
	scorer  *match.Scorer
	logger  *slog.Logger

	// concurrency bounds in-flight fetches across all source groups.
	concurrency int

	// fetchTimeout applies per probe, independent of the parent
	// context's own deadline.
	fetchTimeout time.Duration

	// searchQueries caps queries per search-engine probe; the limiter
	// paces them so the engine does not rate-limit us.
	searchQueries int
	searchPause   time.Duration
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithConcurrency sets the fan-out limit.
func WithConcurrency(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.concurrency = n
	}
}

// WithFetchTimeout sets the per-probe timeout.
func WithFetchTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.fetchTimeout = timeout
	}
}

// WithSearchQueries caps how many search-engine queries run per scan.
func WithSearchQueries(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.searchQueries = n
	}
}

// WithSearchPause sets the pause between successive search queries.
func WithSearchPause(pause time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.searchPause = pause
	}
}

// NewDispatcher creates a dispatcher over the given fetcher and scorer.
func NewDispatcher(fetcher *Fetcher, scorer *match.Scorer, logger *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		fetcher:       fetcher,
		scorer:        scorer,
		logger:        logger,
		concurrency:   15,
		fetchTimeout:  15 * time.Second,
		searchQueries: 2,
		searchPause:   500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Scan probes every source in the plan for the identity and returns
// all results, hits and misses alike. Result order is unspecified;
// the aggregator sorts.
func (d *Dispatcher) Scan(ctx context.Context, id *identity.Identity, plan Plan) []model.ScanResult {
	if len(id.Variants) == 0 {
		d.logger.Warn("scan skipped: profile has no usable name")
		return nil
	}

	var (
		mu      sync.Mutex
		results []model.ScanResult
	)
	collect := func(r model.ScanResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	// Catalog brokers are worth the full variant sweep; a listing
	// under a maiden name is still a listing.
	for _, src := range plan.Brokers() {
		src := src
		g.Go(func() error {
			collect(d.scanVariants(gctx, src, id))
			return nil
		})
	}

	// Everything else gets the primary variant only, to keep a full
	// scan inside a couple of timeout windows.
	primary := id.Variants[0]
	for _, group := range [][]model.Source{plan.Sites(), plan.Social(), plan.BusinessDirs()} {
		for _, src := range group {
			src := src
			g.Go(func() error {
				collect(d.probe(gctx, src, id, d.buildURL(src, primary, id)))
				return nil
			})
		}
	}

	g.Go(func() error {
		for _, r := range d.searchScan(gctx, id, plan.SearchProbe()) {
			collect(r)
		}
		return nil
	})

	_ = g.Wait() // workers never return errors; failures live in results

	return results
}

// ScanSource probes a single source, used by the monitor to re-check
// one exposure without paying for a full scan.
func (d *Dispatcher) ScanSource(ctx context.Context, src model.Source, id *identity.Identity) model.ScanResult {
	if len(id.Variants) == 0 {
		return model.ScanResult{Source: src}
	}
	if src.Category == model.CategoryBroker {
		return d.scanVariants(ctx, src, id)
	}
	if src.Category == model.CategorySearchEngine {
		if results := d.searchScan(ctx, id, src); len(results) > 0 {
			return results[0]
		}
		return model.ScanResult{Source: src}
	}
	return d.probe(ctx, src, id, d.buildURL(src, id.Variants[0], id))
}

// scanVariants probes one source across all name variants, stopping at
// the first hit. The miss returned carries the last variant's outcome.
func (d *Dispatcher) scanVariants(ctx context.Context, src model.Source, id *identity.Identity) model.ScanResult {
	var last model.ScanResult
	for _, v := range id.Variants {
		last = d.probe(ctx, src, id, d.buildURL(src, v, id))
		if last.Found {
			return last
		}
		if ctx.Err() != nil {
			return last
		}
	}
	return last
}

// probe fetches one URL under its own timeout and scores the content.
func (d *Dispatcher) probe(ctx context.Context, src model.Source, id *identity.Identity, target string) model.ScanResult {
	res := model.ScanResult{Source: src}

	fctx, cancel := context.WithTimeout(ctx, d.fetchTimeout)
	defer cancel()

	page, err := d.fetcher.Fetch(fctx, target)
	if err != nil {
		var failure *FetchFailure
		if errors.As(err, &failure) {
			res.Error = failure.Kind
			res.Detail = failure.Detail
		} else {
			res.Error = model.FetchFailed
			res.Detail = truncate(err.Error())
		}
		d.logger.Debug("fetch failed",
			"source", src.Name,
			"url", target,
			"kind", string(res.Error),
		)
		return res
	}

	eval := d.scorer.Evaluate(&src, id, page.Text)
	res.Found = eval.Found
	res.Confidence = eval.Confidence
	res.Signals = eval.Signals
	if eval.Found {
		res.ProfileURL = page.URL
		res.DataFound = eval.Data
		d.logger.Debug("match",
			"source", src.Name,
			"confidence", res.Confidence,
		)
	}
	return res
}

// searchScan issues up to searchQueries paced queries against the
// search-engine probe and reports an exposure when result text
// mentions known broker listings. It stops at the first hit; otherwise
// it reports a single miss, carrying the last fetch error when every
// query failed.
func (d *Dispatcher) searchScan(ctx context.Context, id *identity.Identity, src model.Source) []model.ScanResult {
	if d.searchQueries <= 0 || src.URLTemplate == "" {
		return nil
	}

	queries := d.buildQueries(id)
	if len(queries) > d.searchQueries {
		queries = queries[:d.searchQueries]
	}

	limiter := rate.NewLimiter(rate.Every(d.searchPause), 1)

	miss := model.ScanResult{Source: src}
	for _, query := range queries {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		target := src.URLTemplate + "?q=" + url.QueryEscape(query)

		fctx, cancel := context.WithTimeout(ctx, d.fetchTimeout)
		page, err := d.fetcher.Fetch(fctx, target)
		cancel()
		if err != nil {
			var failure *FetchFailure
			if errors.As(err, &failure) {
				miss.Error = failure.Kind
				miss.Detail = failure.Detail
			} else {
				miss.Error = model.FetchFailed
				miss.Detail = truncate(err.Error())
			}
			continue
		}
		miss.Error = ""
		miss.Detail = ""

		if d.scorer.SearchExposure(id, page.Text) {
			return []model.ScanResult{{
				Source:     src,
				Found:      true,
				Confidence: 0.5,
				Signals:    []model.Signal{model.SignalBrokerSite},
				ProfileURL: target,
				Detail:     fmt.Sprintf("broker listings in results for %s", query),
			}}
		}
	}
	return []model.ScanResult{miss}
}

// buildQueries generates the search-engine queries for an identity, in
// priority order.
func (d *Dispatcher) buildQueries(id *identity.Identity) []string {
	full := id.Variants[0].Full()
	queries := []string{
		fmt.Sprintf("%q", full),
		fmt.Sprintf("%q address phone", full),
		fmt.Sprintf("%q personal information", full),
	}
	if id.City != "" && id.State != "" {
		queries = append(queries, fmt.Sprintf("%q %s %s", full, id.City, id.State))
	}
	return queries
}

// buildURL expands a source template for one name variant. City and
// state tokens come from the primary address.
func (d *Dispatcher) buildURL(src model.Source, v identity.Variant, id *identity.Identity) string {
	return src.BuildURL(
		v.FirstSlug(src.Separator),
		v.LastSlug(src.Separator),
		identity.Slug(id.City, "-"),
		id.State,
	)
}
