// Package scanner fetches source pages and fans probes out across the
// scan plan. The fetcher classifies every failure into a fetch error
// tag; the dispatcher bounds concurrency, applies per-source timeouts,
// and never lets one source's failure abort its siblings.
package scanner
