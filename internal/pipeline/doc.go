// Package pipeline orchestrates a scan pass as an ordered sequence of
// steps: dispatching probes, aggregating hits, and persisting
// exposures.
package pipeline
