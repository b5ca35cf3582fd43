// Package match scores fetched page content against a normalized
// identity. The scorer accumulates weighted evidence per signal and
// reports the matched signals and exposed data categories alongside
// the confidence, so every found decision is auditable.
package match
