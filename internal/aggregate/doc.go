// Package aggregate turns raw scan results into ranked exposure
// candidates: dedup by resolved URL, confidence filtering, domain
// classification, and the removability decision.
package aggregate
