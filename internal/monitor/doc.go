// Package monitor periodically rechecks removed exposures for
// re-listing and verifies pending removals.
package monitor
