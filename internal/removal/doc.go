// Package removal orchestrates opt-out requests: filing them against
// exposures, executing delivery, and tracking them to completion.
package removal
