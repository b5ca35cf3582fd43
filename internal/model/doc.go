// Package model defines the core data structures shared across offlist:
// identity profiles, scan sources, scan results, exposure records,
// removal requests, and alerts.
package model
