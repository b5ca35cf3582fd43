// Package database provides SQLite-backed persistence for the broker
// catalog, exposure records, removal requests, and alerts.
package database
