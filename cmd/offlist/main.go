// Package main provides the entry point for the Offlist CLI.
//
// Offlist scans people-search sites and data brokers for a person's
// exposed personal information, files opt-out requests, and monitors
// confirmed removals for re-listing.
//
// Usage:
//
//	offlist scan
//	offlist optout file --all
//	offlist worker
//
// See --help for all available options.
package main

// main is the entry point for Offlist.
func main() {
	Execute()
}
