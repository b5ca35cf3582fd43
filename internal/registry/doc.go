// Package registry holds the scan target catalog: the compiled tables
// of people-search sites, social platforms, business directories, and
// the search-engine probe, plus the seed list of removable data
// brokers. A Registry combines those tables with catalog brokers from
// the database and user-supplied sources into one ordered scan plan.
package registry
