// Package mail provides the outbound email transport for opt-out
// requests. The production implementation posts to a Resend-style
// HTTP API; the log fallback is used when no API key is configured so
// removals degrade to manual handling instead of failing.
package mail
