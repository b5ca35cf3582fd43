// Package log provides a slog.Handler that redacts personal data from
// log output. The engine handles names, emails, phone numbers, and
// street addresses on every scan; this handler keeps them out of logs
// and crash reports.
package log
