// Package logging assembles structured slog loggers used across wordrank.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, tags every record with the invocation's session ID, and exposes
// context-aware helpers so pipeline code can attach run IDs and stage names
// without threading them through every call. A no-op logger is provided for
// tests and wiring code that cannot fail.
//
// Log output goes to stderr (and optionally a file) so stdout stays reserved
// for tables and JSON.
package logging
