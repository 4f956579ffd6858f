// Package logging assembles structured slog loggers and formatting helpers
// used across the ttsprep pipeline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so stage code can tag log lines with
// the run id and stage name. A no-op logger is provided for tests and wiring
// code that cannot fail.
package logging
