// Package logging assembles the structured slog loggers used across
// clipscribe.
//
// It centralizes level and output plumbing, standardizes the attribute keys
// components log under, and exposes a no-op logger for tests and wiring code
// that cannot fail. Prefer these constructors over hand-rolled slog setup so
// new components emit data with the same shape as the rest of the system.
package logging
