// Package logging assembles the structured slog loggers used across
// niriscale.
//
// It centralizes level and format plumbing and provides a no-op logger for
// tests and wiring code that cannot fail. Prefer these constructors over
// hand-rolled slog setup so every component emits data with the same shape.
package logging
