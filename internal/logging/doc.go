// Package logging assembles the structured slog loggers used across Crossfade.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes typed attribute helpers plus component loggers so every package
// emits log lines with the same shape. A no-op logger is provided for tests and
// wiring code that cannot fail.
package logging
