// Package logging assembles the structured slog loggers used across vorbify.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes attr helpers so conversion code tags log lines uniformly with the
// current file, format, and tool. The console handler prefixes each line with
// its severity so per-file failures are distinguishable from informational
// notices on the error stream. A no-op logger is provided for tests.
package logging
