// Package logging provides structured logging utilities shared by all
// kairos components.
//
// It wraps the standard library slog package with project defaults:
// JSON output to stderr, module/version context on every record,
// LOG_LEVEL environment configuration, and source location tracking
// for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("kairos", version)
//
//	    slog.Info("probing host", "clocksource", cs)
//	    slog.Error("probe failed", "error", err)
//	}
//
// Setting an explicit level (e.g. from a --log-level flag):
//
//	logging.SetDefaultStructuredLoggerWithLevel("kairos", version, "debug")
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given:
//
//	LOG_LEVEL=debug kairos check
//
// Supported levels (case-insensitive): debug, info (default), warn,
// warning, error.
package logging
