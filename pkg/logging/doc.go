// Package logging provides structured logging utilities for hostcond.
//
// # Overview
//
// This package wraps the standard library slog package with hostcond defaults
// so that the CLI, the dispatch controller, and every condition module log in
// the same shape. It supports environment-based log level configuration,
// module/version context injection, and source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("hostcond", version, "info")
//	    slog.Info("run started", "run_id", id)
//	}
//
// # Environment Configuration
//
// When no explicit level is given, LOG_LEVEL controls verbosity:
//
//	LOG_LEVEL=debug hostcond --certificates
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "module completed",
//	    "module": "hostcond",
//	    "version": "v1.0.0",
//	    "name": "certificates"
//	}
package logging
