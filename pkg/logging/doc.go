// Package logging provides a structured logging system for rollcall with
// unified log handling and level filtering.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent logging behavior with structured output and level filtering.
//
// # Architecture
//
// The logging system is built around these core concepts:
//
// ## Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// ## Structured Logging
// All log entries include:
//   - Timestamp with nanosecond precision
//   - Log level (Debug, Info, Warn, Error)
//   - Subsystem identifier for categorization
//   - Message content with optional formatting
//   - Optional error information
//
// # Usage Examples
//
//	import "rollcall/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	// Log messages
//	logging.Info("bootstrap", "Run starting")
//	logging.Debug("manifest", "Loaded manifest from %s", path)
//	logging.Warn("resolver", "Validation reported %d missing references", n)
//	logging.Error("container", err, "Factory for %s failed", name)
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **bootstrap**: Application wiring and materialization runs
//   - **manifest**: Manifest loading and validation
//   - **resolver**: Order resolution and validation
//   - **container**: Service registration and resolution
//   - **watcher**: Manifest change detection
//
// # Integration with slog
//
// The logging system integrates with Go's standard slog package:
//   - Uses slog.Handler implementations for output formatting
//   - Converts custom LogLevel to slog.Level for compatibility
//   - Sets the process-wide slog default on initialization
//
// # Thread Safety
//
// The logging system is fully thread-safe:
//   - Safe concurrent logging from multiple goroutines
//   - Level filtering at handler level, no allocation for suppressed messages
package logging
