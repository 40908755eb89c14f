// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"routing": "debug",  // Per-module overrides
//			"api":     "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("mymodule")
//	logger.Info("Starting up", "port", 8080)
//	logger.Debug("Details", "config", cfg)
//	logger.Warn("Something unusual", "error", err)
//	logger.Error("Failed", "error", err)
//
// Add contextual attributes:
//
//	logger := logging.GetLogger("streams").With("open_stream_id", id)
//	logger.Info("Stream started")  // Includes open_stream_id in all logs
//
// # Log Levels
//
//	debug - Verbose debugging information
//	info  - General operational messages
//	warn  - Warning conditions
//	error - Error conditions
//
// # Output Destinations
//
// The system automatically detects available outputs and combines them
// with the ring-buffer handler, which is always added, in a MultiHandler:
//
//	Journal available + stdout available → journal, stdout and buffer
//	Journal available only              → journal and buffer
//	Stdout available only               → stdout (text or JSON) and buffer
//
// Journal availability is checked via [github.com/coreos/go-systemd/v22/journal.Enabled].
//
// # Viewing Logs
//
// When running as a systemd service or on a system with journald:
//
//	journalctl -t audiohal              # All audiohal logs
//	journalctl -t audiohal -f           # Follow live
//	journalctl -t audiohal --since "5m" # Last 5 minutes
//	journalctl -t audiohal -p err       # Errors only
//
// Filter by structured fields:
//
//	journalctl -t audiohal MODULE=streams
//	journalctl -t audiohal OPEN_STREAM_ID=pcm0
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	routing = "debug"
//	api = "warn"
//	mixer = "error"
package logging
