// Package logging provides structured logging for the interlock firmware tools.
//
// This package wraps a global zap logger with convenience functions used across
// the flash, config and boot packages, plus line sinks for the human-readable
// diagnostics the config loader emits after a failed load.
//
// # Log Levels
//
//   - Debug: Per-key lookups, raw bytes of rejected lines
//   - Info: Mount status, successful load, boot stages
//   - Warn: Values clipped for a peripheral driver
//   - Error: Config diagnostics, halted startup
//
// # Configuration
//
// Logging is silent unless a level is passed to Initialize or the
// INTERLOCK_LOG_LEVEL environment variable is set:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Output goes to stderr so command output on stdout stays machine readable.
//
// # Diagnostic Sinks
//
// ConfigSink forwards each diagnostic line to the logger; WriterSink writes
// them verbatim to any io.Writer (interlock-cfg show writes them to stderr):
//
//	loader := config.NewLoader(store, logging.ConfigSink())
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once Initialize has
// returned. The underlying zap logger handles synchronization automatically.
package logging
