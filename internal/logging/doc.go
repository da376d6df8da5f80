// Package logging provides structured logging for task sessions.
//
// This package wraps Go's log/slog to write JSON-formatted logs to a file in
// the session directory. The terminal is owned by the task display while a
// session runs, so log output never goes to stdout.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/session", "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("session started", "trials_per_set", 80)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	blockLogger := logger.WithSession("20261019-101500").WithBlock(2)
//	blockLogger.WithPhase("stimulus").Debug("response discarded")
//
// # Rotation
//
// Long sessions are bounded by [RotatingWriter]: debug.log is renamed to
// debug.log.1 (shifting older backups up) once it would exceed MaxSizeMB.
//
// # Testing
//
// Use [NopLogger] to discard all output, or [NewWithWriter] to capture it.
package logging
