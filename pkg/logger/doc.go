// Package logger provides a structured logging interface for followsnap.
//
// It wraps zerolog with a small interface so components receive a Logger
// instead of reaching for globals:
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("run_id", id).InfoWithFields("cycle status", map[string]interface{}{
//	    "cycle": 3,
//	    "total": 812,
//	})
//
// Console output is human readable and colored only when stdout is a
// terminal. When Logging.File is set every entry is also appended to that
// file as a JSON line.
//
// Tests use NewTestLogger to capture messages or NewNopLogger to discard them.
package logger
