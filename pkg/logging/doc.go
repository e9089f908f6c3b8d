// Package logging provides structured logging for formset built on Go's
// standard slog package.
//
// Every log entry carries a subsystem identifier ("engine", "dispatch",
// "toolserver", ...) so output from concurrent report executions can be
// attributed. Initialize once at startup:
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//	logging.Info("engine", "executing report %s", name)
//	logging.Error("dispatch", err, "remote operation failed")
//
// Log calls made before Init are dropped.
package logging
