// Package logger builds the zap logger shared by the CLI and the HTTP server.
//
// Entries carry correlation fields: WithRayID tags a request's entries with
// the ray ID set by the rayid middleware, and WithRun tags a sync run's
// entries with its run ID.
//
// # Configuration
//
//   - Level: debug, info, warn, error (debug also enables development mode)
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
