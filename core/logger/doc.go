// Package logger configures the application's zap logger.
//
// The level selects between zap's development config (debug) and
// production config (everything else); the format switches between
// human-readable console output for operators running one-shot commands
// and JSON for the daemon behind a log collector.
//
// WithRayID decorates a logger with the per-request ray_id injected by
// the rayid middleware, so every log line of one HTTP request can be
// correlated.
package logger
