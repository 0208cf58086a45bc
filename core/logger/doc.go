// Package logger builds the application's zap logger.
//
// New honours the configured level and format: "debug" selects zap's
// development config with ISO8601 timestamps, anything else the production
// config at the given level. Console format colours levels and drops stack
// traces; json is meant for log shippers.
//
// Two helpers add correlation fields:
//
//   - WithRunID tags every line of one CLI invocation with a run_id.
//   - WithRayID tags every line of one HTTP request with the ray_id set by
//     the rayid middleware.
package logger
