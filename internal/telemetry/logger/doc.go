// Package logger provides structured logging for respkv.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: construction, JSON/text handlers, dynamic level
//   - context.go: context propagation of the logger and connection IDs
//   - truncate.go: clipping of oversized attribute values
//
// The level is held in a process-wide slog.LevelVar so configuration
// reloads can change verbosity without rebuilding loggers.
package logger
