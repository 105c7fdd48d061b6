// Package log provides a structured logging interface for polysweep.
//
// The interface is slog-compatible so that callers can swap the backend,
// while the default implementation is built on zerolog. ML-specific
// attribute keys (operation, data shape, degree, RMSE) keep sweep logs
// uniform across packages.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("sweep").With(
//	    log.ModelNameKey, "LinearRegression",
//	)
//	logger.Info("Degree evaluated",
//	    log.DegreeKey, 3,
//	    log.RMSEKey, 0.51,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key-value pairs. With returns a child
// logger that carries the given fields on every subsequent record.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error, it is attached as the record's error
	// together with its stack trace when available.
	//
	// Example:
	//   logger.Error("Degree sweep failed",
	//       err,
	//       log.DegreeKey, 6,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
