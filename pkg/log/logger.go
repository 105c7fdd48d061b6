package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/polysweep/pkg/errors"
)

var (
	globalMu     sync.RWMutex
	globalLogger zerolog.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
)

// SetupLogger configures the package-wide zerolog logger to emit JSON to
// stdout at the given level ("debug", "info", "warn", "error") and routes
// library warnings through it.
func SetupLogger(loglevel string) error {
	return SetupLoggerWithWriter(os.Stdout, loglevel)
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination.
func SetupLoggerWithWriter(w io.Writer, loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}

	zerolog.ErrorStackMarshaler = marshalStack

	globalMu.Lock()
	globalLogger = zerolog.New(w).With().Timestamp().Logger().Level(toZerologLevel(level))
	globalMu.Unlock()

	warnings := GetLoggerWithName("warnings")
	errors.SetZerologWarnFunc(func(w error) {
		warnings.Warn(w.Error(), WarningAttrKey, w)
	})
	return nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, errors.NewValueError("log.ToLogLevel", "invalid log level: "+level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
	WarningAttrKey    = "warning"
)

// GetLogger returns the package-wide logger.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return &zerologLogger{zl: globalLogger}
}

// GetLoggerWithName returns the package-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// NewZerologLogger wraps an existing zerolog logger.
func NewZerologLogger(zl zerolog.Logger) Logger {
	return &zerologLogger{zl: zl}
}

// zerologLogger implements Logger on top of zerolog.
type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	write(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	write(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	write(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	ev := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Stack().Err(err)
			fields = fields[1:]
		}
	}
	write(ev, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{zl: l.zl.With().Fields(normalize(fields)).Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	zlvl := toZerologLevel(level)
	return zlvl >= l.zl.GetLevel() && zlvl >= zerolog.GlobalLevel()
}

func write(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	ev.Fields(normalize(fields)).Msg(msg)
}

// normalize drops a dangling key so zerolog does not misalign pairs, and
// embeds structured errors (anywhere in the chain) as objects.
func normalize(fields []any) []interface{} {
	n := len(fields) - len(fields)%2
	out := make([]interface{}, 0, n)
	for i := 0; i < n; i += 2 {
		v := fields[i+1]
		if err, ok := v.(error); ok {
			var m zerolog.LogObjectMarshaler
			if errors.As(err, &m) {
				v = objectWithMessage{LogObjectMarshaler: m, message: err.Error()}
			}
		}
		out = append(out, fields[i], v)
	}
	return out
}

// objectWithMessage keeps the error text alongside the structured fields.
type objectWithMessage struct {
	zerolog.LogObjectMarshaler
	message string
}

func (o objectWithMessage) MarshalZerologObject(e *zerolog.Event) {
	e.Str("message", o.message)
	o.LogObjectMarshaler.MarshalZerologObject(e)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
