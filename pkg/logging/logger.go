package logging

import (
	"context"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DEFAULT = 2
	VERBOSE = 3
	DEBUG   = 4
	TRACE   = 5
)

// NewLogger builds a zap-backed logger that emits V(n) lines for n up to
// verbosity.
func NewLogger(verbosity int, development bool) logr.Logger {
	cfg := uberzap.NewProductionConfig()
	if development {
		cfg = uberzap.NewDevelopmentConfig()
	}
	cfg.Level = uberzap.NewAtomicLevelAt(zapcore.Level(int8(-1 * verbosity)))
	cfg.DisableStacktrace = !development
	z, err := cfg.Build(uberzap.AddCaller())
	if err != nil {
		return zapr.NewLogger(uberzap.NewNop())
	}
	return zapr.NewLogger(z)
}

// NewTestLogger creates a new Zap logger using the dev mode.
func NewTestLogger() logr.Logger {
	return NewLogger(TRACE, true)
}

// NewTestLoggerIntoContext creates a new Zap logger using the dev mode and inserts it into the given context.
func NewTestLoggerIntoContext(ctx context.Context) context.Context {
	return logr.NewContext(ctx, NewTestLogger())
}

// Fatal logs err at error level, flushes the zap core behind logger if there
// is one, and exits with status 1.
func Fatal(logger logr.Logger, err error, msg string, keysAndValues ...interface{}) {
	fatal(logger, os.Exit, err, msg, keysAndValues...)
}

func fatal(logger logr.Logger, exitFn func(int), err error, msg string, keysAndValues ...interface{}) {
	logger.Error(err, msg, keysAndValues...)
	if u, ok := logger.GetSink().(zapr.Underlier); ok {
		_ = u.GetUnderlying().Sync()
	}
	exitFn(1)
}
