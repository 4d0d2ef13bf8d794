package logging

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

func TestNewLoggerVerbosity(t *testing.T) {
	logger := NewLogger(DEFAULT, false)
	if !logger.V(DEFAULT).Enabled() {
		t.Error("expected DEFAULT to be enabled")
	}
	if logger.V(VERBOSE).Enabled() {
		t.Error("expected VERBOSE to be disabled at DEFAULT verbosity")
	}

	logger = NewLogger(TRACE, true)
	if !logger.V(TRACE).Enabled() {
		t.Error("expected TRACE to be enabled")
	}
}

func TestNewTestLoggerIntoContext(t *testing.T) {
	ctx := NewTestLoggerIntoContext(context.Background())
	if _, err := logr.FromContext(ctx); err != nil {
		t.Fatalf("expected a logger in context: %v", err)
	}
}

func TestFatalLogsAndExits(t *testing.T) {
	var logged []string
	logger := funcr.New(func(prefix, args string) { logged = append(logged, args) }, funcr.Options{})

	code := -1
	fatal(logger, func(c int) { code = c }, errors.New("store missing"), "Command failed", "command", "run")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if len(logged) != 1 || !strings.Contains(logged[0], `"msg"="Command failed"`) || !strings.Contains(logged[0], `"error"="store missing"`) {
		t.Errorf("unexpected log output: %q", logged)
	}
}

func TestFatalFlushesZapLogger(t *testing.T) {
	code := -1
	fatal(NewLogger(DEFAULT, false), func(c int) { code = c }, errors.New("boom"), "Command failed")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
