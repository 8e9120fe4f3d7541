package loggerxtest

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/clinia/apix/loggerx"
	"github.com/clinia/apix/testx"
)

func NewTestLogger(t testing.TB) *loggerx.Logger {
	t.Helper()
	return &loggerx.Logger{Logger: slog.New(slog.DiscardHandler)}
}

func NewTestLoggerWithJSONBuffer(t testing.TB) (*loggerx.Logger, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	return loggerx.New(slog.NewJSONHandler(buf, nil)), buf
}

func NewTestLoggerWithTextBuffer(t testing.TB) (*loggerx.Logger, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	return loggerx.New(slog.NewTextHandler(buf, nil)), buf
}

// NewTestLoggerWithConcurrentBuffer is safe to use when the logger is shared between goroutines.
func NewTestLoggerWithConcurrentBuffer(t testing.TB) (*loggerx.Logger, *testx.ConcurrentBuffer) {
	t.Helper()
	buf := testx.NewConcurrentBuffer(t)
	return loggerx.New(slog.NewJSONHandler(buf, nil)), buf
}
