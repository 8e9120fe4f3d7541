package loggerx_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/clinia/apix/loggerx"
	loggerxtest "github.com/clinia/apix/loggerx/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	slogctx "github.com/veqryn/slog-context"
	"go.opentelemetry.io/otel/attribute"
)

type requestIDKey struct{}

func TestLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("should log fields and errors", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithJSONBuffer(t)

		l.WithError(errors.New("boom")).WithFields(attribute.String("component", "test")).Warn(ctx, "careful", attribute.Int("attempt", 2))

		out := buf.String()
		require.True(t, gjson.Valid(out))
		assert.Equal(t, "WARN", gjson.Get(out, "level").String())
		assert.Equal(t, "careful", gjson.Get(out, "msg").String())
		assert.Equal(t, "boom", gjson.Get(out, "error").String())
		assert.Equal(t, "test", gjson.Get(out, "component").String())
		assert.Equal(t, int64(2), gjson.Get(out, "attempt").Int())
	})

	t.Run("should attach a stack trace", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithJSONBuffer(t)

		l.WithStackTrace().Error(ctx, "failed")

		assert.Contains(t, gjson.Get(buf.String(), `exception\.stacktrace`).String(), "logger_test.go")
	})

	t.Run("should add context attributes", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithTextBuffer(t)

		ctx := slogctx.Append(ctx, "tenant", "clinia")
		l.Info(ctx, "hello")

		assert.Contains(t, buf.String(), "tenant=clinia")
	})

	t.Run("should add the request id from the context", func(t *testing.T) {
		var out bytes.Buffer
		l := loggerx.New(slog.NewJSONHandler(&out, nil), loggerx.WithRequestID(requestIDKey{}, "request_id"))

		l.Info(context.WithValue(ctx, requestIDKey{}, "r1"), "hello")

		assert.Equal(t, "r1", gjson.Get(out.String(), "request_id").String())
	})

	t.Run("should skip records below the handler level", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithJSONBuffer(t)

		l.Debug(ctx, "hidden")

		assert.Empty(t, buf.String())
	})

	t.Run("should log raw slog attributes", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithJSONBuffer(t)

		l.WithAttrs(slog.Group("http", slog.Int("status", 200))).Info(ctx, "done")

		assert.Equal(t, int64(200), gjson.Get(buf.String(), "http.status").Int())
	})
}
