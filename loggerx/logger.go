package loggerx

import (
	"context"
	"log/slog"

	internaltracex "github.com/clinia/apix/internal/tracex"
	"github.com/clinia/apix/slogx"
	slogctx "github.com/veqryn/slog-context"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Logger struct {
	*slog.Logger
}

type options struct {
	prependers []slogctx.AttrExtractor
	appenders  []slogctx.AttrExtractor
}

type Option func(*options)

// WithRequestID appends the request id stored in the context under ctxKey to every record.
func WithRequestID(ctxKey interface{}, fieldKey string) Option {
	return func(o *options) {
		o.appenders = append(o.appenders, slogx.NewRequestIDExtractor(ctxKey, fieldKey))
	}
}

// WithAppenders adds custom context extractors whose attributes are appended to every record.
func WithAppenders(extractors ...slogctx.AttrExtractor) Option {
	return func(o *options) {
		o.appenders = append(o.appenders, extractors...)
	}
}

// New wraps handler so that attributes carried by the record context end up in the output.
func New(handler slog.Handler, opts ...Option) *Logger {
	o := &options{
		prependers: []slogctx.AttrExtractor{slogctx.ExtractPrepended},
		appenders:  []slogctx.AttrExtractor{slogctx.ExtractAppended},
	}
	for _, opt := range opts {
		opt(o)
	}

	h := slogctx.NewHandler(handler, &slogctx.HandlerOptions{
		Prependers: o.prependers,
		Appenders:  o.appenders,
	})
	return &Logger{slog.New(h)}
}

// Default returns a Logger backed by slog.Default().
func Default() *Logger {
	return &Logger{slog.Default()}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{l.Logger.With(slogx.ErrorAttr(err))}
}

func (l *Logger) WithStackTrace() *Logger {
	stackTrace := internaltracex.GetStackTrace(3)
	return l.WithFields(semconv.ExceptionStacktrace(stackTrace))
}

// WithAttrs attaches raw slog attributes, for values that do not fit an attribute.KeyValue.
func (l *Logger) WithAttrs(attrs ...slog.Attr) *Logger {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return &Logger{l.Logger.With(args...)}
}

func (l *Logger) Error(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, slog.LevelError, msg, slogx.NewLogFields(kvs...)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, slog.LevelWarn, msg, slogx.NewLogFields(kvs...)...)
}

func (l *Logger) Info(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, slog.LevelInfo, msg, slogx.NewLogFields(kvs...)...)
}

func (l *Logger) Debug(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, slog.LevelDebug, msg, slogx.NewLogFields(kvs...)...)
}

func (l *Logger) WithFields(kvs ...attribute.KeyValue) *Logger {
	return l.WithAttrs(slogx.NewLogFields(kvs...)...)
}
