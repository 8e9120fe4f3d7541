package tracex

import (
	"context"

	internaltracex "github.com/clinia/apix/internal/tracex"
	"github.com/clinia/apix/loggerx"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// RecoverWithStackTrace recovers from a panic and logs the message with a stack trace.
// It should only be used as a defer statement at the beginning of a function.
// i.e. defer tracex.RecoverWithStackTrace(ctx, l, "panic while handling messages")
func RecoverWithStackTrace(ctx context.Context, l *loggerx.Logger, msg string) {
	// We don't want the recoverer itself to panic - that would be a shame.
	defer func() {
		_ = recover()
	}()

	if r := recover(); r != nil {
		if l == nil {
			return
		}
		l.Error(ctx, msg, StackTraceAttrs(r)...)
	}
}

// RecoverToError is RecoverWithStackTrace for functions returning an error: the panic is logged
// and handed to onPanic, which typically assigns a named return value.
// i.e. defer tracex.RecoverToError(ctx, l, "panic in callback", func(r any) { err = ... })
func RecoverToError(ctx context.Context, l *loggerx.Logger, msg string, onPanic func(recovered any)) {
	if r := recover(); r != nil {
		if l != nil {
			l.Error(ctx, msg, StackTraceAttrs(r)...)
		}
		onPanic(r)
	}
}

func StackTraceAttrs(recovered any) []attribute.KeyValue {
	out := []attribute.KeyValue{}
	if recovered == nil {
		return out
	}
	stackTrace := internaltracex.GetStackTrace(3)
	out = append(out, semconv.ExceptionStacktrace(stackTrace))
	out = append(out, semconv.ExceptionMessage(PanicMessage(recovered)))

	return out
}

// PanicMessage renders a recovered value as text.
func PanicMessage(recovered any) string {
	switch v := recovered.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return "unknown panic"
	}
}

// GetStackTrace returns the stack trace of the caller.
func GetStackTrace() string {
	return internaltracex.GetStackTrace(3)
}
