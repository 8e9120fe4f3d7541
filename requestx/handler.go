package requestx

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clinia/apix/loggerx"
	"github.com/clinia/apix/slogx"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ErrorHandler receives validation errors caught by Builder.Exec. Whatever it returns is
// what Exec returns: a fallback value with a nil error swallows the failure.
type ErrorHandler func(ctx context.Context, err *ValidationError) (any, error)

// DefaultValidationErrorHandler logs a diagnostic of the failure and returns the error unchanged.
func DefaultValidationErrorHandler(l *loggerx.Logger) ErrorHandler {
	if l == nil {
		l = loggerx.Default()
	}
	return func(ctx context.Context, err *ValidationError) (any, error) {
		l.WithAttrs(slogx.RedactHeaders(err.Metadata.RequestOptions.Headers)).
			Error(ctx, FormatValidationError(err), DiagnosticAttributes(err)...)
		return nil, err
	}
}

// DiagnosticAttributes describes the request that failed validation.
func DiagnosticAttributes(err *ValidationError) []attribute.KeyValue {
	opts := err.Metadata.RequestOptions
	return []attribute.KeyValue{
		attribute.String("validation.kind", err.Kind.String()),
		attribute.String("validation.item", string(err.Item)),
		attribute.String("validation.issues", serialize(err.Issues)),
		semconv.HTTPRequestMethodKey.String(opts.methodOrDefault()),
		semconv.URLFull(opts.URL),
		attribute.String("http.request.timeout", opts.Timeout.String()),
		attribute.String("http.request.body", serialize(opts.Data)),
		attribute.String("url.query", serialize(opts.Params)),
	}
}

// FormatValidationError renders a human readable, multi-line diagnostic.
func FormatValidationError(err *ValidationError) string {
	opts := err.Metadata.RequestOptions

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", err.Name(), err.Message)
	if err.Item != "" {
		fmt.Fprintf(&sb, "  item: %s\n", err.Item)
	}
	fmt.Fprintf(&sb, "  method: %s\n", opts.methodOrDefault())
	fmt.Fprintf(&sb, "  url: %s\n", opts.URL)
	fmt.Fprintf(&sb, "  timeout: %s\n", opts.Timeout)
	fmt.Fprintf(&sb, "  body: %s\n", serialize(opts.Data))
	fmt.Fprintf(&sb, "  query: %s\n", serialize(opts.Params))
	if err.Kind == KindResponseValidation {
		fmt.Fprintf(&sb, "  response: %s\n", serialize(err.Metadata.Response))
	}
	sb.WriteString("  issues:")
	if len(err.Issues) == 0 {
		sb.WriteString(" []")
	}
	for _, issue := range err.Issues {
		fmt.Fprintf(&sb, "\n    - %s", issue)
	}
	return sb.String()
}

func serialize(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
