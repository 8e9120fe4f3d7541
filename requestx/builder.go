// Package requestx builds and executes a single HTTP request whose query, body and
// response can each be validated against a schema.
//
//	user, err := requestx.Create("https://api.clinia.dev").
//		ConcatPath("v1").
//		ConcatPath("users").
//		Method(http.MethodPost).
//		Body(payload).
//		BodySchema(schemax.Struct[CreateUser]()).
//		ResponseSchema(userSchema).
//		AsyncOptionsSetter(withFreshToken).
//		Exec(ctx)
//
// Every configuration method mutates the builder and returns it. Nothing is validated and no
// I/O happens before Exec.
package requestx

import (
	"context"
	"net/http"
	"time"

	"github.com/clinia/apix/errorx"
	"github.com/clinia/apix/loggerx"
	"github.com/clinia/apix/otelx"
	"github.com/clinia/apix/schemax"
	"github.com/clinia/apix/tracex"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	componentName = "requestx.Builder"

	ValidationFailuresMetricName = "requestx.validation.failures"
)

// Builder accumulates the configuration of a request template. It is not safe to configure a
// Builder while Exec runs on it, concurrent Exec calls are fine.
type Builder struct {
	options Options

	querySchema    schemax.Schema
	bodySchema     schemax.Schema
	responseSchema schemax.Schema

	asyncOptionsSetter AsyncOptionsSetter

	requestValidationErrorHandler  ErrorHandler
	responseValidationErrorHandler ErrorHandler

	transport      Transport
	logger         *loggerx.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Create starts a request template on host. Requests go through DefaultHTTPTransport
// unless Transport is called.
func Create(host string) *Builder {
	return &Builder{
		options:        Options{URL: host},
		transport:      DefaultHTTPTransport(),
		logger:         loggerx.Default(),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
}

// ConcatPath appends "/" + segment to the url. The segment is used verbatim.
func (b *Builder) ConcatPath(segment string) *Builder {
	b.options.URL = b.options.URL + "/" + segment
	return b
}

func (b *Builder) Method(verb string) *Builder {
	b.options.Method = verb
	return b
}

// Options merges partial into the request description, see Options.Merge for the
// top-level-only semantics.
func (b *Builder) Options(partial Options) *Builder {
	b.options = b.options.Merge(partial)
	return b
}

// Header sets a single header, keeping the others.
func (b *Builder) Header(key, value string) *Builder {
	h := b.options.Headers.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set(key, value)
	b.options.Headers = h
	return b
}

func (b *Builder) Timeout(d time.Duration) *Builder {
	b.options.Timeout = d
	return b
}

func (b *Builder) Query(v any) *Builder {
	b.options.Params = v
	return b
}

func (b *Builder) Body(v any) *Builder {
	b.options.Data = v
	return b
}

func (b *Builder) QuerySchema(s schemax.Schema) *Builder {
	b.querySchema = s
	return b
}

func (b *Builder) BodySchema(s schemax.Schema) *Builder {
	b.bodySchema = s
	return b
}

// ResponseSchema validates and normalizes the response. Use ExecAs to get a typed result.
func (b *Builder) ResponseSchema(s schemax.Schema) *Builder {
	b.responseSchema = s
	return b
}

func (b *Builder) AsyncOptionsSetter(fn AsyncOptionsSetter) *Builder {
	b.asyncOptionsSetter = fn
	return b
}

// HandleRequestValidationError replaces the default handler for rejected queries and bodies.
func (b *Builder) HandleRequestValidationError(fn ErrorHandler) *Builder {
	b.requestValidationErrorHandler = fn
	return b
}

// HandleResponseValidationError replaces the default handler for rejected responses.
func (b *Builder) HandleResponseValidationError(fn ErrorHandler) *Builder {
	b.responseValidationErrorHandler = fn
	return b
}

func (b *Builder) Transport(t Transport) *Builder {
	b.transport = t
	return b
}

func (b *Builder) Logger(l *loggerx.Logger) *Builder {
	if l == nil {
		l = loggerx.Default()
	}
	b.logger = l
	return b
}

func (b *Builder) TracerProvider(tp trace.TracerProvider) *Builder {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	b.tracerProvider = tp
	return b
}

func (b *Builder) MeterProvider(mp metric.MeterProvider) *Builder {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	b.meterProvider = mp
	return b
}

// Telemetry uses the tracer and meter providers of p. A nil p falls back to the global providers.
func (b *Builder) Telemetry(p *otelx.Providers) *Builder {
	if p == nil {
		return b.TracerProvider(nil).MeterProvider(nil)
	}
	return b.TracerProvider(p.TracerProvider).MeterProvider(p.MeterProvider)
}

// RequestOptions returns the current request description.
func (b *Builder) RequestOptions() Options {
	return b.options
}

// Exec performs the request. Validation errors are handed to the configured handler and
// Exec returns whatever the handler returns. Any other error is returned unchanged.
func (b *Builder) Exec(ctx context.Context) (any, error) {
	ctx, span, l := tracex.Instrument(ctx, b.logger, b.tracerProvider, componentName, "Exec",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(requestAttributes(b.options)...),
	)
	defer span.End()

	result, err := Execute(ctx, b.options, b.tracedAsyncOptionsSetter(span, l), Schemas{
		Query:    b.querySchema,
		Body:     b.bodySchema,
		Response: b.responseSchema,
	}, b.transport)
	if err == nil {
		return result, nil
	}

	verr, ok := AsValidationError(err)
	if !ok {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	b.recordValidationFailure(ctx, span, verr)

	switch verr.Kind {
	case KindRequestValidation:
		return b.handlerFor(b.requestValidationErrorHandler, l)(ctx, verr)
	case KindResponseValidation:
		return b.handlerFor(b.responseValidationErrorHandler, l)(ctx, verr)
	default:
		return nil, err
	}
}

func (b *Builder) handlerFor(h ErrorHandler, l *loggerx.Logger) ErrorHandler {
	if h != nil {
		return h
	}
	return DefaultValidationErrorHandler(l)
}

// tracedAsyncOptionsSetter updates the span with the options Execute ends up sending.
func (b *Builder) tracedAsyncOptionsSetter(span trace.Span, l *loggerx.Logger) AsyncOptionsSetter {
	setter := b.safeAsyncOptionsSetter(l)
	if setter == nil {
		return nil
	}
	base := b.options
	return func(ctx context.Context) (Options, error) {
		async, err := setter(ctx)
		if err == nil {
			span.SetAttributes(requestAttributes(base.Merge(async))...)
		}
		return async, err
	}
}

func requestAttributes(opts Options) []attribute.KeyValue {
	return []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(opts.methodOrDefault()),
		semconv.URLFull(opts.URL),
	}
}

// safeAsyncOptionsSetter turns a panicking setter into an INTERNAL error.
func (b *Builder) safeAsyncOptionsSetter(l *loggerx.Logger) AsyncOptionsSetter {
	if b.asyncOptionsSetter == nil {
		return nil
	}
	setter := b.asyncOptionsSetter
	return func(ctx context.Context) (opts Options, err error) {
		defer tracex.RecoverToError(ctx, l, "async options setter panicked", func(recovered any) {
			opts = Options{}
			err = errorx.InternalErrorf("async options setter panicked: %s", tracex.PanicMessage(recovered))
		})
		return setter(ctx)
	}
}

func (b *Builder) recordValidationFailure(ctx context.Context, span trace.Span, verr *ValidationError) {
	kind := attribute.String("validation.kind", verr.Kind.String())
	span.RecordError(verr, trace.WithAttributes(kind, attribute.String("validation.item", string(verr.Item))))
	span.SetStatus(codes.Error, verr.Name())

	counter, err := b.meterProvider.Meter(tracex.InstrumentationName).Int64Counter(
		ValidationFailuresMetricName,
		metric.WithDescription("Number of requests or responses rejected by a schema."),
	)
	if err != nil {
		b.logger.WithError(err).Warn(ctx, "unable to create validation failures counter")
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(kind))
}
