// Package otelx builds OpenTelemetry tracer and meter providers from configuration.
package otelx

import (
	"context"
	"io"
	"os"

	"github.com/clinia/apix/loggerx"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	logger     *loggerx.Logger
	writer     io.Writer
	registerer prometheus.Registerer
}

type Option func(*options)

func WithLogger(l *loggerx.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithWriter sets the destination of the stdout providers.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithRegisterer sets the registry the prometheus provider registers its collector on.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

type Providers struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	Propagator     propagation.TextMapPropagator

	shutdowns []func(context.Context) error
}

// New creates the providers described by c. Shutdown must be called to flush pending telemetry.
func New(ctx context.Context, c *Config, opts ...Option) (*Providers, error) {
	o := &options{
		logger:     loggerx.Default(),
		writer:     os.Stdout,
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(o)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(c.ServiceName))

	p := &Providers{
		Propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}

	tp, err := p.setupTracing(ctx, c, o, res)
	if err != nil {
		return nil, err
	}
	p.TracerProvider = tp

	mp, err := p.setupMetrics(ctx, c, o, res)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	p.MeterProvider = mp

	return p, nil
}

// SetGlobal registers the providers and the propagator as the otel globals.
func (p *Providers) SetGlobal() {
	otel.SetTracerProvider(p.TracerProvider)
	otel.SetMeterProvider(p.MeterProvider)
	otel.SetTextMapPropagator(p.Propagator)
}

// Shutdown flushes and stops every provider created by New.
func (p *Providers) Shutdown(ctx context.Context) error {
	var firstErr error
	for i := len(p.shutdowns) - 1; i >= 0; i-- {
		if err := p.shutdowns[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.shutdowns = nil
	return firstErr
}
