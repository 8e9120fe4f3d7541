package otelx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/clinia/apix/errorx"
	loggerxtest "github.com/clinia/apix/loggerx/test"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("should return noop providers without configuration", func(t *testing.T) {
		p, err := New(ctx, &Config{}, WithLogger(loggerxtest.NewTestLogger(t)))
		require.NoError(t, err)

		_, span := p.TracerProvider.Tracer("test").Start(ctx, "noop")
		assert.False(t, span.SpanContext().IsValid())
		span.End()
		assert.NoError(t, p.Shutdown(ctx))
	})

	t.Run("should export spans and metrics to the writer", func(t *testing.T) {
		var buf bytes.Buffer
		p, err := New(ctx, &Config{
			ServiceName: "apix-test",
			Tracing:     TracingConfig{Provider: ProviderStdout},
			Metrics:     MetricsConfig{Provider: ProviderStdout},
		}, WithWriter(&buf), WithLogger(loggerxtest.NewTestLogger(t)))
		require.NoError(t, err)
		assert.IsType(t, &sdktrace.TracerProvider{}, p.TracerProvider)
		assert.IsType(t, &sdkmetric.MeterProvider{}, p.MeterProvider)

		_, span := p.TracerProvider.Tracer("test").Start(ctx, "exported-span")
		span.End()
		counter, err := p.MeterProvider.Meter("test").Int64Counter("exported.counter")
		require.NoError(t, err)
		counter.Add(ctx, 1)

		require.NoError(t, p.Shutdown(ctx))
		assert.Contains(t, buf.String(), "exported-span")
		assert.Contains(t, buf.String(), "exported.counter")
		assert.Contains(t, buf.String(), "apix-test")
	})

	t.Run("should sample according to the ratio", func(t *testing.T) {
		var buf bytes.Buffer
		ratio := 0.0
		p, err := New(ctx, &Config{Tracing: TracingConfig{Provider: ProviderStdout, SamplingRatio: &ratio}}, WithWriter(&buf), WithLogger(loggerxtest.NewTestLogger(t)))
		require.NoError(t, err)

		_, span := p.TracerProvider.Tracer("test").Start(ctx, "dropped-span")
		assert.False(t, span.SpanContext().IsSampled())
		span.End()

		require.NoError(t, p.Shutdown(ctx))
		assert.NotContains(t, buf.String(), "dropped-span")
	})

	t.Run("should register a prometheus collector", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		p, err := New(ctx, &Config{Metrics: MetricsConfig{Provider: ProviderPrometheus}}, WithRegisterer(reg), WithLogger(loggerxtest.NewTestLogger(t)))
		require.NoError(t, err)
		t.Cleanup(func() { _ = p.Shutdown(ctx) })

		counter, err := p.MeterProvider.Meter("test").Int64Counter("scraped.counter")
		require.NoError(t, err)
		counter.Add(ctx, 2)

		families, err := reg.Gather()
		require.NoError(t, err)
		found := false
		for _, f := range families {
			if strings.HasPrefix(f.GetName(), "scraped_counter") {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("should reject unknown providers", func(t *testing.T) {
		_, err := New(ctx, &Config{Tracing: TracingConfig{Provider: "jaeger"}}, WithLogger(loggerxtest.NewTestLogger(t)))
		assert.True(t, errorx.IsInvalidArgumentError(err))

		_, err = New(ctx, &Config{Metrics: MetricsConfig{Provider: "statsd"}}, WithLogger(loggerxtest.NewTestLogger(t)))
		assert.True(t, errorx.IsInvalidArgumentError(err))

		_, err = New(ctx, &Config{Tracing: TracingConfig{Provider: ProviderOTLP, OTLP: OTLPConfig{Protocol: "udp"}}}, WithLogger(loggerxtest.NewTestLogger(t)))
		assert.True(t, errorx.IsInvalidArgumentError(err))
	})

	t.Run("should create otlp exporters lazily", func(t *testing.T) {
		p, err := New(ctx, &Config{
			Tracing: TracingConfig{Provider: ProviderOTLP, OTLP: OTLPConfig{Protocol: ProtocolGRPC, ServerURL: "localhost:4317", Insecure: true}},
			Metrics: MetricsConfig{Provider: ProviderOTLP, OTLP: OTLPConfig{ServerURL: "localhost:4318", Insecure: true}},
		}, WithLogger(loggerxtest.NewTestLogger(t)))
		require.NoError(t, err)

		shutdownCtx, cancel := context.WithCancel(ctx)
		cancel()
		_ = p.Shutdown(shutdownCtx)
	})
}

func TestProviders_SetGlobal(t *testing.T) {
	prevTP, prevMP, prevProp := otel.GetTracerProvider(), otel.GetMeterProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
		otel.SetTextMapPropagator(prevProp)
	})

	sp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = sp.Shutdown(context.Background()) })
	p := &Providers{TracerProvider: sp, MeterProvider: sdkmetric.NewMeterProvider(), Propagator: propagation.TraceContext{}}
	p.SetGlobal()

	ctx, span := otel.Tracer("test").Start(context.Background(), "global")
	defer span.End()
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	assert.NotEmpty(t, carrier.Get("traceparent"))
}
