package otelx

import (
	"context"

	"github.com/clinia/apix/errorx"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func (p *Providers) setupTracing(ctx context.Context, c *Config, o *options, res *resource.Resource) (trace.TracerProvider, error) {
	var (
		exp sdktrace.SpanExporter
		err error
	)

	switch c.Tracing.Provider {
	case ProviderNone:
		o.logger.Info(ctx, "missing tracing provider in config, skipping tracing setup")
		return noop.NewTracerProvider(), nil
	case ProviderStdout:
		opts := []stdouttrace.Option{stdouttrace.WithWriter(o.writer)}
		if c.Tracing.Stdout.Pretty {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exp, err = stdouttrace.New(opts...)
	case ProviderOTLP:
		exp, err = newOTLPSpanExporter(ctx, c.Tracing.OTLP)
	default:
		return nil, errorx.InvalidArgumentErrorf("unknown tracing provider %q", c.Tracing.Provider)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sampler := sdktrace.AlwaysSample()
	if c.Tracing.SamplingRatio != nil {
		sampler = sdktrace.TraceIDRatioBased(*c.Tracing.SamplingRatio)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
	)
	p.shutdowns = append(p.shutdowns, tp.Shutdown)
	o.logger.Info(ctx, "tracer configured", attribute.String("provider", c.Tracing.Provider))
	return tp, nil
}

func newOTLPSpanExporter(ctx context.Context, c OTLPConfig) (sdktrace.SpanExporter, error) {
	switch c.Protocol {
	case "", ProtocolHTTP:
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(c.ServerURL)}
		if c.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	case ProtocolGRPC:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(c.ServerURL)}
		if c.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)
	default:
		return nil, errorx.InvalidArgumentErrorf("unknown otlp protocol %q", c.Protocol)
	}
}
