package otelx

import (
	"context"

	"github.com/clinia/apix/errorx"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

func (p *Providers) setupMetrics(ctx context.Context, c *Config, o *options, res *resource.Resource) (metric.MeterProvider, error) {
	var reader sdkmetric.Reader

	switch c.Metrics.Provider {
	case ProviderNone:
		o.logger.Info(ctx, "missing metrics provider in config, skipping metrics setup")
		return noop.NewMeterProvider(), nil
	case ProviderStdout:
		opts := []stdoutmetric.Option{stdoutmetric.WithWriter(o.writer)}
		if c.Metrics.Stdout.Pretty {
			opts = append(opts, stdoutmetric.WithPrettyPrint())
		}
		exp, err := stdoutmetric.New(opts...)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		reader = sdkmetric.NewPeriodicReader(exp)
	case ProviderOTLP:
		exp, err := newOTLPMetricExporter(ctx, c.Metrics.OTLP)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		reader = sdkmetric.NewPeriodicReader(exp)
	case ProviderPrometheus:
		exp, err := prometheus.New(prometheus.WithRegisterer(o.registerer))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		reader = exp
	default:
		return nil, errorx.InvalidArgumentErrorf("unknown metrics provider %q", c.Metrics.Provider)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	p.shutdowns = append(p.shutdowns, mp.Shutdown)
	o.logger.Info(ctx, "meter configured", attribute.String("provider", c.Metrics.Provider))
	return mp, nil
}

func newOTLPMetricExporter(ctx context.Context, c OTLPConfig) (sdkmetric.Exporter, error) {
	switch c.Protocol {
	case "", ProtocolHTTP:
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(c.ServerURL)}
		if c.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	case ProtocolGRPC:
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(c.ServerURL)}
		if c.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		return otlpmetricgrpc.New(ctx, opts...)
	default:
		return nil, errorx.InvalidArgumentErrorf("unknown otlp protocol %q", c.Protocol)
	}
}
