package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ProtocolHttp = "http"
	ProtocolGrpc = "grpc"
)

// Endpoint is where one signal (traces or metrics) is exported to, an
// empty Url disables the signal.
type Endpoint struct {
	Url      string            `json:"url"`
	Protocol string            `json:"protocol"`
	Headers  map[string]string `json:"headers"`
}

func (e Endpoint) Enabled() bool {
	return e.Url != ""
}

type Config struct {
	Traces  Endpoint `json:"traces"`
	Metrics Endpoint `json:"metrics"`
	// extra resource attributes, eg. "deployment.environment"
	Attributes            map[string]string `json:"attributes"`
	MetricIntervalSeconds int               `json:"metric_interval_seconds"`
}

var defaultConfig = Config{
	Traces:                Endpoint{Protocol: ProtocolHttp},
	Metrics:               Endpoint{Protocol: ProtocolHttp},
	MetricIntervalSeconds: 5,
}

func (c Config) Enabled() bool {
	return c.Traces.Enabled() || c.Metrics.Enabled()
}

func (c Config) validate() error {
	for name, e := range map[string]Endpoint{"traces": c.Traces, "metrics": c.Metrics} {
		if !e.Enabled() {
			continue
		}
		if e.Protocol != ProtocolHttp && e.Protocol != ProtocolGrpc {
			return fmt.Errorf("%s: unknown otlp protocol %q", name, e.Protocol)
		}
	}
	return nil
}

func newResource(serviceName string, cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(serviceName)}
	for k, v := range cfg.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, attrs...),
	)
}

func newSpanExporter(ctx context.Context, e Endpoint) (trace.SpanExporter, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	slog.DebugContext(ctx, "span exporter", "protocol", e.Protocol, "url", e.Url, "headers", len(e.Headers) > 0)
	if e.Protocol == ProtocolGrpc {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(e.Url),
			otlptracegrpc.WithHeaders(e.Headers),
		)
	}
	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(e.Url),
		otlptracehttp.WithHeaders(e.Headers),
	)
}

func newMetricExporter(ctx context.Context, e Endpoint) (metric.Exporter, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	slog.DebugContext(ctx, "metric exporter", "protocol", e.Protocol, "url", e.Url, "headers", len(e.Headers) > 0)
	if e.Protocol == ProtocolGrpc {
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(e.Url),
			otlpmetricgrpc.WithHeaders(e.Headers),
		)
	}
	return otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpointURL(e.Url),
		otlpmetrichttp.WithHeaders(e.Headers),
	)
}
