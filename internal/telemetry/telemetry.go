// Package telemetry installs the global OpenTelemetry tracer provider used
// by the scraper's spans.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dorm-menu-csv/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Telemetry owns the installed provider. The zero value is a disabled
// setup whose Shutdown does nothing.
type Telemetry struct {
	TracerProvider *trace.TracerProvider
}

// Shutdown flushes buffered spans and stops the exporter.
func (t Telemetry) Shutdown(ctx context.Context) error {
	if t.TracerProvider == nil {
		return nil
	}
	return t.TracerProvider.Shutdown(ctx)
}

// Setup exports spans over OTLP/HTTP to cfg.Endpoint and installs the
// provider globally. With no endpoint the global provider is left alone.
func Setup(ctx context.Context, serviceName string, cfg config.Tracing) (Telemetry, error) {
	if cfg.Endpoint == "" {
		return Telemetry{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return Telemetry{}, fmt.Errorf("telemetry resource: %w", err)
	}

	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
		otlptracehttp.WithHeaders(cfg.Headers),
	)
	if err != nil {
		return Telemetry{}, fmt.Errorf("trace exporter: %w", err)
	}
	slog.Debug(
		"tracer export initialized",
		"type", "http",
		"endpoint", cfg.Endpoint,
		"headers", len(cfg.Headers) > 0,
	)

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	)
	otel.SetTracerProvider(tracerProvider)

	return Telemetry{TracerProvider: tracerProvider}, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}
