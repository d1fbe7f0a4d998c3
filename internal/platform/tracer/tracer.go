package tracer

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const exporterSetupTimeout = 10 * time.Second

// InitTracer installs a global tracer provider. Without an OTLP endpoint it
// returns a provider with no exporter so spans are created and dropped.
func InitTracer(ctx context.Context, serviceName, otlpEndpoint string, log logger.Logger) (*sdktrace.TracerProvider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if otlpEndpoint == "" {
		log.Info("OpenTelemetry tracing is disabled: OTLP endpoint is not set")
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, nil
	}

	log.Infof("Initializing OpenTelemetry tracer: service=%s endpoint=%s", serviceName, otlpEndpoint)

	setupCtx, cancel := context.WithTimeout(ctx, exporterSetupTimeout)
	defer cancel()

	exporter, err := otlptracegrpc.New(setupCtx,
		otlptracegrpc.WithEndpoint(otlpEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		_ = exporter.Shutdown(setupCtx)
		return nil, fmt.Errorf("failed to create OpenTelemetry resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Infof("OpenTelemetry tracer initialized for %s", serviceName)
	return tp, nil
}
