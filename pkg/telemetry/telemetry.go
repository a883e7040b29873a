// Package telemetry installs the process-wide OpenTelemetry tracer provider
// and the W3C trace context propagator used by outgoing backend calls.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"ellavera-site/pkg/logger"
)

type Options struct {
	// Endpoint is the OTLP gRPC collector address. Empty keeps spans in
	// process: trace ids are still generated and propagated to the backend.
	Endpoint    string
	ServiceName string
}

// ShutdownFunc flushes pending spans and closes the exporter.
type ShutdownFunc func(context.Context) error

// Init installs a tracer provider and the trace context propagator.
func Init(ctx context.Context, opts Options) (ShutdownFunc, error) {
	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "ellavera-site"
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(semconv.ServiceName(serviceName))),
	}

	var conn *grpc.ClientConn
	if opts.Endpoint != "" {
		var err error
		conn, err = grpc.NewClient(opts.Endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
		}

		exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if opts.Endpoint != "" {
		logger.Info("OpenTelemetry tracing enabled", map[string]interface{}{"endpoint": opts.Endpoint, "service": serviceName})
	} else {
		logger.Debug("OpenTelemetry exporter not configured, spans stay in process", map[string]interface{}{"service": serviceName})
	}

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if conn != nil {
			if closeErr := conn.Close(); err == nil {
				err = closeErr
			}
		}
		return err
	}, nil
}
