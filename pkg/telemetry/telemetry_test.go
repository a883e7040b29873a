package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInitWithoutEndpointRecordsSpans(t *testing.T) {
	shutdown, err := Init(context.Background(), Options{})
	if err != nil {
		t.Fatalf("expected in-process tracing, got error: %v", err)
	}

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "work")
	if !span.SpanContext().IsValid() {
		t.Fatalf("expected a valid span context")
	}
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}
