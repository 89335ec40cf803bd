package tracing

import (
	"context"

	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("pachsite-backend")

// HoneycombSetup configures the OpenTelemetry SDK to export to honeycomb.
// Exporter settings come from the standard OTEL_* and HONEYCOMB_* env vars.
// When disabled, a no-op shutdown func is returned and the global no-op tracer stays in place.
func HoneycombSetup(enabled bool) (func(), error) {
	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	bsp := honeycomb.NewBaggageSpanProcessor()
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithSpanProcessor(bsp),
	)
	if err != nil {
		return nil, err
	}

	log.Infoln("honeycomb tracing set up")
	return otelShutdown, nil
}

// Start opens a span on the global tracer.
func Start(ctx context.Context, name string) (context.Context, trace.Span) {
	return GlobalTracer.Start(ctx, name)
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
