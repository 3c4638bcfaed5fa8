package tracing

import (
	"fmt"

	"github.com/honeycombio/otel-config-go/otelconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("fitplan-backend")

// Setup configures the OpenTelemetry SDK via the honeycomb
// otel-config distro. When disabled, a noop shutdown is returned
// and the global tracer produces no-op spans.
func Setup(enabled bool, serviceName string) (shutdown func(), err error) {
	if !enabled {
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
	)
	if err != nil {
		return nil, fmt.Errorf("configure opentelemetry: %w", err)
	}

	return otelShutdown, nil
}

// EndSpanWithErrCheck records the given error on the span (if any)
// before ending it. Meant to be used with named error returns:
//
//	defer func() {
//		tracing.EndSpanWithErrCheck(span, err)
//	}()
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
