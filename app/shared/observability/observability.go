package observability

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Observability bundles the logger, tracer and metrics registry handed to every module.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// OperationMetrics registers the module's operation collectors, or returns no-op metrics
// when no registry is configured.
func (o Observability) OperationMetrics(module string) (OperationMetrics, error) {
	if o.Registry == nil {
		return NewNoop(), nil
	}
	return NewPrometheusMetrics(o.Registry, module)
}

// TracerOrNoop returns the configured tracer or a no-op one.
func (o Observability) TracerOrNoop() trace.Tracer {
	if o.Tracer == nil {
		return noop.NewTracerProvider().Tracer("wordle-bot")
	}
	return o.Tracer
}
