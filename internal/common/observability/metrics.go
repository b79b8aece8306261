package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"proposal-desk/internal/common/logger"
)

// Observability records backend operations through an OpenTelemetry meter exported to Prometheus.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	callCounter   otelmetric.Int64Counter
	callDuration  otelmetric.Float64Histogram
}

// New builds the meter. If the exporter cannot be registered the returned value records nothing.
func New(serviceName string, log logger.Logger, opts ...prometheus.Option) *Observability {
	exporter, err := prometheus.New(opts...)
	if err != nil {
		if log != nil {
			log.Warn("Failed to create Prometheus exporter", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	callCounter, _ := meter.Int64Counter(
		"backend.calls",
		otelmetric.WithDescription("Number of backend calls"),
	)

	callDuration, _ := meter.Float64Histogram(
		"backend.duration",
		otelmetric.WithDescription("Backend call duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		callCounter:   callCounter,
		callDuration:  callDuration,
	}
}

// Noop returns an Observability that records nothing.
func Noop() *Observability {
	return &Observability{}
}

func (o *Observability) RecordCall(ctx context.Context, backend, method, outcome string) {
	if o == nil || o.callCounter == nil {
		return
	}
	o.callCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) RecordDuration(ctx context.Context, duration time.Duration, backend, method string) {
	if o == nil || o.callDuration == nil {
		return
	}
	o.callDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("method", method),
	))
}

// Enabled reports whether instruments were created.
func (o *Observability) Enabled() bool {
	return o != nil && o.callCounter != nil
}

func (o *Observability) Shutdown() {
	if o != nil && o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
