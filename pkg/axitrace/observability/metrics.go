package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordSend records one dispatched event with its duration, HTTP status
	// (0 when no response was received) and error.
	RecordSend(ctx context.Context, action string, statusCode int, duration time.Duration, err error)

	// RecordValidationFailure records an event rejected before dispatch.
	RecordValidationFailure(ctx context.Context, action string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	sends              metric.Int64Counter
	sendLatency        metric.Float64Histogram
	sendErrors         metric.Int64Counter
	validationFailures metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("axitrace")

	sends, err := meter.Int64Counter("axitrace.events.sent",
		metric.WithDescription("Number of events dispatched"),
	)
	if err != nil {
		return nil, err
	}

	sendLatency, err := meter.Float64Histogram("axitrace.events.latency_ms",
		metric.WithDescription("Event dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	sendErrors, err := meter.Int64Counter("axitrace.events.errors",
		metric.WithDescription("Number of failed event dispatches"),
	)
	if err != nil {
		return nil, err
	}

	validationFailures, err := meter.Int64Counter("axitrace.events.invalid",
		metric.WithDescription("Number of events rejected by validation"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		sends:              sends,
		sendLatency:        sendLatency,
		sendErrors:         sendErrors,
		validationFailures: validationFailures,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordSend records a dispatched event.
func (m *otelMetrics) RecordSend(ctx context.Context, action string, statusCode int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("action", action),
		attribute.Int("status_code", statusCode),
	)

	m.sends.Add(ctx, 1, attrs)
	m.sendLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.sendErrors.Add(ctx, 1, attrs)
	}
}

// RecordValidationFailure records a rejected event.
func (m *otelMetrics) RecordValidationFailure(ctx context.Context, action string) {
	m.validationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}
