package api

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
	"github.com/randalmurphal/axitrace/pkg/axitrace/event"
	"github.com/randalmurphal/axitrace/pkg/axitrace/observability"
)

// Poster posts a JSON payload to an API path. transport.Client is the
// production implementation.
//
// A non-nil error means no usable Response was produced: the request failed
// to connect, or the API answered with an error status.
type Poster interface {
	Post(ctx context.Context, endpoint string, data map[string]any) (*Response, error)
}

// BatchResult is the outcome of one event in SendBatch. Exactly one of
// Response and Err is set.
type BatchResult struct {
	Response *Response
	Err      error
}

// EventsAPI validates, serializes and posts events.
type EventsAPI struct {
	poster  Poster
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// Option configures an EventsAPI.
type Option func(*EventsAPI)

// WithLogger sets the logger for send outcomes. nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(a *EventsAPI) { a.logger = logger }
}

// WithMetrics enables OpenTelemetry metrics on the global meter provider.
func WithMetrics(enabled bool) Option {
	return func(a *EventsAPI) {
		if enabled {
			a.metrics = observability.NewMetricsRecorder()
		} else {
			a.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables an OpenTelemetry span per send on the global tracer
// provider.
func WithTracing(enabled bool) Option {
	return func(a *EventsAPI) {
		if enabled {
			a.spans = observability.NewSpanManager()
		} else {
			a.spans = observability.NoopSpanManager{}
		}
	}
}

// NewEventsAPI creates an EventsAPI posting through poster.
func NewEventsAPI(poster Poster, opts ...Option) *EventsAPI {
	a := &EventsAPI{
		poster:  poster,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Send validates ev and posts its payload to its endpoint. A validation
// failure is returned without any network I/O.
func (a *EventsAPI) Send(ctx context.Context, ev event.Event) (*Response, error) {
	if ev == nil {
		return nil, axerrors.ErrNilEvent
	}

	action := ev.Action()
	if err := ev.Validate(); err != nil {
		observability.LogValidationFailed(a.logger, action, err)
		a.metrics.RecordValidationFailure(ctx, action)
		return nil, err
	}

	return a.post(ctx, action, ev.Endpoint(), ev.Serialize())
}

// SendBatch sends each event in order. A failure is recorded in that
// event's BatchResult and does not stop the batch.
func (a *EventsAPI) SendBatch(ctx context.Context, events []event.Event) []BatchResult {
	results := make([]BatchResult, len(events))
	for i, ev := range events {
		resp, err := a.Send(ctx, ev)
		results[i] = BatchResult{Response: resp, Err: err}
	}
	return results
}

// SendRaw posts data to endpoint as-is, without validation.
func (a *EventsAPI) SendRaw(ctx context.Context, endpoint string, data map[string]any) (*Response, error) {
	return a.post(ctx, "raw", endpoint, data)
}

func (a *EventsAPI) post(ctx context.Context, action, endpoint string, data map[string]any) (*Response, error) {
	ctx, span := a.spans.StartSendSpan(ctx, action, endpoint)
	observability.LogSendStart(a.logger, action, endpoint)
	start := time.Now()

	resp, err := a.poster.Post(ctx, endpoint, data)

	duration := time.Since(start)
	durationMs := float64(duration.Microseconds()) / 1000
	statusCode := axerrors.StatusCode(err)
	if resp != nil {
		statusCode = resp.StatusCode
	}

	a.metrics.RecordSend(ctx, action, statusCode, duration, err)
	if err != nil {
		observability.LogSendError(a.logger, action, err, durationMs)
	} else {
		a.spans.AddSpanEvent(ctx, "response",
			attribute.Int("status_code", resp.StatusCode),
			attribute.Bool("success", resp.Success),
			attribute.String("event_id", resp.EventID),
		)
		observability.LogSendComplete(a.logger, action, resp.StatusCode, resp.Success, durationMs)
	}
	a.spans.EndSpanWithError(span, err)

	return resp, err
}
