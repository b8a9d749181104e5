package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func setupTracingTest(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("axitrace")

	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		tracer = otel.Tracer("axitrace")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("shutting down tracer provider: %v", err)
		}
	})
	return exporter
}

func TestStartSendSpan(t *testing.T) {
	exporter := setupTracingTest(t)

	ctx, span := NewSpanManager().StartSendSpan(context.Background(), "page_view", "/v1/page/view")
	require.NotNil(t, span)
	assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "axitrace.send.page_view", s.Name)
	assert.Equal(t, trace.SpanKindClient, s.SpanKind)
	assert.Contains(t, s.Attributes, attribute.String("event.action", "page_view"))
	assert.Contains(t, s.Attributes, attribute.String("http.route", "/v1/page/view"))
}

func TestEndSpanWithError(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	t.Run("ok status", func(t *testing.T) {
		exporter.Reset()
		_, span := sm.StartSendSpan(context.Background(), "search", "/v1/search")
		sm.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("error status", func(t *testing.T) {
		exporter.Reset()
		_, span := sm.StartSendSpan(context.Background(), "search", "/v1/search")
		sm.EndSpanWithError(span, errors.New("HTTP 502"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "HTTP 502", spans[0].Status.Description)
		require.NotEmpty(t, spans[0].Events)
		assert.Equal(t, "exception", spans[0].Events[0].Name)
	})

	t.Run("nil span", func(t *testing.T) {
		assert.NotPanics(t, func() { EndSpanWithError(nil, nil) })
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter := setupTracingTest(t)

	ctx, span := StartSendSpan(context.Background(), "subscribe", "/v1/subscribe")
	NewSpanManager().AddSpanEvent(ctx, "response", attribute.Int("status_code", 200))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "response", spans[0].Events[0].Name)

	assert.NotPanics(t, func() { AddSpanEvent(context.Background(), "orphan") })
}

func TestNoopSpanManager(t *testing.T) {
	var sm SpanManager = NoopSpanManager{}
	ctx := context.Background()

	got, span := sm.StartSendSpan(ctx, "page_view", "/v1/page/view")
	assert.Equal(t, ctx, got)
	assert.False(t, span.IsRecording())
	sm.AddSpanEvent(ctx, "x")
	sm.EndSpanWithError(span, errors.New("ignored"))
}
