package benchmarks

import (
	"context"
	"testing"

	"github.com/randalmurphal/axitrace/pkg/axitrace"
	"github.com/randalmurphal/axitrace/pkg/axitrace/config"
	"github.com/randalmurphal/axitrace/pkg/axitrace/event"
	"github.com/randalmurphal/axitrace/pkg/axitrace/trackingtest"
)

const benchKey = "sk_test_bench"

func newBenchClient(b *testing.B, opts ...axitrace.Option) *axitrace.Client {
	b.Helper()
	srv := trackingtest.NewServer(b, benchKey)
	cfg, err := config.New(benchKey, config.WithBaseURL(srv.URL()))
	if err != nil {
		b.Fatal(err)
	}
	return axitrace.New(cfg, opts...).SetClientID("v1")
}

// BenchmarkTrack measures one round trip to the in-process fake.
func BenchmarkTrack(b *testing.B) {
	client := newBenchClient(b)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Track(ctx, event.NewSearch("boots")); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTrack_WithObservability adds metrics and tracing on the global
// (no-op) providers.
func BenchmarkTrack_WithObservability(b *testing.B) {
	client := newBenchClient(b, axitrace.WithMetrics(true), axitrace.WithTracing(true))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Track(ctx, event.NewSearch("boots")); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTrack_Invalid measures the local validation short-circuit.
func BenchmarkTrack_Invalid(b *testing.B) {
	client := newBenchClient(b)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.Track(ctx, event.NewSearch(""))
	}
}
