package axitrace

import (
	"log/slog"
	"net/http"

	"github.com/randalmurphal/axitrace/pkg/axitrace/config"
	"github.com/randalmurphal/axitrace/pkg/axitrace/cookie"
	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
)

// clientOptions holds construction settings for a Client.
type clientOptions struct {
	logger     *slog.Logger
	cookies    cookie.Source
	httpClient *http.Client
	metrics    bool
	tracing    bool
	retry      *axerrors.RetryConfig
	configOpts []config.Option
}

// Option configures a Client.
type Option func(*clientOptions)

// WithLogger sets the logger for send outcomes and debug output.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithCookies sets where tracking cookies are read from.
//
// Example:
//
//	client := axitrace.New(cfg, axitrace.WithCookies(cookie.FromRequest(r)))
func WithCookies(src cookie.Source) Option {
	return func(o *clientOptions) { o.cookies = src }
}

// WithHTTPClient replaces the HTTP client used for requests. Its timeout
// and TLS settings take the place of the config's.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithMetrics records send counts and latency on the global OpenTelemetry
// meter provider. Default: disabled.
func WithMetrics(enabled bool) Option {
	return func(o *clientOptions) { o.metrics = enabled }
}

// WithTracing starts an OpenTelemetry span per send on the global tracer
// provider. Default: disabled.
func WithTracing(enabled bool) Option {
	return func(o *clientOptions) { o.tracing = enabled }
}

// WithRetry retries transient failures (429, 5xx, connection errors) with
// exponential backoff. Default: no retries.
//
// Example:
//
//	client := axitrace.New(cfg, axitrace.WithRetry(axerrors.DefaultRetry))
func WithRetry(cfg axerrors.RetryConfig) Option {
	return func(o *clientOptions) { o.retry = &cfg }
}

// WithConfig passes config options to Init and FromEnvironment. New
// ignores it.
func WithConfig(opts ...config.Option) Option {
	return func(o *clientOptions) { o.configOpts = append(o.configOpts, opts...) }
}
