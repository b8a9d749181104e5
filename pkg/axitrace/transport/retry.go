package transport

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/axitrace/pkg/axitrace/api"
	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
)

// RetryPoster wraps a Poster and retries transient failures (connection
// errors, 408, 429 and 5xx). Nothing wraps a Client in it by default.
type RetryPoster struct {
	next   api.Poster
	cfg    axerrors.RetryConfig
	logger *slog.Logger
}

var _ api.Poster = (*RetryPoster)(nil)

// NewRetryPoster wraps next with cfg. logger may be nil.
func NewRetryPoster(next api.Poster, cfg axerrors.RetryConfig, logger *slog.Logger) *RetryPoster {
	return &RetryPoster{next: next, cfg: cfg, logger: logger}
}

// Post implements api.Poster.
func (p *RetryPoster) Post(ctx context.Context, endpoint string, data map[string]any) (*api.Response, error) {
	result := axerrors.WithRetry(ctx, p.cfg, func(ctx context.Context) (*api.Response, error) {
		return p.next.Post(ctx, endpoint, data)
	})
	if result.Attempts > 1 && p.logger != nil {
		p.logger.Warn("request retried",
			slog.String("endpoint", endpoint),
			slog.Int("attempts", result.Attempts),
			slog.Float64("duration_ms", float64(result.Duration.Microseconds())/1000),
		)
	}
	return result.Value, result.Err
}
