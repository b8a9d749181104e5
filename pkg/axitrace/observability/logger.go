// Package observability provides logging, metrics and tracing for event
// dispatch.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// A nil *slog.Logger is accepted everywhere and means silent.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds the event action and endpoint to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "page_view", "/v1/page/view")
//	enriched.Info("sending") // includes action, endpoint
func EnrichLogger(logger *slog.Logger, action, endpoint string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("action", action),
		slog.String("endpoint", endpoint),
	)
}

// LogSendStart logs the start of an event send.
func LogSendStart(logger *slog.Logger, action, endpoint string) {
	if logger == nil {
		return
	}
	logger.Debug("event send starting",
		slog.String("action", action),
		slog.String("endpoint", endpoint),
	)
}

// LogSendComplete logs a completed send, whatever the response said.
func LogSendComplete(logger *slog.Logger, action string, statusCode int, success bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("event sent",
		slog.String("action", action),
		slog.Int("status_code", statusCode),
		slog.Bool("success", success),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSendError logs a failed send.
func LogSendError(logger *slog.Logger, action string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("event send failed",
		slog.String("action", action),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogValidationFailed logs an event rejected before any request was made.
func LogValidationFailed(logger *slog.Logger, action string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("event validation failed",
		slog.String("action", action),
		slog.String("error", err.Error()),
	)
}

// LogRequest logs an outgoing HTTP request body. Only used in debug mode.
func LogRequest(logger *slog.Logger, method, url, requestID string, body []byte) {
	if logger == nil {
		return
	}
	logger.Debug("http request",
		slog.String("method", method),
		slog.String("url", url),
		slog.String("request_id", requestID),
		slog.String("body", string(body)),
	)
}

// LogResponse logs an HTTP response body. Only used in debug mode.
func LogResponse(logger *slog.Logger, requestID string, statusCode int, body []byte) {
	if logger == nil {
		return
	}
	logger.Debug("http response",
		slog.String("request_id", requestID),
		slog.Int("status_code", statusCode),
		slog.String("body", string(body)),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... send ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
