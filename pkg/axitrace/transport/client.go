// Package transport is the authenticated HTTP client for the tracking API.
//
// Every request carries HTTP Basic auth (secret key as username, empty
// password), a JSON Accept and Content-Type, the configured User-Agent and a
// fresh X-Request-Id. Error statuses are mapped onto the errors package:
// 401 and 403 become *errors.AuthenticationError, any other status >= 400
// an *errors.APIError, and a request that gets no response an
// *errors.APIError with StatusCode 0.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/randalmurphal/axitrace/pkg/axitrace/api"
	"github.com/randalmurphal/axitrace/pkg/axitrace/config"
	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
	"github.com/randalmurphal/axitrace/pkg/axitrace/observability"
)

// maxResponseBody bounds how much of a response is read.
const maxResponseBody = 1 << 20

// HeaderRequestID carries the per-request correlation ID.
const HeaderRequestID = "X-Request-Id"

// Client sends requests to the tracking API.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ api.Poster = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. The configured
// timeout and TLS settings are then the caller's responsibility.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for debug body logging. Bodies are only
// logged when the config has debug enabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for cfg.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = newHTTPClient(cfg)
	}
	return c
}

func newHTTPClient(cfg *config.Config) *http.Client {
	hc := &http.Client{Timeout: cfg.TimeoutDuration()}
	if !cfg.VerifySSL() {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via config
		hc.Transport = tr
	}
	return hc
}

// Config returns the client configuration.
func (c *Client) Config() *config.Config { return c.cfg }

// Post sends data as a JSON body to endpoint.
func (c *Client) Post(ctx context.Context, endpoint string, data map[string]any) (*api.Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, data, nil)
}

// Get sends a GET request to endpoint with query parameters.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (*api.Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, query)
}

func (c *Client) do(ctx context.Context, method, endpoint string, data map[string]any, query url.Values) (*api.Response, error) {
	target := c.cfg.BaseURL() + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	var body io.Reader
	if len(data) > 0 {
		var err error
		payload, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode request body for %s: %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", endpoint, err)
	}

	requestID := uuid.NewString()
	req.SetBasicAuth(c.cfg.SecretKey(), "")
	req.Header.Set("User-Agent", c.cfg.UserAgent())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	if c.cfg.Debug() {
		observability.LogRequest(c.logger, method, target, requestID, payload)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, axerrors.ConnectionError(endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, axerrors.ConnectionError(endpoint, err)
	}

	if c.cfg.Debug() {
		observability.LogResponse(c.logger, requestID, resp.StatusCode, respBody)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, axerrors.Unauthorized()
	case resp.StatusCode == http.StatusForbidden:
		return nil, axerrors.Forbidden(bodyReason(resp.StatusCode, respBody))
	case resp.StatusCode >= 400:
		return nil, axerrors.FromResponse(resp.StatusCode, endpoint, respBody)
	}

	return api.ResponseFromBody(resp.StatusCode, respBody), nil
}

// bodyReason returns the API-supplied error message, or "" when the body
// carries none.
func bodyReason(statusCode int, body []byte) string {
	msg := axerrors.FromResponse(statusCode, "", body).Message
	if msg == axerrors.DefaultStatusMessage(statusCode) {
		return ""
	}
	return msg
}
