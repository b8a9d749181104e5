package transport_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/axitrace/pkg/axitrace/config"
	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
	"github.com/randalmurphal/axitrace/pkg/axitrace/trackingtest"
	"github.com/randalmurphal/axitrace/pkg/axitrace/transport"
)

const testKey = "sk_test_transport"

func newClient(t *testing.T, baseURL string, opts ...config.Option) *transport.Client {
	t.Helper()
	cfg, err := config.New(testKey, append([]config.Option{config.WithBaseURL(baseURL)}, opts...)...)
	require.NoError(t, err)
	return transport.New(cfg)
}

func TestPost(t *testing.T) {
	srv := trackingtest.NewServer(t, testKey)
	client := newClient(t, srv.URL())

	resp, err := client.Post(context.Background(), "/v1/page/view", map[string]any{"label": "page_view"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "page_view", resp.Action)
	_, err = uuid.Parse(resp.EventID)
	assert.NoError(t, err)

	req, ok := srv.LastRequest()
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/page/view", req.Path)
	assert.Equal(t, testKey, req.Username)
	assert.Empty(t, req.Password)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, client.Config().UserAgent(), req.Header.Get("User-Agent"))
	assert.Equal(t, map[string]any{"label": "page_view"}, req.Body)

	_, err = uuid.Parse(req.Header.Get(transport.HeaderRequestID))
	assert.NoError(t, err)
	assert.Equal(t, req.Header.Get(transport.HeaderRequestID), req.RequestID)
}

func TestRequestIDsAreUnique(t *testing.T) {
	srv := trackingtest.NewServer(t, testKey)
	client := newClient(t, srv.URL())

	for i := 0; i < 3; i++ {
		_, err := client.Post(context.Background(), "/v1/search", map[string]any{"search_term": "x"})
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for _, req := range srv.Requests() {
		assert.False(t, seen[req.RequestID], "duplicate request id")
		seen[req.RequestID] = true
	}
	assert.Len(t, seen, 3)
}

func TestGet(t *testing.T) {
	srv := trackingtest.NewServer(t, testKey)
	client := newClient(t, srv.URL())

	resp, err := client.Get(context.Background(), trackingtest.HealthPath, url.Values{"verbose": {"1"}})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Get("status", ""))

	req, _ := srv.LastRequest()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "1", req.Query.Get("verbose"))
	assert.Empty(t, req.RawBody)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 is authentication error",
			status: 401,
			body:   `{"error":"bad key"}`,
			check: func(t *testing.T, err error) {
				var authErr *axerrors.AuthenticationError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, 401, authErr.StatusCode)
			},
		},
		{
			name:   "403 keeps server reason",
			status: 403,
			body:   `{"error":"key disabled"}`,
			check: func(t *testing.T, err error) {
				var authErr *axerrors.AuthenticationError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, 403, authErr.StatusCode)
				assert.Contains(t, authErr.Message, "key disabled")
			},
		},
		{
			name:   "422 message from body",
			status: 422,
			body:   `{"message":"items invalid"}`,
			check: func(t *testing.T, err error) {
				var apiErr *axerrors.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, 422, apiErr.StatusCode)
				assert.Equal(t, "items invalid", apiErr.Message)
				assert.Equal(t, "/v1/custom", apiErr.Endpoint)
				assert.JSONEq(t, `{"message":"items invalid"}`, string(apiErr.Body))
				assert.False(t, axerrors.IsRetryable(err))
			},
		},
		{
			name:   "503 default message",
			status: 503,
			body:   `not json`,
			check: func(t *testing.T, err error) {
				var apiErr *axerrors.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "service unavailable", apiErr.Message)
				assert.True(t, axerrors.IsRetryable(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := newClient(t, srv.URL).Post(context.Background(), "/v1/custom", map[string]any{"a": 1})
			assert.Nil(t, resp)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestSuccessFlagInBody(t *testing.T) {
	srv := trackingtest.NewServer(t, testKey)
	srv.Respond("/v1/subscribe", http.StatusOK, map[string]any{"success": false, "error": "dup"})

	resp, err := newClient(t, srv.URL()).Post(context.Background(), "/v1/subscribe", map[string]any{"email": "a@b.com"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "dup", resp.Error)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthAgainstFake(t *testing.T) {
	srv := trackingtest.NewServer(t, "sk_test_other", trackingtest.WithForbiddenKey(testKey))

	_, err := newClient(t, srv.URL()).Post(context.Background(), "/v1/page/view", map[string]any{"a": 1})
	assert.True(t, axerrors.IsAuthentication(err))
	assert.Equal(t, 403, axerrors.StatusCode(err))
}

func TestConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := newClient(t, base).Post(context.Background(), "/v1/page/view", map[string]any{"a": 1})
	require.Error(t, err)

	var apiErr *axerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(apiErr))
	assert.True(t, strings.HasPrefix(err.Error(), "connection error"))
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(t, srv.URL).Post(ctx, "/v1/page/view", map[string]any{"a": 1})
	require.Error(t, err)
	assert.Equal(t, 0, axerrors.StatusCode(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInsecureTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Post(context.Background(), "/v1/page/view", map[string]any{"a": 1})
	assert.Error(t, err, "self-signed certificate must be rejected by default")

	resp, err := newClient(t, srv.URL, config.WithVerifySSL(false)).
		Post(context.Background(), "/v1/page/view", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestDebugLogging(t *testing.T) {
	srv := trackingtest.NewServer(t, testKey)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := config.New(testKey, config.WithBaseURL(srv.URL()), config.WithDebug(true))
	require.NoError(t, err)
	_, err = transport.New(cfg, transport.WithLogger(logger)).
		Post(context.Background(), "/v1/search", map[string]any{"search_term": "boots"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "http request")
	assert.Contains(t, out, "boots")
	assert.Contains(t, out, "http response")

	buf.Reset()
	_, err = transport.New(mustConfig(t, srv.URL()), transport.WithLogger(logger)).
		Post(context.Background(), "/v1/search", map[string]any{"search_term": "boots"})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func mustConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg, err := config.New(testKey, config.WithBaseURL(baseURL))
	require.NoError(t, err)
	return cfg
}

func TestWithHTTPClient(t *testing.T) {
	srv := trackingtest.NewServer(t, testKey)
	hc := &http.Client{Timeout: time.Second}

	client := transport.New(mustConfig(t, srv.URL()), transport.WithHTTPClient(hc))
	_, err := client.Post(context.Background(), "/v1/page/view", map[string]any{"a": 1})
	assert.NoError(t, err)
}
