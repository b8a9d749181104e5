// Package trackingtest provides an in-process fake of the AxiTrace tracking
// API for tests and examples.
//
// The fake checks HTTP Basic auth, accepts a POST on every event endpoint,
// records each request and answers {success, eventId, action} with a fresh
// UUID event ID. Individual paths can be made to answer differently with
// Respond.
//
//	srv := trackingtest.NewServer(t, "sk_test_abc")
//	cfg, _ := config.New("sk_test_abc", config.WithBaseURL(srv.URL()))
package trackingtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/randalmurphal/axitrace/pkg/axitrace/event"
)

// HealthPath answers GET requests with {"status":"ok"}.
const HealthPath = "/v1/health"

// Request is one request received by the fake.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Header    http.Header
	RequestID string
	Username  string
	Password  string
	// Body is the decoded JSON body; nil when the body was empty or not an object.
	Body map[string]any
	// RawBody is the body as received.
	RawBody []byte
}

type reply struct {
	status int
	body   []byte
}

// Server is a fake tracking API on an httptest.Server.
type Server struct {
	srv       *httptest.Server
	secretKey string
	forbidden map[string]bool

	mu       sync.Mutex
	requests []Request
	replies  map[string]reply
}

// Option configures a Server.
type Option func(*Server)

// WithForbiddenKey makes requests authenticated with key answer 403.
func WithForbiddenKey(key string) Option {
	return func(s *Server) { s.forbidden[key] = true }
}

// NewServer starts a fake accepting secretKey and registers its shutdown
// with t.Cleanup.
func NewServer(t testing.TB, secretKey string, opts ...Option) *Server {
	t.Helper()
	s := Start(secretKey, opts...)
	t.Cleanup(s.Close)
	return s
}

// Start starts a fake outside of a test. The caller must Close it.
func Start(secretKey string, opts ...Option) *Server {
	s := &Server{
		secretKey: secretKey,
		forbidden: make(map[string]bool),
		replies:   make(map[string]reply),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.srv = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.basicAuth)
	r.Use(s.override)

	for _, k := range event.Kinds() {
		r.Post(k.Endpoint(), s.accept(k.Action()))
	}
	r.Get(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "endpoint not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"success": false, "error": "method not allowed"})
	})
	return r
}

// record stores the request before auth so rejected requests are visible too.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))

		req := Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query(),
			Header:    r.Header.Clone(),
			RequestID: middleware.GetReqID(r.Context()),
			RawBody:   raw,
		}
		req.Username, req.Password, _ = r.BasicAuth()
		if len(raw) > 0 {
			var body map[string]any
			if json.Unmarshal(raw, &body) == nil {
				req.Body = body
			}
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		switch {
		case ok && s.forbidden[user]:
			writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "error": "key disabled"})
		case !ok || user != s.secretKey:
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "invalid api key"})
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (s *Server) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		rep, ok := s.replies[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		w.Write(rep.body)
	})
}

func (s *Server) accept(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"eventId": uuid.NewString(),
			"action":  action,
		})
	}
}

// URL returns the base URL of the fake, suitable for config.WithBaseURL.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the fake down. It is safe to call more than once.
func (s *Server) Close() { s.srv.Close() }

// Respond makes path answer status with body encoded as JSON.
func (s *Server) Respond(path string, status int, body map[string]any) {
	raw, _ := json.Marshal(body)
	s.RespondRaw(path, status, raw)
}

// RespondRaw makes path answer status with body as-is.
func (s *Server) RespondRaw(path string, status int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[path] = reply{status: status, body: body}
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Reset forgets recorded requests and custom replies.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
	s.replies = make(map[string]reply)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
