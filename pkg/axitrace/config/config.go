package config

import (
	"fmt"
	"net/url"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
)

// Version is the client library version reported in the User-Agent.
const Version = "1.0.0"

// Defaults applied by New.
const (
	DefaultBaseURL = "https://stat.axitrace.com"
	DefaultTimeout = 30
)

var secretKeyPattern = regexp.MustCompile(`^sk_(live|test)_.+`)

// Config is a validated client configuration. It is immutable once built;
// use New or one of the loaders to create one.
type Config struct {
	secretKey string
	baseURL   string
	timeout   int
	verifySSL bool
	debug     bool

	// timeoutErr holds an unparsable timeout from a loader until an
	// explicit WithTimeout replaces it.
	timeoutErr error
}

// Option configures a Config in New.
type Option func(*Config)

// WithBaseURL sets the API base URL. A trailing slash is stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) { c.baseURL = baseURL }
}

// WithTimeout sets the request timeout in seconds. It must be positive.
func WithTimeout(seconds int) Option {
	return func(c *Config) {
		c.timeout = seconds
		c.timeoutErr = nil
	}
}

// withRawTimeout parses a timeout given as text, as read from the
// environment. A parse failure is reported by New unless a later
// WithTimeout overrides it.
func withRawTimeout(raw string) Option {
	return func(c *Config) {
		seconds, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			c.timeoutErr = &axerrors.ConfigurationError{
				Field:   KeyTimeout,
				Message: "timeout must be an integer number of seconds",
				Value:   raw,
			}
			return
		}
		c.timeout = seconds
		c.timeoutErr = nil
	}
}

// WithVerifySSL enables or disables TLS certificate verification.
func WithVerifySSL(verify bool) Option {
	return func(c *Config) { c.verifySSL = verify }
}

// WithDebug enables request and response body logging.
func WithDebug(debug bool) Option {
	return func(c *Config) { c.debug = debug }
}

// New validates secretKey and the options and returns a Config.
// All failures are *errors.ConfigurationError.
func New(secretKey string, opts ...Option) (*Config, error) {
	c := &Config{
		secretKey: strings.TrimSpace(secretKey),
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		verifySSL: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c, nil
}

func (c *Config) validate() error {
	if c.secretKey == "" {
		return axerrors.MissingSecretKey()
	}
	if !secretKeyPattern.MatchString(c.secretKey) {
		return axerrors.InvalidSecretKey(c.secretKey)
	}
	if !isValidURL(c.baseURL) {
		return axerrors.InvalidBaseURL(c.baseURL)
	}
	if c.timeoutErr != nil {
		return c.timeoutErr
	}
	if c.timeout <= 0 {
		return axerrors.InvalidTimeout(c.timeout)
	}
	return nil
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SecretKey returns the API secret key.
func (c *Config) SecretKey() string { return c.secretKey }

// BaseURL returns the API base URL without a trailing slash.
func (c *Config) BaseURL() string { return c.baseURL }

// Timeout returns the request timeout in seconds.
func (c *Config) Timeout() int { return c.timeout }

// TimeoutDuration returns the request timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.timeout) * time.Second
}

// VerifySSL reports whether TLS certificates are verified.
func (c *Config) VerifySSL() bool { return c.verifySSL }

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool { return c.debug }

// TestMode reports whether the key is a sk_test_ key. It is informational
// only and does not change behavior.
func (c *Config) TestMode() bool {
	return strings.HasPrefix(c.secretKey, "sk_test_")
}

// UserAgent returns the User-Agent header value sent with every request.
func (c *Config) UserAgent() string {
	return fmt.Sprintf("axitrace-go/%s go/%s", Version, strings.TrimPrefix(runtime.Version(), "go"))
}
