package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
)

// Environment variables read by FromEnvironment.
const (
	EnvSecretKey = "AXITRACE_SECRET_KEY"
	EnvBaseURL   = "AXITRACE_BASE_URL"
	EnvTimeout   = "AXITRACE_TIMEOUT"
	EnvVerifySSL = "AXITRACE_VERIFY_SSL"
	EnvDebug     = "AXITRACE_DEBUG"
)

// Document keys read by FromValues and the file loaders.
const (
	KeySecretKey = "secret_key"
	KeyBaseURL   = "base_url"
	KeyTimeout   = "timeout"
	KeyVerifySSL = "verify_ssl"
	KeyDebug     = "debug"
)

// LookupFunc looks up a variable by name, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnvironment builds a Config from the AXITRACE_* environment
// variables. Options are applied after the environment and take precedence.
func FromEnvironment(opts ...Option) (*Config, error) {
	return FromLookup(os.LookupEnv, opts...)
}

// FromLookup is FromEnvironment with an injectable variable source.
// Unset and empty variables are ignored.
func FromLookup(lookup LookupFunc, opts ...Option) (*Config, error) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}

	secretKey, ok := get(EnvSecretKey)
	if !ok {
		return nil, axerrors.MissingSecretKey()
	}

	var envOpts []Option
	if v, ok := get(EnvBaseURL); ok {
		envOpts = append(envOpts, WithBaseURL(v))
	}
	if v, ok := get(EnvTimeout); ok {
		envOpts = append(envOpts, withRawTimeout(v))
	}
	if v, ok := get(EnvVerifySSL); ok {
		envOpts = append(envOpts, WithVerifySSL(ParseBool(v)))
	}
	if v, ok := get(EnvDebug); ok {
		envOpts = append(envOpts, WithDebug(ParseBool(v)))
	}

	return New(secretKey, append(envOpts, opts...)...)
}

// FromValues builds a Config from a decoded document. Options are applied
// after the document values and take precedence.
func FromValues(v Values, opts ...Option) (*Config, error) {
	docOpts := []Option{
		WithBaseURL(v.String(KeyBaseURL, DefaultBaseURL)),
		WithTimeout(v.Int(KeyTimeout, DefaultTimeout)),
		WithVerifySSL(v.Bool(KeyVerifySSL, true)),
		WithDebug(v.Bool(KeyDebug, false)),
	}
	return New(v.String(KeySecretKey, ""), append(docOpts, opts...)...)
}

// FromFile loads configuration from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string, opts ...Option) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data, opts...)
	case ".json":
		return FromJSON(data, opts...)
	default:
		return nil, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte, opts ...Option) (*Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return FromValues(NewValues(m), opts...)
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte, opts ...Option) (*Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return FromValues(NewValues(m), opts...)
}

// ParseBool reports whether s is one of "1", "true", "on" or "yes",
// ignoring case and surrounding space. Anything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
