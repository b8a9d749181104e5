package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New("  sk_live_abc123  ")
	require.NoError(t, err)

	assert.Equal(t, "sk_live_abc123", cfg.SecretKey())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL())
	assert.Equal(t, 30, cfg.Timeout())
	assert.Equal(t, "30s", cfg.TimeoutDuration().String())
	assert.True(t, cfg.VerifySSL())
	assert.False(t, cfg.Debug())
	assert.False(t, cfg.TestMode())
	assert.True(t, strings.HasPrefix(cfg.UserAgent(), "axitrace-go/"+Version+" go/"))
}

func TestNewOptions(t *testing.T) {
	cfg, err := New("sk_test_abc",
		WithBaseURL("http://localhost:8080/"),
		WithTimeout(5),
		WithVerifySSL(false),
		WithDebug(true),
	)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
	assert.Equal(t, 5, cfg.Timeout())
	assert.False(t, cfg.VerifySSL())
	assert.True(t, cfg.Debug())
	assert.True(t, cfg.TestMode())
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		opts  []Option
		field string
		msg   string
	}{
		{"empty key", "", nil, "secret_key", "secret key is required"},
		{"blank key", "   ", nil, "secret_key", "secret key is required"},
		{"wrong prefix", "pk_live_abc", nil, "secret_key", "sk_live_"},
		{"missing suffix", "sk_live_", nil, "secret_key", "sk_live_"},
		{"unknown mode", "sk_prod_abc", nil, "secret_key", "sk_test_"},
		{"ftp url", "sk_live_a", []Option{WithBaseURL("ftp://x.com")}, "base_url", "http or https"},
		{"no host", "sk_live_a", []Option{WithBaseURL("https://")}, "base_url", "http or https"},
		{"not a url", "sk_live_a", []Option{WithBaseURL("stat.axitrace.com")}, "base_url", "http or https"},
		{"zero timeout", "sk_live_a", []Option{WithTimeout(0)}, "timeout", "positive"},
		{"negative timeout", "sk_live_a", []Option{WithTimeout(-3)}, "timeout", "positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.key, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, cfg)

			var cfgErr *axerrors.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.msg)
			assert.True(t, axerrors.IsConfiguration(err))
		})
	}
}

func TestInvalidSecretKeyIsRedacted(t *testing.T) {
	_, err := New("pk_live_supersecretvalue")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "supersecretvalue")
}

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		cfg, err := FromLookup(lookupFrom(map[string]string{
			EnvSecretKey: "sk_test_env",
			EnvBaseURL:   "https://staging.axitrace.com/",
			EnvTimeout:   "12",
			EnvVerifySSL: "false",
			EnvDebug:     "yes",
		}))
		require.NoError(t, err)

		assert.Equal(t, "sk_test_env", cfg.SecretKey())
		assert.Equal(t, "https://staging.axitrace.com", cfg.BaseURL())
		assert.Equal(t, 12, cfg.Timeout())
		assert.False(t, cfg.VerifySSL())
		assert.True(t, cfg.Debug())
	})

	t.Run("empty variables ignored", func(t *testing.T) {
		cfg, err := FromLookup(lookupFrom(map[string]string{
			EnvSecretKey: "sk_live_env",
			EnvBaseURL:   "",
			EnvTimeout:   "",
		}))
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, cfg.BaseURL())
		assert.Equal(t, DefaultTimeout, cfg.Timeout())
	})

	t.Run("options override environment", func(t *testing.T) {
		cfg, err := FromLookup(lookupFrom(map[string]string{
			EnvSecretKey: "sk_live_env",
			EnvTimeout:   "12",
			EnvDebug:     "1",
		}), WithTimeout(3), WithDebug(false))
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Timeout())
		assert.False(t, cfg.Debug())
	})

	t.Run("missing secret key", func(t *testing.T) {
		_, err := FromLookup(lookupFrom(map[string]string{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("non-numeric timeout", func(t *testing.T) {
		_, err := FromLookup(lookupFrom(map[string]string{
			EnvSecretKey: "sk_live_env",
			EnvTimeout:   "soon",
		}))
		var cfgErr *axerrors.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, KeyTimeout, cfgErr.Field)
	})

	t.Run("explicit timeout replaces unparsable environment value", func(t *testing.T) {
		cfg, err := FromLookup(lookupFrom(map[string]string{
			EnvSecretKey: "sk_live_env",
			EnvTimeout:   "soon",
		}), WithTimeout(4))
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Timeout())
	})
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv(EnvSecretKey, "sk_live_fromenv")
	t.Setenv(EnvTimeout, "7")

	cfg, err := FromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, "sk_live_fromenv", cfg.SecretKey())
	assert.Equal(t, 7, cfg.Timeout())
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
secret_key: sk_live_yaml
base_url: https://eu.axitrace.com/
timeout: 15
verify_ssl: false
debug: true
`))
	require.NoError(t, err)

	assert.Equal(t, "sk_live_yaml", cfg.SecretKey())
	assert.Equal(t, "https://eu.axitrace.com", cfg.BaseURL())
	assert.Equal(t, 15, cfg.Timeout())
	assert.False(t, cfg.VerifySSL())
	assert.True(t, cfg.Debug())

	_, err = FromYAML([]byte("secret_key: [unterminated"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"secret_key":"sk_test_json","timeout":20}`), WithDebug(true))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Timeout())
	assert.True(t, cfg.VerifySSL())
	assert.True(t, cfg.Debug())

	_, err = FromJSON([]byte(`{"timeout":20}`))
	assert.True(t, axerrors.IsConfiguration(err))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "axitrace.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("secret_key: sk_live_file\n"), 0o600))
	cfg, err := FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "sk_live_file", cfg.SecretKey())

	jsonPath := filepath.Join(dir, "axitrace.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"secret_key":"sk_live_json"}`), 0o600))
	cfg, err = FromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "sk_live_json", cfg.SecretKey())

	_, err = FromFile(filepath.Join(dir, "axitrace.toml"))
	assert.Error(t, err)

	tomlPath := filepath.Join(dir, "present.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("x"), 0o600))
	_, err = FromFile(tomlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file extension")
}

func TestValues(t *testing.T) {
	v := NewValues(map[string]any{
		"name":     "axitrace",
		"count":    3,
		"count64":  int64(4),
		"countf":   5.0,
		"fraction": 5.5,
		"countstr": "6",
		"flag":     true,
		"flagstr":  "on",
		"other":    []int{1},
	})

	assert.Equal(t, "axitrace", v.String("name", "x"))
	assert.Equal(t, "x", v.String("count", "x"))
	assert.Equal(t, "x", v.String("missing", "x"))

	assert.Equal(t, 3, v.Int("count", 0))
	assert.Equal(t, 4, v.Int("count64", 0))
	assert.Equal(t, 5, v.Int("countf", 0))
	assert.Equal(t, 9, v.Int("fraction", 9))
	assert.Equal(t, 6, v.Int("countstr", 0))
	assert.Equal(t, 9, v.Int("other", 9))

	assert.True(t, v.Bool("flag", false))
	assert.True(t, v.Bool("flagstr", false))
	assert.True(t, v.Bool("missing", true))
	assert.False(t, v.Bool("name", false))

	assert.True(t, v.Has("flag"))
	assert.False(t, v.Has("missing"))
	assert.Len(t, v.Raw(), 9)

	assert.Empty(t, NewValues(nil).Raw())
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " on ", "Yes"} {
		assert.True(t, ParseBool(s), s)
	}
	for _, s := range []string{"0", "false", "off", "no", "", "maybe"} {
		assert.False(t, ParseBool(s), s)
	}
}
