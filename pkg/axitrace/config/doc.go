/*
Package config builds and validates the client configuration.

# Overview

A Config is created once, validated at construction and then only read.
Sending never fails with a configuration error; every problem with the
secret key, base URL or timeout surfaces from New or a loader as an
*errors.ConfigurationError.

# Basic Usage

	cfg, err := config.New("sk_live_abc123",
	    config.WithTimeout(10),
	    config.WithDebug(true),
	)

Defaults: base URL https://stat.axitrace.com, timeout 30 seconds, TLS
verification on, debug off.

# Loaders

The loaders are never called by the client itself; callers pick one and pass
the result in.

	cfg, err := config.FromEnvironment()              // AXITRACE_* variables
	cfg, err := config.FromFile("axitrace.yaml")      // secret_key, base_url, ...
	cfg, err := config.FromLookup(lookup, config.WithDebug(true))

Explicit options always win over values read by a loader.

# Values

Values is a typed accessor over a decoded YAML or JSON document. Missing
keys and type mismatches return the supplied default:

	v := config.NewValues(map[string]any{"timeout": 5})
	v.Int("timeout", 30)    // 5
	v.Bool("debug", false)  // false
*/
package config
