// Package config handles configuration file parsing and validation for keen-embed.
//
// This package reads TOML configuration files and provides strongly-typed
// structures for accessing configuration data, validated with
// go-playground/validator and reported as a list of ValidationErrors.
//
// # Configuration Structure
//
// The configuration file defines:
//   - Server settings (listen address, timeouts, optional rate limit)
//   - Admin settings (JSON API, Prometheus metrics, private subnet restriction)
//   - Mounts: URL prefixes, each serving the embedded frontend or a
//     directory snapshot, with index file, trailing slash and fallback rules
//
// # Example Usage
//
// Loading and validating a configuration file:
//
//	cfg, err := config.LoadConfig("/etc/keen-embed.toml")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//
// Accessing configuration:
//
//	for _, m := range cfg.Mounts {
//	    fmt.Printf("Mount %s (%s)\n", m.NormalizedPrefix(), m.Source())
//	}
//
// Environment variables (optionally read from .env files) override a
// subset of the file settings, see ApplyEnv.
package config
