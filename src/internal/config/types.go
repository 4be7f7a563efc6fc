package config

import (
	"path/filepath"
	"strings"

	"github.com/maksimkurb/keen-embed/src/internal/utils"
)

const (
	FallbackNotFound = "not_found"
	FallbackIndex    = "index"
	FallbackTemplate = "template"
)

const (
	SourceEmbedded  = "embedded"
	SourceDirectory = "dir"
)

type Config struct {
	// Server holds HTTP listener settings.
	Server *ServerConfig `toml:"server" json:"server"`
	// Admin holds settings of the JSON API and metrics endpoint.
	Admin *AdminConfig `toml:"admin" json:"admin"`
	// Mounts lists URL prefixes under which assets are served. You can add multiple mounts.
	Mounts []*MountConfig `toml:"mount,omitempty" json:"mounts"`

	_absConfigFilePath string
}

type ServerConfig struct {
	// ListenAddr is the address the HTTP server binds to (default: 127.0.0.1:8080).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"required,hostport_or_empty"`
	// ReadTimeoutSeconds is the maximum duration for reading a request (default: 15).
	ReadTimeoutSeconds int `toml:"read_timeout_seconds" json:"read_timeout_seconds" validate:"gte=0"`
	// WriteTimeoutSeconds is the maximum duration for writing a response (default: 15).
	WriteTimeoutSeconds int `toml:"write_timeout_seconds" json:"write_timeout_seconds" validate:"gte=0"`
	// IdleTimeoutSeconds is the keep-alive idle timeout (default: 60).
	IdleTimeoutSeconds int `toml:"idle_timeout_seconds" json:"idle_timeout_seconds" validate:"gte=0"`
	// ShutdownTimeoutSeconds bounds graceful shutdown (default: 30).
	ShutdownTimeoutSeconds int `toml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds" validate:"gte=0"`
	// RateLimit settings. Zero rps disables limiting.
	RateLimit *RateLimitConfig `toml:"rate_limit" json:"rate_limit"`
}

type RateLimitConfig struct {
	// RPS is the sustained number of requests per second per client (0 = disabled).
	RPS float64 `toml:"rps" json:"rps" validate:"gte=0"`
	// Burst is the bucket size (default: 20).
	Burst int `toml:"burst" json:"burst" validate:"gte=0"`
	// GlobalRPS caps requests per second across all clients (0 = no cap). Applies only when RPS is set.
	GlobalRPS float64 `toml:"global_rps,omitempty" json:"global_rps,omitempty" validate:"gte=0"`
	// GlobalBurst is the bucket size of the global cap (default: 20).
	GlobalBurst int `toml:"global_burst,omitempty" json:"global_burst,omitempty" validate:"gte=0"`
}

type AdminConfig struct {
	// Enable exposes the JSON API under /api/v1 (default: true).
	Enable bool `toml:"enable" json:"enable"`
	// PrivateOnly restricts the JSON API and metrics to private subnets (default: true).
	PrivateOnly bool `toml:"private_only" json:"private_only"`
	// Metrics exposes Prometheus metrics under /metrics (default: true).
	Metrics bool `toml:"metrics" json:"metrics"`
}

type MountConfig struct {
	// Prefix is the URL path under which assets are served, e.g. "/static". Use "/" for the root.
	Prefix string `toml:"prefix" json:"prefix" validate:"required,mount_prefix"`
	// Dir serves a snapshot of this directory, taken at start-up. Empty serves the embedded frontend.
	Dir string `toml:"dir,omitempty" json:"dir,omitempty"`
	// IndexFile is served for requests to the mount root. Empty disables it.
	IndexFile string `toml:"index_file,omitempty" json:"index_file,omitempty"`
	// StrictSlash makes a trailing slash significant ("/a.css/" no longer serves "a.css").
	StrictSlash bool `toml:"strict_slash" json:"strict_slash"`
	// Fallback is the behavior on a missing file: not_found, index or template (default: not_found).
	Fallback string `toml:"fallback,omitempty" json:"fallback,omitempty" validate:"omitempty,fallback_mode"`
	// FallbackTemplate is the response body for fallback = "template". Available variables: {{path}}, {{mount}}.
	FallbackTemplate string `toml:"fallback_template,omitempty" json:"fallback_template,omitempty"`
	// FallbackStatus is the status code for fallback = "template" (default: 404).
	FallbackStatus int `toml:"fallback_status,omitempty" json:"fallback_status,omitempty" validate:"omitempty,min=100,max=599"`
	// SniffUnknown detects the content type from file content when the extension is unknown.
	SniffUnknown bool `toml:"sniff_unknown" json:"sniff_unknown"`
}

func (c *Config) GetConfigDir() string {
	return filepath.Dir(c._absConfigFilePath)
}

// GetAbsMountDir resolves the mount directory relative to the config file.
func (c *Config) GetAbsMountDir(m *MountConfig) string {
	return utils.ResolveDir(m.Dir, c.GetConfigDir())
}

// NormalizedPrefix returns the prefix without trailing slashes. The root
// mount is returned as "".
func (m *MountConfig) NormalizedPrefix() string {
	return strings.TrimRight(m.Prefix, "/")
}

func (m *MountConfig) Source() string {
	if m.Dir != "" {
		return SourceDirectory
	}
	return SourceEmbedded
}

func (m *MountConfig) FallbackMode() string {
	if m.Fallback == "" {
		return FallbackNotFound
	}
	return m.Fallback
}
