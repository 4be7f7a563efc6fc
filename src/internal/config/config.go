package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/maksimkurb/keen-embed/src/internal/log"
)

const (
	DefaultListenAddr             = "127.0.0.1:8080"
	DefaultReadTimeoutSeconds     = 15
	DefaultWriteTimeoutSeconds    = 15
	DefaultIdleTimeoutSeconds     = 60
	DefaultShutdownTimeoutSeconds = 30
	DefaultRateLimitBurst         = 20
	DefaultFallbackStatus         = 404
)

// Environment variables recognized by ApplyEnv.
const (
	EnvListenAddr = "KEEN_EMBED_LISTEN_ADDR"
	EnvVerbose    = "KEEN_EMBED_VERBOSE"
)

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Errorf("Configuration file not found: %s", configFile)
		return nil, fmt.Errorf("configuration file not found: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	// Pre-filled so that keys omitted from a partial [admin] table keep their defaults.
	config := Config{Admin: defaultAdminConfig()}
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile
	config.ApplyDefaults()

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Configured mounts: %d", len(config.Mounts))

	return &config, nil
}

// ApplyDefaults fills unset settings with their default values.
func (c *Config) ApplyDefaults() {
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = DefaultReadTimeoutSeconds
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = DefaultWriteTimeoutSeconds
	}
	if c.Server.IdleTimeoutSeconds == 0 {
		c.Server.IdleTimeoutSeconds = DefaultIdleTimeoutSeconds
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = DefaultShutdownTimeoutSeconds
	}
	if c.Server.RateLimit == nil {
		c.Server.RateLimit = &RateLimitConfig{}
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = DefaultRateLimitBurst
	}
	if c.Server.RateLimit.GlobalRPS > 0 && c.Server.RateLimit.GlobalBurst == 0 {
		c.Server.RateLimit.GlobalBurst = DefaultRateLimitBurst
	}

	if c.Admin == nil {
		c.Admin = defaultAdminConfig()
	}

	for _, m := range c.Mounts {
		if m.FallbackMode() == FallbackTemplate && m.FallbackStatus == 0 {
			m.FallbackStatus = DefaultFallbackStatus
		}
	}
}

func defaultAdminConfig() *AdminConfig {
	return &AdminConfig{
		Enable:      true,
		PrivateOnly: true,
		Metrics:     true,
	}
}

// LoadEnvFiles loads .env files into the process environment. Missing files
// are ignored; variables already set are not overwritten.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if addr := strings.TrimSpace(os.Getenv(EnvListenAddr)); addr != "" {
		log.Debugf("Listen address overridden by %s: %s", EnvListenAddr, addr)
		c.Server.ListenAddr = addr
	}
}

// VerboseFromEnv reports whether verbose logging was requested via the environment.
func VerboseFromEnv() bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvVerbose)))
	return err == nil && v
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

func (c *Config) WriteConfig() error {
	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c._absConfigFilePath, config.Bytes(), 0644); err != nil {
		return err
	}
	return nil
}
