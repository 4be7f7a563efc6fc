package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_NonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/file.toml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "invalid.toml")

	invalidTOML := `[server
	listen_addr = "127.0.0.1:8080"`

	if err := os.WriteFile(configFile, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadConfig(configFile); err == nil {
		t.Error("Expected error for invalid TOML")
	}
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "valid.toml")

	validTOML := `[server]
listen_addr = "0.0.0.0:9090"

[server.rate_limit]
rps = 5

[[mount]]
prefix = "/static"
index_file = "index.html"

[[mount]]
prefix = "/"
dir = "public"
fallback = "template"
fallback_template = "no {{path}} here"`

	if err := os.WriteFile(configFile, []byte(validTOML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	config, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error for valid config: %v", err)
	}

	if config.Server.ListenAddr != "0.0.0.0:9090" {
		t.Errorf("Expected listen_addr '0.0.0.0:9090', got %s", config.Server.ListenAddr)
	}
	if config.Server.ReadTimeoutSeconds != DefaultReadTimeoutSeconds {
		t.Errorf("Expected default read timeout, got %d", config.Server.ReadTimeoutSeconds)
	}
	if config.Server.RateLimit.RPS != 5 || config.Server.RateLimit.Burst != DefaultRateLimitBurst {
		t.Errorf("Unexpected rate limit settings: %+v", config.Server.RateLimit)
	}
	if config.Admin == nil || !config.Admin.Enable || !config.Admin.PrivateOnly || !config.Admin.Metrics {
		t.Errorf("Expected admin defaults, got %+v", config.Admin)
	}

	if len(config.Mounts) != 2 {
		t.Fatalf("Expected 2 mounts, got %d", len(config.Mounts))
	}
	if config.Mounts[0].Source() != SourceEmbedded {
		t.Errorf("Expected embedded source, got %s", config.Mounts[0].Source())
	}
	if config.Mounts[1].Source() != SourceDirectory {
		t.Errorf("Expected dir source, got %s", config.Mounts[1].Source())
	}
	if config.Mounts[1].FallbackStatus != DefaultFallbackStatus {
		t.Errorf("Expected default fallback status, got %d", config.Mounts[1].FallbackStatus)
	}
	if got := config.GetAbsMountDir(config.Mounts[1]); got != filepath.Join(tmpDir, "public") {
		t.Errorf("Expected mount dir relative to config, got %s", got)
	}
}

func TestLoadConfig_PartialAdminKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "admin.toml")

	content := `[admin]
enable = true

[[mount]]
prefix = "/static"`

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	config, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error: %v", err)
	}
	if !config.Admin.Enable || !config.Admin.PrivateOnly || !config.Admin.Metrics {
		t.Errorf("Expected omitted admin keys to keep defaults, got %+v", config.Admin)
	}

	content = `[admin]
private_only = false

[[mount]]
prefix = "/static"`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	config, err = LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error: %v", err)
	}
	if config.Admin.PrivateOnly {
		t.Error("Expected explicit private_only = false to be kept")
	}
	if !config.Admin.Enable || !config.Admin.Metrics {
		t.Errorf("Expected enable and metrics defaults, got %+v", config.Admin)
	}
}

func TestLoadConfig_RelativePath(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configFile, []byte("[[mount]]\nprefix = \"/\""), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	os.Chdir(tmpDir)

	if _, err := LoadConfig("config.toml"); err != nil {
		t.Errorf("Expected no error for relative path: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvListenAddr, "10.0.0.1:8000")

	config := &Config{}
	config.ApplyDefaults()
	config.ApplyEnv()

	if config.Server.ListenAddr != "10.0.0.1:8000" {
		t.Errorf("Expected listen address from env, got %s", config.Server.ListenAddr)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	if err := os.WriteFile(envFile, []byte(EnvVerbose+"=true\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	t.Setenv(EnvVerbose, "")
	os.Unsetenv(EnvVerbose)

	if err := LoadEnvFiles(filepath.Join(tmpDir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadEnvFiles() error = %v", err)
	}

	if !VerboseFromEnv() {
		t.Error("Expected verbose flag to be loaded from .env file")
	}
}

func TestLoadEnvFiles_NoFiles(t *testing.T) {
	if err := LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Expected missing env files to be ignored, got %v", err)
	}
}

func TestSerializeConfig(t *testing.T) {
	config := &Config{
		Mounts: []*MountConfig{{Prefix: "/static", IndexFile: "index.html"}},
	}
	config.ApplyDefaults()

	buf, err := config.SerializeConfig()
	if err != nil {
		t.Fatalf("Failed to serialize config: %v", err)
	}

	content := buf.String()
	if !strings.Contains(content, "listen_addr") || !strings.Contains(content, "/static") {
		t.Errorf("Expected serialized config to contain server and mount, got:\n%s", content)
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "test.toml")

	config := &Config{
		Mounts:             []*MountConfig{{Prefix: "/assets", StrictSlash: true}},
		_absConfigFilePath: configFile,
	}
	config.ApplyDefaults()

	if err := config.WriteConfig(); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	loaded, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if len(loaded.Mounts) != 1 || loaded.Mounts[0].Prefix != "/assets" || !loaded.Mounts[0].StrictSlash {
		t.Errorf("Unexpected mounts after reload: %+v", loaded.Mounts)
	}
}

func TestMountConfig_NormalizedPrefix(t *testing.T) {
	tests := []struct {
		prefix   string
		expected string
	}{
		{"/", ""},
		{"/static", "/static"},
		{"/static/", "/static"},
		{"/static//", "/static"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			m := &MountConfig{Prefix: tt.prefix}
			if got := m.NormalizedPrefix(); got != tt.expected {
				t.Errorf("NormalizedPrefix() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMountConfig_FallbackMode(t *testing.T) {
	if got := (&MountConfig{}).FallbackMode(); got != FallbackNotFound {
		t.Errorf("Expected default fallback %s, got %s", FallbackNotFound, got)
	}
	if got := (&MountConfig{Fallback: FallbackIndex}).FallbackMode(); got != FallbackIndex {
		t.Errorf("Expected fallback %s, got %s", FallbackIndex, got)
	}
}

func TestApplyDefaults_GlobalRateLimitBurst(t *testing.T) {
	cfg := &Config{Server: &ServerConfig{RateLimit: &RateLimitConfig{RPS: 5}}}
	cfg.ApplyDefaults()
	if cfg.Server.RateLimit.GlobalBurst != 0 {
		t.Errorf("Expected no global burst without global_rps, got %d", cfg.Server.RateLimit.GlobalBurst)
	}

	cfg = &Config{Server: &ServerConfig{RateLimit: &RateLimitConfig{RPS: 5, GlobalRPS: 50}}}
	cfg.ApplyDefaults()
	if cfg.Server.RateLimit.GlobalBurst != DefaultRateLimitBurst {
		t.Errorf("Expected default global burst, got %d", cfg.Server.RateLimit.GlobalBurst)
	}
}
