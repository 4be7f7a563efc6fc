package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	config := &Config{
		Mounts: []*MountConfig{
			{Prefix: "/static", IndexFile: "index.html"},
		},
		_absConfigFilePath: filepath.Join(t.TempDir(), "config.toml"),
	}
	config.ApplyDefaults()
	return config
}

func requireFieldError(t *testing.T, err error, fieldPath string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected validation error for %s, got nil", fieldPath)
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	for _, e := range verrs {
		if e.FieldPath == fieldPath {
			return
		}
	}
	t.Errorf("Expected error for field %s, got: %v", fieldPath, err)
}

func TestValidateConfig_Success(t *testing.T) {
	if err := validConfig(t).ValidateConfig(); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

func TestValidateConfig_MissingServer(t *testing.T) {
	config := &Config{}

	requireFieldError(t, config.ValidateConfig(), "server")
}

func TestValidateConfig_NoMounts(t *testing.T) {
	config := validConfig(t)
	config.Mounts = nil

	requireFieldError(t, config.ValidateConfig(), "mount")
}

func TestValidateConfig_InvalidListenAddr(t *testing.T) {
	config := validConfig(t)
	config.Server.ListenAddr = "not-an-address"

	requireFieldError(t, config.ValidateConfig(), "server.listen_addr")
}

func TestValidateConfig_NegativeRateLimit(t *testing.T) {
	config := validConfig(t)
	config.Server.RateLimit.RPS = -1

	requireFieldError(t, config.ValidateConfig(), "server.rate_limit.rps")
}

func TestValidateMounts_InvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"static", "/a/../b", "/a//b", "/files/*", "/{id}", ""} {
		t.Run(prefix, func(t *testing.T) {
			config := validConfig(t)
			config.Mounts[0].Prefix = prefix

			requireFieldError(t, config.ValidateConfig(), "mount.0.prefix")
		})
	}
}

func TestValidateMounts_DuplicatePrefix(t *testing.T) {
	config := validConfig(t)
	config.Mounts = append(config.Mounts, &MountConfig{Prefix: "/static/"})

	requireFieldError(t, config.ValidateConfig(), "prefix")
}

func TestValidateMounts_SamePrefixDifferentTables(t *testing.T) {
	config := validConfig(t)
	config.Mounts = append(config.Mounts, &MountConfig{Prefix: "/assets"})

	if err := config.ValidateConfig(); err != nil {
		t.Errorf("Expected two distinct prefixes to be valid, got: %v", err)
	}
}

func TestValidateMounts_ReservedPrefix(t *testing.T) {
	config := validConfig(t)
	config.Mounts[0].Prefix = "/api/v1/static"

	requireFieldError(t, config.ValidateConfig(), "prefix")

	config.Admin.Enable = false
	config.Admin.Metrics = false
	if err := config.ValidateConfig(); err != nil {
		t.Errorf("Expected reserved prefix to be allowed without admin, got: %v", err)
	}
}

func TestValidateMounts_InvalidFallback(t *testing.T) {
	config := validConfig(t)
	config.Mounts[0].Fallback = "redirect"

	requireFieldError(t, config.ValidateConfig(), "mount.0.fallback")
}

func TestValidateMounts_IndexFallbackRequiresIndexFile(t *testing.T) {
	config := validConfig(t)
	config.Mounts[0].Fallback = FallbackIndex
	config.Mounts[0].IndexFile = ""

	requireFieldError(t, config.ValidateConfig(), "index_file")
}

func TestValidateMounts_TemplateFallbackRequiresTemplate(t *testing.T) {
	config := validConfig(t)
	config.Mounts[0].Fallback = FallbackTemplate

	requireFieldError(t, config.ValidateConfig(), "fallback_template")
}

func TestValidateMounts_UnclosedTemplatePlaceholder(t *testing.T) {
	config := validConfig(t)
	config.Mounts[0].Fallback = FallbackTemplate
	config.Mounts[0].FallbackTemplate = "missing {{path"

	requireFieldError(t, config.ValidateConfig(), "fallback_template")
}

func TestValidateMounts_InvalidFallbackStatus(t *testing.T) {
	config := validConfig(t)
	config.Mounts[0].Fallback = FallbackTemplate
	config.Mounts[0].FallbackTemplate = "gone"
	config.Mounts[0].FallbackStatus = 42

	requireFieldError(t, config.ValidateConfig(), "mount.0.fallback_status")
}

func TestValidateMounts_Directory(t *testing.T) {
	config := validConfig(t)
	dir := config.GetConfigDir()

	config.Mounts[0].Dir = "missing"
	requireFieldError(t, config.ValidateConfig(), "dir")

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	config.Mounts[0].Dir = "file.txt"
	requireFieldError(t, config.ValidateConfig(), "dir")

	if err := os.Mkdir(filepath.Join(dir, "public"), 0755); err != nil {
		t.Fatalf("Failed to create test dir: %v", err)
	}
	config.Mounts[0].Dir = "public"
	if err := config.ValidateConfig(); err != nil {
		t.Errorf("Expected existing directory to be valid, got: %v", err)
	}
}

func TestIsValidMountPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		valid  bool
	}{
		{"/", true},
		{"/static", true},
		{"/static/", true},
		{"/static/v2", true},
		{"static", false},
		{"", false},
		{"/../etc", false},
		{"/./x", false},
		{"/a//b", false},
		{"/a/*", false},
		{"/{name}", false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := IsValidMountPrefix(tt.prefix); got != tt.valid {
				t.Errorf("IsValidMountPrefix(%q) = %v, want %v", tt.prefix, got, tt.valid)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{ItemName: "/static", FieldPath: "prefix", Message: "duplicate mount prefix: /static"},
		{FieldPath: "server.listen_addr", Message: "field is required"},
	}

	expected := "validation failed with 2 error(s):\n" +
		"  1. [/static] prefix: duplicate mount prefix: /static\n" +
		"  2. server.listen_addr: field is required\n"
	if got := errs.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}
