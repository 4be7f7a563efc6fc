package commands

import (
	"io"
	"io/fs"
	"os"

	"github.com/maksimkurb/keen-embed/src/internal/config"
	"github.com/maksimkurb/keen-embed/src/internal/errors"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	// Assets is the filesystem embedded into the binary, served by mounts without a dir.
	Assets fs.FS
	// Out receives command output; os.Stdout when nil.
	Out io.Writer
}

func (ctx *AppContext) stdout() io.Writer {
	if ctx.Out != nil {
		return ctx.Out
	}
	return os.Stdout
}

// loadAndValidateConfigOrFail loads configuration from file, applies
// environment and command line overrides and validates the result.
func loadAndValidateConfigOrFail(configPath string, overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	cfg.ApplyEnv()
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, errors.NewValidationError("configuration validation failed", err)
	}

	return cfg, nil
}
