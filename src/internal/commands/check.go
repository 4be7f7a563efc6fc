package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/maksimkurb/keen-embed/src/internal/config"
	"github.com/maksimkurb/keen-embed/src/internal/domain"
)

// CheckCommand validates the configuration, loads every mount and prints the
// effective configuration.
type CheckCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	quiet bool
}

func CreateCheckCommand() *CheckCommand {
	return &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}
}

func (c *CheckCommand) Name() string {
	return c.fs.Name()
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.BoolVar(&c.quiet, "quiet", false, "Do not print the effective configuration")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *CheckCommand) Run() error {
	deps, err := domain.NewAppDependencies(c.cfg, c.ctx.Assets)
	if err != nil {
		return err
	}

	out := c.ctx.stdout()
	for _, m := range deps.Mounts() {
		if index := m.Config.IndexFile; index != "" {
			if _, ok := m.Table.Get(strings.Trim(index, "/")); !ok {
				return fmt.Errorf("mount %s: index file %s not found", m.DisplayPrefix(), index)
			}
		}
		fmt.Fprintf(out, "OK   %s: %d assets (%s)\n", m.DisplayPrefix(), m.Table.Len(), m.Config.Source())
	}

	if c.quiet {
		return nil
	}

	buf, err := c.cfg.SerializeConfig()
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	fmt.Fprintf(out, "\n# Effective configuration\n%s", buf.String())
	return nil
}
