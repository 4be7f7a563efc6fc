package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/maksimkurb/keen-embed/src/internal/api"
	"github.com/maksimkurb/keen-embed/src/internal/components"
	"github.com/maksimkurb/keen-embed/src/internal/config"
	"github.com/maksimkurb/keen-embed/src/internal/domain"
	"github.com/maksimkurb/keen-embed/src/internal/errors"
	"github.com/maksimkurb/keen-embed/src/internal/log"
)

// ServeCommand serves the configured mounts until interrupted.
type ServeCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	deps   *domain.AppDependencies
	server *components.HTTPServer

	listenAddr string
}

func CreateServeCommand() *ServeCommand {
	return &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.StringVar(&c.listenAddr, "listen", "", "Override listen address (e.g., 0.0.0.0:8080)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath, func(cfg *config.Config) {
		if c.listenAddr != "" {
			cfg.Server.ListenAddr = c.listenAddr
		}
	})
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.deps, err = domain.NewAppDependencies(cfg, ctx.Assets); err != nil {
		return err
	}

	router, err := api.NewRouter(cfg, c.deps)
	if err != nil {
		return err
	}
	c.server = components.NewHTTPServer(cfg.Server, router)

	return nil
}

func (c *ServeCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.serve(ctx)
}

// serve runs the HTTP server until ctx is cancelled or the server fails.
func (c *ServeCommand) serve(ctx context.Context) error {
	for _, m := range c.deps.Mounts() {
		log.Infof("Serving %d assets at %s (%s)", m.Table.Len(), m.DisplayPrefix(), m.Config.Source())
	}
	if c.cfg.Admin.Enable {
		log.Infof("Admin API available at /api/v1")
		if c.cfg.Admin.PrivateOnly {
			log.Infof("Admin access restricted to private subnets only")
		}
	}

	if err := c.server.Start(); err != nil {
		return err
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		select {
		case err := <-c.server.Err():
			return errors.NewInternalError("server error", err)
		case <-gctx.Done():
			return nil
		}
	})
	group.Go(func() error {
		<-gctx.Done()
		log.Infof("Shutting down server...")
		return c.server.Stop()
	})

	return group.Wait()
}
