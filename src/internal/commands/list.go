package commands

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/maksimkurb/keen-embed/src/internal/domain"
)

// ListCommand prints the assets of every mount.
type ListCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies

	prefix string
}

func CreateListCommand() *ListCommand {
	return &ListCommand{
		fs: flag.NewFlagSet("list", flag.ExitOnError),
	}
}

func (c *ListCommand) Name() string {
	return c.fs.Name()
}

func (c *ListCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.StringVar(&c.prefix, "prefix", "", "Only list assets of the mount with this prefix")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}

	c.deps, err = domain.NewAppDependencies(cfg, ctx.Assets)
	return err
}

func (c *ListCommand) Run() error {
	mounts := c.deps.Mounts()
	if c.prefix != "" {
		m, ok := c.deps.MountByPrefix(c.prefix)
		if !ok {
			return fmt.Errorf("mount %s is not configured", c.prefix)
		}
		mounts = []*domain.Mount{m}
	}

	w := tabwriter.NewWriter(c.ctx.stdout(), 0, 0, 2, ' ', 0)
	for i, m := range mounts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Mount %s (%s, %d assets)\n", m.DisplayPrefix(), m.Config.Source(), m.Table.Len())
		fmt.Fprintln(w, "PATH\tSIZE\tCONTENT TYPE\tETAG")
		for _, p := range m.Table.Paths() {
			f, _ := m.Table.Get(p)
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", m.Prefix()+"/"+f.Path, f.Size(), f.ContentType, f.ETag())
		}
	}
	return w.Flush()
}
