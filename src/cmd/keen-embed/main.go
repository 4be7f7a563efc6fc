package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/keen-embed/src/frontend"
	"github.com/maksimkurb/keen-embed/src/internal/api"
	"github.com/maksimkurb/keen-embed/src/internal/commands"
	"github.com/maksimkurb/keen-embed/src/internal/config"
	"github.com/maksimkurb/keen-embed/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}
	var envFile string

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "/opt/etc/keen-embed/keen-embed.toml", "Path to configuration file")
	flag.StringVar(&envFile, "env-file", ".env", "Path to .env file with KEEN_EMBED_* overrides")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Embedded static asset server\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  serve                   Serve embedded assets and the admin API\n")
		fmt.Fprintf(os.Stderr, "  list                    List assets of every mount\n")
		fmt.Fprintf(os.Stderr, "  check                   Validate configuration and print effective settings\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if err := config.LoadEnvFiles(envFile); err != nil {
		log.Fatalf("%v", err)
	}

	if ctx.Verbose || config.VerboseFromEnv() {
		ctx.Verbose = true
		log.SetVerbose(true)
	}

	api.Version, api.Commit, api.Date = version, commit, date

	assets, err := frontend.DistFS()
	if err != nil {
		log.Fatalf("Failed to open embedded assets: %v", err)
	}
	ctx.Assets = assets

	cmds := []commands.Runner{
		commands.CreateServeCommand(),
		commands.CreateListCommand(),
		commands.CreateCheckCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
