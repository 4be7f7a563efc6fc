// Package commands implements CLI command handlers for keen-embed.
//
// Each command implements the Runner interface:
//   - Init(): Parse arguments and load configuration
//   - Run(): Execute the command
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - serve: Serve the configured mounts and the admin API until SIGINT/SIGTERM
//   - list: Print the assets of every mount
//   - check: Validate the configuration and print the effective settings
//
// # Example Usage
//
//	cmd := commands.CreateServeCommand()
//	ctx := &commands.AppContext{
//	    ConfigPath: "/etc/keen-embed/keen-embed.toml",
//	    Assets:     assetsFS,
//	}
//	if err := cmd.Init(os.Args[2:], ctx); err != nil {
//	    log.Fatalf("Failed to initialize command: %v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("Failed to run command: %v", err)
//	}
package commands
