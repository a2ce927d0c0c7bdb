package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alkime/vaultlaunch/internal/config"
	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/internal/logger"
)

// CLI defines the vaultlaunch command structure.
type CLI struct {
	SettingsPath string `name:"settings-path" optional:"" type:"path" help:"Settings file (default: $XDG_CONFIG_HOME/vaultlaunch/settings.yaml)"`

	// Default command (runs when no subcommand given)
	Open OpenCmd `cmd:"" default:"withargs" help:"Open a directory in an editor"`

	Editors  EditorsCmd  `cmd:"" help:"List supported editors"`
	Sync     SyncCmd     `cmd:"" help:"Show palette commands to register or unregister"`
	Settings SettingsCmd `cmd:"" help:"Show or change settings"`
	Pick     PickCmd     `cmd:"" help:"Pick an editor interactively"`
	Serve    ServeCmd    `cmd:"" help:"Serve the launch API on localhost"`
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("vaultlaunch"),
		kong.Description("Open a notes vault in an external editor."),
		kong.UsageOnError(),
		kong.Vars{"editors": editor.Names()},
	}, opts...)

	return kong.New(cli, opts...)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.SetupLogger(cfg, os.Stderr)

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	parser, err := newParser(cli)
	if err != nil {
		slog.Error("Failed to build command line parser", "error", err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	app, err := newApp(cfg, cli.SettingsPath)
	parser.FatalIfErrorf(err)

	err = ctx.Run(app)
	ctx.FatalIfErrorf(err)
}
