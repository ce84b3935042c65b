// Package cli implements the command-line interfaces of the three toolbelt
// binaries: markcat, decomment, and hop. Each binary has its own Run
// function; global flags, configuration, and logging setup are shared.
package cli

import (
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mhersch/toolbelt/internal/config"
	"github.com/mhersch/toolbelt/internal/logging"
	"github.com/mhersch/toolbelt/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// ErrRanWithErrors signals a run that completed but counted errors; mains
// translate it into a non-zero exit status without an extra message, since
// the diagnostics already went to stderr.
var ErrRanWithErrors = errors.New("completed with errors")

// globalFlags are shared by all three binaries.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable verbose output (info level logging)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug output (debug level logging, implies verbose)",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to an alternate config file",
		},
	}
}

// setup loads configuration and applies the global color and logging flags.
// Every binary's action calls it first.
func setup(cmd *cli.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	configureColors(cmd, cfg)
	configureLogging(cmd, cfg)

	return cfg, nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// configureColors applies the no-color flag and the configured color mode.
func configureColors(cmd *cli.Command, cfg *config.Config) {
	switch {
	case cmd.Bool("no-color"), cfg.Output.Color == "never":
		ui.DisableColors()
	case cfg.Output.Color == "always":
		ui.EnableColors()
	}
}

// configureLogging sets up the logging level based on flags and config.
func configureLogging(cmd *cli.Command, cfg *config.Config) {
	opts := logging.DefaultOptions()

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") || cfg.Output.Verbose {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))
}
