// Package main provides the CLI entry point for framelabel.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framelabel/pkg/adapters/ffmpegsource"
	"github.com/user/framelabel/pkg/adapters/logger"
	"github.com/user/framelabel/pkg/adapters/mp4probe"
	"github.com/user/framelabel/pkg/config"
	"github.com/user/framelabel/pkg/ports"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "framelabel",
		Usage:   l10n.T("Label video frames and slice labeled repetitions into clips"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("YAML configuration file"),
				Category: l10n.T("Configuration"),
			},
			&cli.StringFlag{
				Name:     "ffmpeg",
				Usage:    l10n.T("Path to ffmpeg executable"),
				EnvVars:  []string{"FFMPEG_PATH"},
				Category: l10n.T("Configuration"),
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Commands: []*cli.Command{
			labelCommand(),
			sliceCommand(),
			probeCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Println(l10n.F("framelabel version %s", version))
					return nil
				},
			},
		},
	}
}

// loadConfig reads the config file, if any, and applies the global flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if cfg.FFmpegPath != "" {
		ffmpegsource.SetFFmpegPath(cfg.FFmpegPath)
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
}

// newProber prefers reading MP4 boxes and falls back to ffprobe.
func newProber(log ports.Logger) ports.Prober {
	return mp4probe.New(ffmpegsource.NewProber(), log)
}

func requireFFmpeg() error {
	if !ffmpegsource.IsFFmpegAvailable() {
		return cli.Exit(l10n.T("ffmpeg was not found; install it or pass --ffmpeg"), 2)
	}
	return nil
}
