package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framelabel/pkg/adapters/ffmpegsource"
	"github.com/user/framelabel/pkg/adapters/filesink"
	"github.com/user/framelabel/pkg/adapters/ggrenderer"
	"github.com/user/framelabel/pkg/adapters/logger"
	"github.com/user/framelabel/pkg/adapters/nullsink"
	"github.com/user/framelabel/pkg/adapters/osfilesystem"
	"github.com/user/framelabel/pkg/adapters/teaui"
	"github.com/user/framelabel/pkg/adapters/xlsxbook"
	"github.com/user/framelabel/pkg/config"
	"github.com/user/framelabel/pkg/labeler"
	"github.com/user/framelabel/pkg/ports"
)

func labelCommand() *cli.Command {
	return &cli.Command{
		Name:      "label",
		Usage:     l10n.T("Step through a video and record repetition ranges"),
		ArgsUsage: l10n.T("[video file or folder]"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "labels", Usage: l10n.T("Workbook receiving the recorded ranges")},
			&cli.StringFlag{Name: "snapshots", Usage: l10n.T("Folder for frame snapshots; empty disables them")},
			&cli.IntFlag{Name: "snapshot-width", Usage: l10n.T("Snapshot width in pixels (0 keeps the frame width)")},
			&cli.IntFlag{Name: "preview-width", Usage: l10n.T("Frame preview width in terminal columns (0 hides it)")},
			&cli.StringFlag{Name: "log-file", Usage: l10n.T("File receiving log output while the terminal UI runs")},
		},
		Action: runLabel,
	}
}

func runLabel(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	applyLabelFlags(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := requireFFmpeg(); err != nil {
		return err
	}

	log, closeLog, err := labelLogger(c, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	if cfg.Label.SnapshotFont != "" {
		if err := renderer.LoadFont(cfg.Label.SnapshotFont); err != nil {
			return err
		}
	}

	var sink ports.SnapshotSink = nullsink.New()
	if cfg.Label.SnapshotDir != "" {
		fileSink := filesink.New(cfg.Label.SnapshotDir, fs, renderer)
		if cfg.Label.SnapshotJPEG() {
			fileSink.WithJPEG(90)
		}
		sink = fileSink
	}
	snapshotter := labeler.NewSnapshotter(renderer, sink, cfg.Label.SnapshotWidth).WithTheme(cfg.Label.SnapshotTheme())

	scheduler := teaui.NewScheduler()
	opener := ffmpegsource.NewOpener(newProber(log), log)
	controller := labeler.New(cfg.ToLabelerConfig(), opener, fs, scheduler, xlsxbook.New(fs), snapshotter, log)

	open, err := openCommand(c.Args().First())
	if err != nil {
		return err
	}
	return teaui.Run(c.Context, controller, scheduler, open, cfg.ToTUIConfig(), log)
}

func applyLabelFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("labels") {
		cfg.Label.LabelsPath = c.String("labels")
	}
	if c.IsSet("snapshots") {
		cfg.Label.SnapshotDir = c.String("snapshots")
	}
	if c.IsSet("snapshot-width") {
		cfg.Label.SnapshotWidth = c.Int("snapshot-width")
	}
	if c.IsSet("preview-width") {
		cfg.Label.PreviewWidth = c.Int("preview-width")
	}
	if c.IsSet("log-file") {
		cfg.Label.LogFile = c.String("log-file")
	}
}

// labelLogger writes to a file because the terminal UI owns the screen.
func labelLogger(c *cli.Context, cfg config.Config) (ports.Logger, func(), error) {
	if c.Bool("quiet") || cfg.Label.LogFile == "" {
		return logger.NewNoop(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Label.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger.NewWriter(ports.ParseLogLevel(cfg.LogLevel), f), func() { f.Close() }, nil
}

// openCommand picks OpenFolder or OpenFile for path, or nothing when empty.
func openCommand(path string) (labeler.Command, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return labeler.OpenFolder{Path: path}, nil
	}
	return labeler.OpenFile{Path: path}, nil
}
