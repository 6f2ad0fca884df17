package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framelabel/pkg/adapters/ffmpegencoder"
	"github.com/user/framelabel/pkg/adapters/ffmpegsource"
	"github.com/user/framelabel/pkg/adapters/osfilesystem"
	"github.com/user/framelabel/pkg/adapters/xlsxbook"
	"github.com/user/framelabel/pkg/config"
	"github.com/user/framelabel/pkg/orchestrator"
	"github.com/user/framelabel/pkg/stages/extract"
	"github.com/user/framelabel/pkg/summarizer"
)

func sliceCommand() *cli.Command {
	return &cli.Command{
		Name:      "slice",
		Usage:     l10n.T("Cut clips from videos using frame ranges in a workbook"),
		ArgsUsage: l10n.T("[workbook]"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "videos", Aliases: []string{"v"}, Usage: l10n.T("Folder containing the source videos")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Folder receiving the clip folders")},
			&cli.StringFlag{Name: "container", Usage: l10n.T("Output container (mp4, mov, avi); default keeps the source container")},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("Video CRF value (0-51, lower is better)")},
			&cli.StringSliceFlag{Name: "job", Aliases: []string{"j"}, Usage: l10n.T("Sheet and video pair as sheet=video; repeatable")},
			&cli.StringFlag{Name: "report", Usage: l10n.T("Output execution summary to file (Markdown format)")},
		},
		Action: runSlice,
	}
}

func runSlice(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := applySliceFlags(c, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Slice.Workbook == "" {
		return cli.Exit(l10n.T("A workbook is required"), 2)
	}
	if err := requireFFmpeg(); err != nil {
		return err
	}

	log := newLogger(c, cfg)
	ctx := c.Context
	stopWatch := context.AfterFunc(ctx, func() {
		log.Warn(l10n.T("Interrupted, shutting down..."))
	})
	defer stopWatch()

	fs := osfilesystem.New()
	book := xlsxbook.New(fs)
	opener := ffmpegsource.NewOpener(newProber(log), log)
	stage := extract.NewStage(book, opener, ffmpegencoder.New(), fs, log)
	orch := orchestrator.New(stage, book, fs, log)

	oc := cfg.ToOrchestratorConfig()
	result, err := orch.Run(ctx, oc)
	if err != nil {
		return err
	}

	summary := result.Summary(oc)
	fmt.Println(summarizer.NewTableFormatter(summarizer.WithTranslator(l10n.T)).Format(summary))

	if cfg.Slice.Report != "" {
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(summarizer.WithTranslator(l10n.T)), fs)
		if err := writer.Write(cfg.Slice.Report, summary); err != nil {
			log.Error(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cfg.Slice.Report))
		}
	}

	if failed := result.FailedJobs(); failed > 0 {
		return cli.Exit(l10n.F("%d of %d videos could not be sliced", failed, len(result.Jobs)), 1)
	}
	return nil
}

func applySliceFlags(c *cli.Context, cfg *config.Config) error {
	if c.Args().Present() {
		cfg.Slice.Workbook = c.Args().First()
	}
	if c.IsSet("videos") {
		cfg.Slice.VideoDir = c.String("videos")
	}
	if c.IsSet("output") {
		cfg.Slice.OutputDir = c.String("output")
	}
	if c.IsSet("container") {
		cfg.Slice.Container = c.String("container")
	}
	if c.IsSet("quality") {
		cfg.Slice.Quality = c.Int("quality")
	}
	if c.IsSet("report") {
		cfg.Slice.Report = c.String("report")
	}
	if c.IsSet("job") {
		jobs, err := parseJobs(c.StringSlice("job"))
		if err != nil {
			return err
		}
		cfg.Slice.Jobs = jobs
	}
	return nil
}

// parseJobs parses "sheet=video" pairs.
func parseJobs(values []string) ([]config.JobConfig, error) {
	jobs := make([]config.JobConfig, 0, len(values))
	for _, v := range values {
		sheet, video, ok := strings.Cut(v, "=")
		sheet, video = strings.TrimSpace(sheet), strings.TrimSpace(video)
		if !ok || sheet == "" || video == "" {
			return nil, fmt.Errorf("invalid job %q: expected sheet=video", v)
		}
		jobs = append(jobs, config.JobConfig{Sheet: sheet, Video: video})
	}
	return jobs, nil
}
