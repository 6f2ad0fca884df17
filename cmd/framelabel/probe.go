package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"

	"github.com/user/framelabel/pkg/playback"
)

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Show frame count, rate and size of videos"),
		ArgsUsage: l10n.T("video..."),
		Action:    runProbe,
	}
}

func runProbe(c *cli.Context) error {
	if !c.Args().Present() {
		return cli.Exit(l10n.T("At least one video is required"), 2)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	prober := newProber(newLogger(c, cfg))

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{l10n.T("Video"), l10n.T("Container"), l10n.T("Codec"), l10n.T("Size"), l10n.T("Frames"), l10n.T("FPS"), l10n.T("Duration")})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	failed := 0
	for _, path := range c.Args().Slice() {
		info, err := prober.Probe(c.Context, path)
		if err != nil {
			failed++
			tw.AppendRow(table.Row{path, "", "", "", "", "", err.Error()})
			continue
		}
		tw.AppendRow(table.Row{
			path,
			info.Container,
			info.Codec,
			fmt.Sprintf("%dx%d", info.Width, info.Height),
			info.FrameCount,
			fmt.Sprintf("%.3f", info.FrameRate),
			playback.Clock(info.DurationSeconds()),
		})
	}
	fmt.Println(tw.Render())

	if failed > 0 {
		return cli.Exit(l10n.F("%d of %d videos could not be probed", failed, c.Args().Len()), 1)
	}
	return nil
}
