package summarizer

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter renders a Summary as a terminal table, one row per video.
type TableFormatter struct {
	t Translator
}

// NewTableFormatter creates a TableFormatter.
func NewTableFormatter(opts ...Option) *TableFormatter {
	return &TableFormatter{t: buildOptions(opts).translate}
}

// Format implements Formatter.
func (f *TableFormatter) Format(s *Summary) string {
	t := f.t
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{t("Video"), t("Sheet"), t("Written"), t("Truncated"), t("Empty"), t("Skipped"), t("Failed"), t("Status")})

	for _, v := range s.Videos {
		status := t("ok")
		if v.Error != "" {
			status = t("error")
		}
		tw.AppendRow(table.Row{filepath.Base(v.Video), v.Sheet, v.Written(), v.Truncated, v.Empty, v.Skipped, v.Failed, status})
	}

	totals := s.Totals()
	tw.AppendFooter(table.Row{t("Total"), "", totals.Written(), totals.Truncated, totals.Empty, totals.Skipped, totals.Failed,
		fmt.Sprintf("%d/%d", len(s.Videos)-s.FailedVideos(), len(s.Videos))})

	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignLeft}, {Number: 2, Align: text.AlignLeft}}
	for i := 3; i <= 7; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
