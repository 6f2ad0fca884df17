package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	t Translator
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	return &MarkdownFormatter{t: buildOptions(opts).translate}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.t
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Slicing Summary"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Workbook"), s.Workbook)
	fmt.Fprintf(&b, "- %s: %s\n", t("Output"), s.OutputDir)
	container := s.Settings.Container
	if container == "" {
		container = t("same as source")
	}
	fmt.Fprintf(&b, "- %s: %s\n", t("Container"), container)
	if s.Settings.Quality > 0 {
		fmt.Fprintf(&b, "- %s: %d\n", t("Quality (CRF)"), s.Settings.Quality)
	}

	totals := s.Totals()
	fmt.Fprintf(&b, "\n## %s\n\n", t("Totals"))
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", t("Written"), t("Truncated"), t("Empty"), t("Skipped"), t("Failed"))
	b.WriteString("|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n", totals.Written(), totals.Truncated, totals.Empty, totals.Skipped, totals.Failed)

	fmt.Fprintf(&b, "\n## %s\n", t("Videos"))
	for _, v := range s.Videos {
		fmt.Fprintf(&b, "\n### %s (%s)\n\n", filepath.Base(v.Video), v.Sheet)
		if v.Error != "" {
			fmt.Fprintf(&b, "**%s**: %s\n", t("Error"), v.Error)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", t("Clip folder"), v.ClipDir)
		fmt.Fprintf(&b, "- %s: %d @ %.2f fps\n", t("Frames"), v.FrameCount, v.FrameRate)
		fmt.Fprintf(&b, "- %s: %d\n", t("Repetitions"), v.MaxRepetition)
		fmt.Fprintf(&b, "- %s: %d, %s: %d, %s: %d, %s: %d, %s: %d\n",
			t("Written"), v.Written(), t("Truncated"), v.Truncated, t("Empty"), v.Empty, t("Skipped"), v.Skipped, t("Failed"), v.Failed)
		if len(v.Notes) > 0 {
			fmt.Fprintf(&b, "\n%s:\n\n", t("Notes"))
			for _, note := range v.Notes {
				fmt.Fprintf(&b, "- %s\n", note)
			}
		}
	}

	return b.String()
}
