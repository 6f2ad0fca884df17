package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/framelabel/pkg/mocks"
)

func testSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Workbook:    "labels.xlsx",
		OutputDir:   "clips",
		Videos: []VideoSummary{
			{
				Video:         "videos/squat.mp4",
				Sheet:         "Squat",
				ClipDir:       "clips/Clips_squat.mp4",
				FrameCount:    150,
				FrameRate:     30,
				MaxRepetition: 3,
				Saved:         4,
				Truncated:     1,
				Skipped:       1,
				Notes:         []string{"row 2 rep 3: missing range"},
			},
			{
				Video: "videos/lunge.avi",
				Sheet: "Lunge",
				Error: "cannot open video",
			},
		},
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	result := NewMarkdownFormatter().Format(testSummary())

	checks := []string{
		"# Slicing Summary",
		"2024-01-15 10:30:00",
		"labels.xlsx",
		"same as source",
		"| 5 | 1 | 0 | 1 | 0 |",
		"### squat.mp4 (Squat)",
		"150 @ 30.00 fps",
		"row 2 rep 3: missing range",
		"### lunge.avi (Lunge)",
		"cannot open video",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Slicing Summary": "切り出しサマリー",
			"Written":         "書き出し",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(testSummary())

	if !strings.Contains(result, "# 切り出しサマリー") {
		t.Error("expected translated heading")
	}
	if !strings.Contains(result, "書き出し") {
		t.Error("expected translated column")
	}
}

func TestTableFormatter_Format(t *testing.T) {
	result := NewTableFormatter().Format(testSummary())

	for _, check := range []string{"squat.mp4", "Squat", "lunge.avi", "error", "1/2"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected table to contain %q", check)
		}
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	writer := NewWriter(FormatFunc(func(s *Summary) string { return "report for " + s.Workbook }), fs)

	if err := writer.Write("clips/summary.md", testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile("clips/summary.md")
	if !ok {
		t.Fatal("expected summary file")
	}
	if string(data) != "report for labels.xlsx" {
		t.Errorf("unexpected content %q", data)
	}
}
