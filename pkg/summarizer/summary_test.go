package summarizer

import (
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder(t *testing.T) {
	summary := NewBuilder().
		WithRun("labels.xlsx", "clips").
		WithSettings(Settings{Container: "mp4", Quality: 20}).
		AddVideo(VideoSummary{Video: "a.mp4", Saved: 2, Truncated: 1, Skipped: 3}).
		AddVideo(VideoSummary{Video: "b.mp4", Error: "cannot open"}).
		Build()

	if summary.Workbook != "labels.xlsx" || summary.OutputDir != "clips" {
		t.Errorf("unexpected run info %q %q", summary.Workbook, summary.OutputDir)
	}
	if summary.Settings.Container != "mp4" || summary.Settings.Quality != 20 {
		t.Errorf("unexpected settings %+v", summary.Settings)
	}
	if len(summary.Videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(summary.Videos))
	}

	totals := summary.Totals()
	if totals.Written() != 3 || totals.Skipped != 3 {
		t.Errorf("unexpected totals %+v", totals)
	}
	if summary.FailedVideos() != 1 {
		t.Errorf("expected 1 failed video, got %d", summary.FailedVideos())
	}
}
