// Package summarizer provides summary generation for slicing runs.
package summarizer

import "time"

// Summary contains all data collected during a slicing run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Workbook  string
	OutputDir string

	Settings Settings

	// Videos in job order
	Videos []VideoSummary
}

// Settings contains the slicing configuration.
type Settings struct {
	Container string // empty means each source's own container
	Quality   int
}

// VideoSummary describes one (sheet, video) job.
type VideoSummary struct {
	Video         string
	Sheet         string
	ClipDir       string
	FrameCount    int
	FrameRate     float64
	MaxRepetition int

	Saved     int
	Truncated int
	Empty     int
	Skipped   int
	Failed    int

	// Error is set when the job could not run at all.
	Error string

	// Notes lists skipped, empty and failed clips as "row r rep n: reason".
	Notes []string
}

// Written returns the number of clip files written for the video.
func (v VideoSummary) Written() int {
	return v.Saved + v.Truncated
}

// Totals sums the per-video counters.
func (s *Summary) Totals() VideoSummary {
	var t VideoSummary
	for _, v := range s.Videos {
		t.Saved += v.Saved
		t.Truncated += v.Truncated
		t.Empty += v.Empty
		t.Skipped += v.Skipped
		t.Failed += v.Failed
	}
	return t
}

// FailedVideos returns the number of videos whose job could not run.
func (s *Summary) FailedVideos() int {
	n := 0
	for _, v := range s.Videos {
		if v.Error != "" {
			n++
		}
	}
	return n
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRun sets the workbook and output folder.
func (b *Builder) WithRun(workbook, outputDir string) *Builder {
	b.summary.Workbook = workbook
	b.summary.OutputDir = outputDir
	return b
}

// WithSettings sets slicing settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddVideo appends a job summary.
func (b *Builder) AddVideo(video VideoSummary) *Builder {
	b.summary.Videos = append(b.summary.Videos, video)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
