package orchestrator

import (
	"fmt"

	"github.com/user/framelabel/pkg/pipeline"
	"github.com/user/framelabel/pkg/summarizer"
)

// Summary converts a run into a summarizer.Summary.
func (r RunResult) Summary(config Config) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithRun(r.Workbook, r.OutputDir).
		WithSettings(summarizer.Settings{Container: config.Container, Quality: config.Quality})

	for _, job := range r.Jobs {
		v := summarizer.VideoSummary{
			Video:         job.Extract.VideoPath,
			Sheet:         job.Job.Sheet,
			ClipDir:       job.Extract.ClipDir,
			FrameCount:    job.Extract.FrameCount,
			FrameRate:     job.Extract.FrameRate,
			MaxRepetition: job.Extract.MaxRepetition,
			Saved:         job.Extract.Count(pipeline.ClipSaved),
			Truncated:     job.Extract.Count(pipeline.ClipTruncated),
			Empty:         job.Extract.Count(pipeline.ClipEmpty),
			Skipped:       job.Extract.Count(pipeline.ClipSkipped),
			Failed:        job.Extract.Count(pipeline.ClipFailed),
		}
		if v.Video == "" {
			v.Video = job.Job.Video
		}
		if job.Err != nil {
			v.Error = job.Err.Error()
		}
		for _, c := range job.Extract.Clips {
			switch c.Status {
			case pipeline.ClipSkipped, pipeline.ClipEmpty, pipeline.ClipFailed:
				v.Notes = append(v.Notes, fmt.Sprintf("row %d rep %d: %s", c.Request.Row, c.Request.Repetition, c.Reason))
			}
		}
		b.AddVideo(v)
	}
	return b.Build()
}
