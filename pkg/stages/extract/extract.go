// Package extract implements the clip extraction stage.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ideamans/go-l10n"
	"github.com/user/framelabel/pkg/pipeline"
	"github.com/user/framelabel/pkg/ports"
	"github.com/user/framelabel/pkg/slicer"
)

// ErrOpenVideo wraps failures to open the source video of a job.
var ErrOpenVideo = errors.New("extract: cannot open video")

// Stage cuts every repetition range of one sheet out of one video.
type Stage struct {
	workbook  ports.WorkbookReader
	opener    ports.VideoOpener
	extractor *slicer.Extractor
	fs        ports.FileSystem
	logger    ports.Logger
}

// NewStage creates a new extract stage.
func NewStage(workbook ports.WorkbookReader, opener ports.VideoOpener, encoder ports.VideoEncoder, fs ports.FileSystem, logger ports.Logger) *Stage {
	log := logger.WithComponent("extract")
	return &Stage{
		workbook:  workbook,
		opener:    opener,
		extractor: slicer.NewExtractor(encoder, log),
		fs:        fs,
		logger:    log,
	}
}

// Execute processes every row and repetition of the job. Per-clip problems
// are recorded in the result; only an unreadable sheet or video, or
// cancellation, returns an error.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{
		VideoPath: input.VideoPath,
		Sheet:     input.Sheet,
		ClipDir:   slicer.ClipDir(input.OutputDir, input.VideoPath),
	}

	sheet, err := s.workbook.ReadSheet(input.Workbook, input.Sheet)
	if err != nil {
		return result, fmt.Errorf("read sheet %q: %w", input.Sheet, err)
	}

	source, err := s.opener.Open(ctx, input.VideoPath)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %v", ErrOpenVideo, input.VideoPath, err)
	}
	defer source.Close()

	info := source.Info()
	result.FrameCount = info.FrameCount
	result.FrameRate = info.FrameRate
	result.MaxRepetition = slicer.MaxRepetition(sheet.Header)
	s.logger.Info(l10n.F("Slicing %s with sheet %s: %d rows, %d repetitions", filepath.Base(input.VideoPath), input.Sheet, len(sheet.Rows), result.MaxRepetition))

	if err := s.fs.MkdirAll(result.ClipDir); err != nil {
		return result, fmt.Errorf("create clip folder: %w", err)
	}

	container := input.Container
	if container == "" {
		container = slicer.ContainerOf(input.VideoPath)
	}
	opts := ports.EncoderOptions{Container: container, Quality: input.Quality}

	for _, entry := range slicer.Plan(sheet) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		outcome := s.runEntry(ctx, source, entry, opts, result.ClipDir)
		if ctx.Err() != nil && outcome.Status == pipeline.ClipFailed {
			return result, ctx.Err()
		}
		result.Clips = append(result.Clips, outcome)
	}

	s.logger.Info(l10n.F("Finished %s: %d clips written, %d skipped", filepath.Base(input.VideoPath), result.Written(), result.Count(pipeline.ClipSkipped)))
	return result, nil
}

func (s *Stage) runEntry(ctx context.Context, source ports.VideoSource, entry slicer.Entry, opts ports.EncoderOptions, dir string) pipeline.ClipOutcome {
	req := entry.Request
	outcome := pipeline.ClipOutcome{Request: req}

	if entry.Err != nil {
		s.logger.Warn(l10n.F("Skipping row %d repetition %d: %s", req.Row, req.Repetition, entry.Err))
		outcome.Status = pipeline.ClipSkipped
		outcome.Reason = entry.Err.Error()
		return outcome
	}

	path := filepath.Join(dir, slicer.ClipName(req, opts.Container))
	clip, err := s.extractor.Extract(ctx, source, req, opts)
	outcome.Frames = clip.Frames
	if err != nil {
		s.removeStale(path)
		s.logger.Error(l10n.F("Failed to extract row %d repetition %d: %s", req.Row, req.Repetition, err))
		outcome.Status = pipeline.ClipFailed
		outcome.Reason = err.Error()
		return outcome
	}

	if clip.Frames == 0 {
		s.logger.Warn(l10n.F("Row %d repetition %d starts at frame %d, past the end of the video; no clip written", req.Row, req.Repetition, req.Start))
		s.removeStale(path)
		outcome.Status = pipeline.ClipEmpty
		outcome.Reason = l10n.T("start is past the end of the video")
		return outcome
	}

	if err := s.fs.WriteFile(path, clip.Data); err != nil {
		s.logger.Error(l10n.F("Failed to write %s: %s", path, err))
		s.removeStale(path)
		outcome.Status = pipeline.ClipFailed
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.Path = path
	outcome.Bytes = int64(len(clip.Data))
	outcome.Status = pipeline.ClipSaved
	if clip.Truncated() {
		outcome.Status = pipeline.ClipTruncated
		s.logger.Warn(l10n.F("Video ended early: saved %d of %d frames to %s", clip.Frames, req.Len(), path))
	} else {
		s.logger.Info(l10n.F("Saved %s (%d frames)", path, clip.Frames))
	}
	return outcome
}

// removeStale deletes a clip left by an earlier run under a name this run
// did not produce.
func (s *Stage) removeStale(path string) {
	exists, err := s.fs.Exists(path)
	if err != nil || !exists {
		return
	}
	if err := s.fs.Remove(path); err != nil {
		s.logger.Warn(l10n.F("Failed to remove stale clip %s: %s", path, err))
		return
	}
	s.logger.Info(l10n.F("Removed stale clip %s", path))
}
