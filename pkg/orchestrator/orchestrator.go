// Package orchestrator runs the clip slicing jobs in order.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/user/framelabel/pkg/pipeline"
	"github.com/user/framelabel/pkg/ports"
)

// Job pairs a sheet with the video its ranges refer to.
type Job struct {
	Sheet string
	Video string // file name inside VideoDir, or an absolute path
}

// Config contains all configuration for a slicing run.
type Config struct {
	Workbook  string
	VideoDir  string
	OutputDir string
	Container string // empty keeps each source's container
	Quality   int

	// Jobs run in order. When empty, every sheet is paired with the video
	// in VideoDir whose name without extension equals the sheet name.
	Jobs []Job

	// Extensions recognised when pairing sheets with videos.
	Extensions []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputDir:  "clips",
		Extensions: []string{".mp4", ".avi", ".mov"},
	}
}

// Orchestrator coordinates the execution of the extract stage over all jobs.
type Orchestrator struct {
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	workbook     ports.WorkbookReader
	fs           ports.FileSystem
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	workbook ports.WorkbookReader,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		extractStage: extractStage,
		workbook:     workbook,
		fs:           fs,
		logger:       logger,
	}
}

// Run executes every job. A job whose sheet or video cannot be read is
// recorded as failed and the run moves on; only cancellation or a failure
// to resolve the job list stops it.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info(l10n.F("Reading workbook %s", config.Workbook))

	jobs, err := o.resolveJobs(config)
	if err != nil {
		o.logger.Error(l10n.F("Failed to resolve jobs: %s", err))
		return RunResult{}, fmt.Errorf("resolve jobs: %w", err)
	}
	if len(jobs) == 0 {
		o.logger.Warn(l10n.T("No sheet matches a video; nothing to slice"))
	}

	result := RunResult{Workbook: config.Workbook, OutputDir: config.OutputDir}
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		videoPath := job.Video
		if !filepath.IsAbs(videoPath) && config.VideoDir != "" {
			videoPath = filepath.Join(config.VideoDir, videoPath)
		}
		o.logger.Info(l10n.F("Job %d/%d: sheet %s, video %s", i+1, len(jobs), job.Sheet, videoPath))

		input := pipeline.ExtractInput{
			Workbook:  config.Workbook,
			Sheet:     job.Sheet,
			VideoPath: videoPath,
			OutputDir: config.OutputDir,
			Container: config.Container,
			Quality:   config.Quality,
		}
		extracted, err := o.extractStage.Execute(ctx, input)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				result.Jobs = append(result.Jobs, JobResult{Job: job, Extract: extracted, Err: ctxErr})
				return result, ctxErr
			}
			o.logger.Error(l10n.F("Failed to process %s: %s", videoPath, err))
		}
		result.Jobs = append(result.Jobs, JobResult{Job: job, Extract: extracted, Err: err})
	}

	o.logger.Info(l10n.F("Slicing completed: %d clips written, %d skipped, %d failed jobs",
		result.Count(pipeline.ClipSaved)+result.Count(pipeline.ClipTruncated),
		result.Count(pipeline.ClipSkipped),
		result.FailedJobs()))
	return result, nil
}

func (o *Orchestrator) resolveJobs(config Config) ([]Job, error) {
	if len(config.Jobs) > 0 {
		return config.Jobs, nil
	}

	sheets, err := o.workbook.SheetNames(config.Workbook)
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	dir := config.VideoDir
	if dir == "" {
		dir = "."
	}
	files, err := o.fs.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	byStem := make(map[string]string)
	for _, name := range files {
		if hasExtension(name, config.Extensions) {
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			if _, seen := byStem[stem]; !seen {
				byStem[stem] = name
			}
		}
	}

	var jobs []Job
	for _, sheet := range sheets {
		video, ok := byStem[sheet]
		if !ok {
			o.logger.Warn(l10n.F("Sheet %s has no matching video in %s", sheet, config.VideoDir))
			continue
		}
		jobs = append(jobs, Job{Sheet: sheet, Video: video})
	}
	return jobs, nil
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// JobResult is the outcome of one job. Err is set when the job could not run.
type JobResult struct {
	Job     Job
	Extract pipeline.ExtractResult
	Err     error
}

// RunResult contains the results of a slicing run for summary generation.
type RunResult struct {
	Workbook  string
	OutputDir string
	Jobs      []JobResult
}

// Count returns the number of clip outcomes with status across all jobs.
func (r RunResult) Count(status pipeline.ClipStatus) int {
	n := 0
	for _, j := range r.Jobs {
		n += j.Extract.Count(status)
	}
	return n
}

// FailedJobs returns the number of jobs that could not run.
func (r RunResult) FailedJobs() int {
	n := 0
	for _, j := range r.Jobs {
		if j.Err != nil {
			n++
		}
	}
	return n
}
