package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/framelabel/pkg/adapters/logger"
	"github.com/user/framelabel/pkg/mocks"
	"github.com/user/framelabel/pkg/pipeline"
	"github.com/user/framelabel/pkg/ports"
	"github.com/user/framelabel/pkg/slicer"
)

// mockExtractStage is a mock for the extract stage.
type mockExtractStage struct {
	inputs []pipeline.ExtractInput
	errs   map[string]error
	result func(input pipeline.ExtractInput) pipeline.ExtractResult
}

func (m *mockExtractStage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	m.inputs = append(m.inputs, input)
	if err := m.errs[input.VideoPath]; err != nil {
		return pipeline.ExtractResult{VideoPath: input.VideoPath, Sheet: input.Sheet}, err
	}
	if m.result != nil {
		return m.result(input), nil
	}
	return pipeline.ExtractResult{
		VideoPath: input.VideoPath,
		Sheet:     input.Sheet,
		Clips: []pipeline.ClipOutcome{
			{Request: slicer.ClipRequest{Row: 1, Repetition: 1, Start: 0, End: 9}, Status: pipeline.ClipSaved, Frames: 10},
			{Request: slicer.ClipRequest{Row: 1, Repetition: 2}, Status: pipeline.ClipSkipped},
		},
	}, nil
}

func TestOrchestrator_RunConfiguredJobs(t *testing.T) {
	stage := &mockExtractStage{}
	orch := New(stage, mocks.NewWorkbook(), mocks.NewFileSystem(), logger.NewNoop())

	config := DefaultConfig()
	config.Workbook = "labels.xlsx"
	config.VideoDir = "videos"
	config.Container = "mp4"
	config.Quality = 20
	config.Jobs = []Job{
		{Sheet: "Session1", Video: "a.mov"},
		{Sheet: "Session2", Video: "/data/b.avi"},
	}

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stage.inputs) != 2 {
		t.Fatalf("expected 2 stage runs, got %d", len(stage.inputs))
	}
	if stage.inputs[0].VideoPath != filepath.Join("videos", "a.mov") {
		t.Errorf("expected relative video joined with video dir, got %s", stage.inputs[0].VideoPath)
	}
	if stage.inputs[1].VideoPath != "/data/b.avi" {
		t.Errorf("expected absolute video kept, got %s", stage.inputs[1].VideoPath)
	}
	in := stage.inputs[0]
	if in.Sheet != "Session1" || in.OutputDir != "clips" || in.Container != "mp4" || in.Quality != 20 {
		t.Errorf("unexpected stage input %+v", in)
	}
	if result.Count(pipeline.ClipSaved) != 2 || result.Count(pipeline.ClipSkipped) != 2 {
		t.Errorf("unexpected totals: %d saved, %d skipped", result.Count(pipeline.ClipSaved), result.Count(pipeline.ClipSkipped))
	}
}

func TestOrchestrator_FailedVideoDoesNotStopRun(t *testing.T) {
	stage := &mockExtractStage{errs: map[string]error{
		filepath.Join("videos", "broken.mp4"): errors.New("cannot open"),
	}}
	log := mocks.NewLogger()
	orch := New(stage, mocks.NewWorkbook(), mocks.NewFileSystem(), log)

	config := DefaultConfig()
	config.VideoDir = "videos"
	config.Jobs = []Job{
		{Sheet: "S1", Video: "broken.mp4"},
		{Sheet: "S2", Video: "fine.mp4"},
	}

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Jobs) != 2 {
		t.Fatalf("expected both jobs recorded, got %d", len(result.Jobs))
	}
	if result.FailedJobs() != 1 || result.Jobs[0].Err == nil {
		t.Error("expected the first job to be recorded as failed")
	}
	if result.Jobs[1].Err != nil {
		t.Errorf("second job should succeed, got %v", result.Jobs[1].Err)
	}
	if !log.Contains(ports.LevelError, "broken.mp4") {
		t.Error("expected failure to be logged")
	}
}

func TestOrchestrator_PairsSheetsWithVideos(t *testing.T) {
	stage := &mockExtractStage{}
	workbook := mocks.NewWorkbook()
	workbook.Put("labels.xlsx", ports.Sheet{Name: "squat"})
	workbook.Put("labels.xlsx", ports.Sheet{Name: "lunge"})
	workbook.Put("labels.xlsx", ports.Sheet{Name: "notes"})
	fs := mocks.NewFileSystem()
	fs.AddFile(filepath.Join("videos", "squat.MP4"), nil)
	fs.AddFile(filepath.Join("videos", "lunge.mov"), nil)
	fs.AddFile(filepath.Join("videos", "notes.txt"), nil)
	orch := New(stage, workbook, fs, logger.NewNoop())

	config := DefaultConfig()
	config.Workbook = "labels.xlsx"
	config.VideoDir = "videos"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 paired jobs, got %d", len(result.Jobs))
	}
	if result.Jobs[0].Job != (Job{Sheet: "lunge", Video: "lunge.mov"}) {
		t.Errorf("unexpected first job %+v", result.Jobs[0].Job)
	}
	if result.Jobs[1].Job != (Job{Sheet: "squat", Video: "squat.MP4"}) {
		t.Errorf("unexpected second job %+v", result.Jobs[1].Job)
	}
}

func TestOrchestrator_Cancelled(t *testing.T) {
	stage := &mockExtractStage{}
	orch := New(stage, mocks.NewWorkbook(), mocks.NewFileSystem(), logger.NewNoop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := DefaultConfig()
	config.Jobs = []Job{{Sheet: "S1", Video: "a.mp4"}}

	_, err := orch.Run(ctx, config)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(stage.inputs) != 0 {
		t.Error("no job should run after cancellation")
	}
}

func TestOrchestrator_MissingWorkbook(t *testing.T) {
	orch := New(&mockExtractStage{}, mocks.NewWorkbook(), mocks.NewFileSystem(), logger.NewNoop())

	config := DefaultConfig()
	config.Workbook = "missing.xlsx"

	if _, err := orch.Run(context.Background(), config); err == nil {
		t.Error("expected error for unreadable workbook")
	}
}

func TestRunResult_Summary(t *testing.T) {
	stage := &mockExtractStage{errs: map[string]error{"b.mp4": errors.New("cannot open")}}
	orch := New(stage, mocks.NewWorkbook(), mocks.NewFileSystem(), logger.NewNoop())

	config := DefaultConfig()
	config.Workbook = "labels.xlsx"
	config.Container = "mov"
	config.Jobs = []Job{{Sheet: "A", Video: "a.mp4"}, {Sheet: "B", Video: "b.mp4"}}

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary := result.Summary(config)

	if summary.Settings.Container != "mov" || summary.Workbook != "labels.xlsx" {
		t.Errorf("unexpected summary header %+v", summary)
	}
	if len(summary.Videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(summary.Videos))
	}
	a := summary.Videos[0]
	if a.Saved != 1 || a.Skipped != 1 || len(a.Notes) != 1 {
		t.Errorf("unexpected video summary %+v", a)
	}
	if summary.Videos[1].Error == "" || summary.Videos[1].Video != "b.mp4" {
		t.Errorf("expected failed video to carry its error, got %+v", summary.Videos[1])
	}
}
