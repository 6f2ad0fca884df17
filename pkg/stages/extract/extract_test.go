package extract

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/framelabel/pkg/mocks"
	"github.com/user/framelabel/pkg/pipeline"
	"github.com/user/framelabel/pkg/ports"
)

type fixture struct {
	workbook *mocks.Workbook
	opener   *mocks.VideoOpener
	encoder  *mocks.VideoEncoder
	fs       *mocks.FileSystem
	logger   *mocks.Logger
	stage    *Stage
}

func newFixture(frames int) *fixture {
	f := &fixture{
		workbook: mocks.NewWorkbook(),
		opener:   mocks.NewVideoOpener(),
		encoder:  &mocks.VideoEncoder{},
		fs:       mocks.NewFileSystem(),
		logger:   mocks.NewLogger(),
	}
	f.opener.Add(mocks.NewVideoSource("videos/squat.mp4", frames, 30))
	f.stage = NewStage(f.workbook, f.opener, f.encoder, f.fs, f.logger)
	return f
}

func input() pipeline.ExtractInput {
	return pipeline.ExtractInput{
		Workbook:  "labels.xlsx",
		Sheet:     "Squat",
		VideoPath: "videos/squat.mp4",
		OutputDir: "out",
	}
}

func TestStage_Execute(t *testing.T) {
	f := newFixture(100)
	f.workbook.Put("labels.xlsx", ports.Sheet{
		Name:   "Squat",
		Header: []string{"Repetition 1 Start", "Repetition 1 End", "Repetition 2 Start", "Repetition 2 End"},
		Rows: [][]string{
			{"10", "19", "30", "39"},
			{"50", "59", "", "70"},
		},
	})

	result, err := f.stage.Execute(context.Background(), input())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MaxRepetition != 2 {
		t.Errorf("expected max repetition 2, got %d", result.MaxRepetition)
	}
	if len(result.Clips) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(result.Clips))
	}
	if result.Written() != 3 || result.Count(pipeline.ClipSkipped) != 1 {
		t.Errorf("expected 3 written and 1 skipped, got %d and %d", result.Written(), result.Count(pipeline.ClipSkipped))
	}

	want := filepath.Join("out", "Clips_squat.mp4", "row1_rep1_frames_10_19.mp4")
	if result.Clips[0].Path != want {
		t.Errorf("expected %s, got %s", want, result.Clips[0].Path)
	}
	if _, ok := f.fs.GetFile(want); !ok {
		t.Errorf("expected %s to be written", want)
	}
	if result.Clips[0].Frames != 10 {
		t.Errorf("expected 10 frames, got %d", result.Clips[0].Frames)
	}

	skipped := result.Clips[3]
	if skipped.Status != pipeline.ClipSkipped || skipped.Request.Row != 2 || skipped.Request.Repetition != 2 {
		t.Errorf("unexpected skipped outcome %+v", skipped)
	}
	if !f.logger.Contains(ports.LevelWarn, "row 2 repetition 2") {
		t.Error("expected the skip to be logged")
	}
	if !f.opener.Sources["videos/squat.mp4"].Closed {
		t.Error("expected source to be closed")
	}
}

func TestStage_ShortSource(t *testing.T) {
	f := newFixture(15)
	f.workbook.Put("labels.xlsx", ports.Sheet{
		Name:   "Squat",
		Header: []string{"Repetition 1 Start", "Repetition 1 End", "Repetition 2 Start", "Repetition 2 End"},
		Rows:   [][]string{{"10", "19", "20", "25"}},
	})

	result, err := f.stage.Execute(context.Background(), input())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	truncated := result.Clips[0]
	if truncated.Status != pipeline.ClipTruncated || truncated.Frames != 5 {
		t.Errorf("expected truncated clip of 5 frames, got %+v", truncated)
	}
	empty := result.Clips[1]
	if empty.Status != pipeline.ClipEmpty || empty.Path != "" {
		t.Errorf("expected empty outcome, got %+v", empty)
	}
	if len(f.fs.GetAllFiles()) != 1 {
		t.Errorf("expected one file, got %d", len(f.fs.GetAllFiles()))
	}
}

func TestStage_ContainerOverride(t *testing.T) {
	f := newFixture(30)
	f.workbook.Put("labels.xlsx", ports.Sheet{
		Name:   "Squat",
		Header: []string{"Repetition 1 Start", "Repetition 1 End"},
		Rows:   [][]string{{"0", "4"}},
	})
	in := input()
	in.Container = "avi"
	in.Quality = 18

	result, err := f.stage.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Ext(result.Clips[0].Path) != ".avi" {
		t.Errorf("expected .avi clip, got %s", result.Clips[0].Path)
	}
	opts := f.encoder.Last().Options
	if opts.Container != "avi" || opts.Quality != 18 {
		t.Errorf("unexpected encoder options %+v", opts)
	}
}

func TestStage_UnreadableVideo(t *testing.T) {
	f := newFixture(30)
	f.workbook.Put("labels.xlsx", ports.Sheet{Name: "Squat", Header: []string{"Repetition 1 Start", "Repetition 1 End"}})
	f.opener.Errors["videos/squat.mp4"] = errors.New("invalid data found when processing input")

	_, err := f.stage.Execute(context.Background(), input())
	if !errors.Is(err, ErrOpenVideo) {
		t.Errorf("expected ErrOpenVideo, got %v", err)
	}
}

func TestStage_WriteFailureIsPerClip(t *testing.T) {
	f := newFixture(100)
	f.workbook.Put("labels.xlsx", ports.Sheet{
		Name:   "Squat",
		Header: []string{"Repetition 1 Start", "Repetition 1 End"},
		Rows:   [][]string{{"0", "4"}, {"5", "9"}},
	})
	calls := 0
	f.fs.WriteFileFunc = func(path string, data []byte) error {
		calls++
		if calls == 1 {
			return errors.New("disk full")
		}
		return nil
	}

	result, err := f.stage.Execute(context.Background(), input())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Clips[0].Status != pipeline.ClipFailed {
		t.Errorf("expected first clip to fail, got %v", result.Clips[0].Status)
	}
	if result.Clips[1].Status != pipeline.ClipSaved {
		t.Errorf("expected second clip to be saved, got %v", result.Clips[1].Status)
	}
}

func TestStage_RemovesStaleClips(t *testing.T) {
	f := newFixture(15)
	f.workbook.Put("labels.xlsx", ports.Sheet{
		Name:   "Squat",
		Header: []string{"Repetition 1 Start", "Repetition 1 End"},
		Rows:   [][]string{{"20", "25"}, {"0", "4"}},
	})
	dir := filepath.Join("out", "Clips_squat.mp4")
	pastEnd := filepath.Join(dir, "row1_rep1_frames_20_25.mp4")
	unwritable := filepath.Join(dir, "row2_rep1_frames_0_4.mp4")
	f.fs.AddFile(pastEnd, []byte("old"))
	f.fs.AddFile(unwritable, []byte("old"))
	f.fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}

	result, err := f.stage.Execute(context.Background(), input())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Clips[0].Status != pipeline.ClipEmpty || result.Clips[1].Status != pipeline.ClipFailed {
		t.Fatalf("unexpected outcomes %+v", result.Clips)
	}
	for _, path := range []string{pastEnd, unwritable} {
		if _, ok := f.fs.GetFile(path); ok {
			t.Errorf("expected stale %s to be removed", path)
		}
	}
	if !f.logger.Contains(ports.LevelInfo, "row1_rep1_frames_20_25") {
		t.Error("expected the removal to be logged")
	}
}
