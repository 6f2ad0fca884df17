package ffmpegsource

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/user/framelabel/pkg/adapters/logger"
)

// makeTestVideo renders a 2 second 10 fps test pattern. Frame i is
// distinguishable through the burned-in frame number of testsrc.
func makeTestVideo(t *testing.T) string {
	t.Helper()
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not available")
	}
	path := filepath.Join(t.TempDir(), "pattern.mp4")
	cmd := exec.Command(ffmpegPath, "-y", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=size=64x48:rate=10:duration=2",
		"-c:v", "libx264", "-pix_fmt", "yuv420p", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("cannot create test video: %v: %s", err, out)
	}
	return path
}

func TestSource_OpenAndRead(t *testing.T) {
	path := makeTestVideo(t)
	opener := NewOpener(NewProber(), logger.NewNoop())

	src, err := opener.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	info := src.Info()
	if info.FrameCount != 20 || info.FrameRate != 10 {
		t.Errorf("expected 20 frames at 10 fps, got %d at %v", info.FrameCount, info.FrameRate)
	}
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("expected 64x48, got %dx%d", info.Width, info.Height)
	}

	img, err := src.Frame(7)
	if err != nil {
		t.Fatalf("Frame(7) failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("unexpected frame size %v", b)
	}
	if _, err := src.Frame(3); err != nil {
		t.Errorf("backward Frame(3) failed: %v", err)
	}
	if _, err := src.Frame(20); err == nil {
		t.Error("expected error past the last frame")
	}
}

func TestSource_SequentialUntilEOF(t *testing.T) {
	path := makeTestVideo(t)
	opener := NewOpener(NewProber(), logger.NewNoop())

	src, err := opener.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if err := src.Seek(15); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	read := 0
	for i := 0; i < 10; i++ {
		_, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read++
	}
	if read != 5 {
		t.Errorf("expected 5 frames from 15 to the end, got %d", read)
	}
}

func TestSource_CachedFrameMovesPosition(t *testing.T) {
	path := makeTestVideo(t)
	opener := NewOpener(NewProber(), logger.NewNoop())

	opened, err := opener.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer opened.Close()
	src := opened.(*Source)

	if _, err := src.Frame(7); err != nil {
		t.Fatalf("Frame(7) failed: %v", err)
	}
	if err := src.Seek(15); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if _, err := src.Frame(7); err != nil {
		t.Fatalf("cached Frame(7) failed: %v", err)
	}
	if src.pos != 8 {
		t.Errorf("expected position 8 after Frame(7), got %d", src.pos)
	}
	if _, err := src.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if src.cached != 8 {
		t.Errorf("expected Next to return frame 8, got %d", src.cached)
	}
}

func TestOpener_MissingFile(t *testing.T) {
	if _, err := FindFFmpeg(); err != nil {
		t.Skip("ffmpeg not available")
	}
	opener := NewOpener(NewProber(), logger.NewNoop())

	if _, err := opener.Open(context.Background(), filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for a missing file")
	}
}
