package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "framelabel.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Slice.OutputDir != "clips" {
		t.Errorf("expected output dir clips, got %s", cfg.Slice.OutputDir)
	}
	if len(cfg.Label.Extensions) != 3 {
		t.Errorf("expected 3 extensions, got %v", cfg.Label.Extensions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
slice:
  workbook: ranges.xlsx
  video_dir: videos
  container: AVI
  quality: 18
  jobs:
    - sheet: squat
      video: squat_01.mp4
    - sheet: lunge
      video: /data/lunge.mov
label:
  labels_path: out/labels.xlsx
  snapshot_dir: shots
  theme:
    bar_fill_color: "#ff8000"
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.Slice.Workbook != "ranges.xlsx" {
		t.Errorf("unexpected top-level values: %+v", cfg)
	}
	if cfg.Slice.OutputDir != "clips" {
		t.Errorf("expected default output dir to survive, got %s", cfg.Slice.OutputDir)
	}
	if cfg.Label.SnapshotWidth != 640 {
		t.Errorf("expected default snapshot width, got %d", cfg.Label.SnapshotWidth)
	}

	oc := cfg.ToOrchestratorConfig()
	if oc.Container != "avi" || oc.Quality != 18 {
		t.Errorf("expected avi at quality 18, got %s at %d", oc.Container, oc.Quality)
	}
	if len(oc.Jobs) != 2 || oc.Jobs[1].Video != "/data/lunge.mov" {
		t.Errorf("unexpected jobs %+v", oc.Jobs)
	}

	lc := cfg.ToLabelerConfig()
	if lc.LabelsPath != "out/labels.xlsx" {
		t.Errorf("expected labels path override, got %s", lc.LabelsPath)
	}

	theme := cfg.Label.SnapshotTheme()
	if theme.BarFillColor != (color.RGBA{R: 255, G: 128, A: 255}) {
		t.Errorf("unexpected bar fill %v", theme.BarFillColor)
	}
	if theme.TextColor != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("expected default text color, got %v", theme.TextColor)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFromFile(writeConfig(t, "slice: [broken")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"quality", func(c *Config) { c.Slice.Quality = 60 }},
		{"container", func(c *Config) { c.Slice.Container = "mkv" }},
		{"job", func(c *Config) { c.Slice.Jobs = []JobConfig{{Sheet: "squat"}} }},
		{"snapshot format", func(c *Config) { c.Label.SnapshotFormat = "gif" }},
		{"snapshot width", func(c *Config) { c.Label.SnapshotWidth = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#4caf50", color.RGBA{R: 76, G: 175, B: 80, A: 255}},
		{"FFFFFF", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#fff", color.Black},
		{"#zzzzzz", color.Black},
		{"", color.Black},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapshotJPEG(t *testing.T) {
	if (LabelConfig{SnapshotFormat: "png"}).SnapshotJPEG() {
		t.Error("expected png not to be JPEG")
	}
	if !(LabelConfig{SnapshotFormat: "JPEG"}).SnapshotJPEG() {
		t.Error("expected JPEG")
	}
}
