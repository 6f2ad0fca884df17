// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/user/framelabel/pkg/adapters/teaui"
	"github.com/user/framelabel/pkg/labeler"
	"github.com/user/framelabel/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for framelabel.
type Config struct {
	LogLevel   string `yaml:"log_level"`
	FFmpegPath string `yaml:"ffmpeg_path"`

	Slice SliceConfig `yaml:"slice"`
	Label LabelConfig `yaml:"label"`
}

// SliceConfig configures the clip slicer.
type SliceConfig struct {
	Workbook  string      `yaml:"workbook"`
	VideoDir  string      `yaml:"video_dir"`
	OutputDir string      `yaml:"output_dir"`
	Container string      `yaml:"container"` // empty keeps the source container
	Quality   int         `yaml:"quality"`   // CRF 0-51, 0 selects the encoder default
	Report    string      `yaml:"report"`    // Markdown summary path, empty disables it
	Jobs      []JobConfig `yaml:"jobs"`
}

// JobConfig pairs a sheet with a video.
type JobConfig struct {
	Sheet string `yaml:"sheet"`
	Video string `yaml:"video"`
}

// LabelConfig configures the frame labeler.
type LabelConfig struct {
	Extensions     []string    `yaml:"extensions"`
	LabelsPath     string      `yaml:"labels_path"`
	SnapshotDir    string      `yaml:"snapshot_dir"` // empty disables snapshots
	SnapshotWidth  int         `yaml:"snapshot_width"`
	SnapshotFormat string      `yaml:"snapshot_format"` // png or jpeg
	SnapshotFont   string      `yaml:"snapshot_font"`   // TrueType file, empty uses the built-in face
	PreviewWidth   int         `yaml:"preview_width"`
	LogFile        string      `yaml:"log_file"`
	Theme          ThemeConfig `yaml:"theme"`
}

// ThemeConfig represents snapshot colors as hex strings.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	TextColor       string `yaml:"text_color"`
	BarColor        string `yaml:"bar_color"`
	BarFillColor    string `yaml:"bar_fill_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		LogLevel: "info",

		Slice: SliceConfig{
			OutputDir: "clips",
		},

		Label: LabelConfig{
			Extensions:     []string{".mp4", ".avi", ".mov"},
			LabelsPath:     "labels.xlsx",
			SnapshotWidth:  640,
			SnapshotFormat: "png",
			PreviewWidth:   64,
			LogFile:        "framelabel.log",
			Theme: ThemeConfig{
				BackgroundColor: "#1e1e1e",
				TextColor:       "#ffffff",
				BarColor:        "#3c3c3c",
				BarFillColor:    "#4caf50",
			},
		},
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports settings no component can work with.
func (c Config) Validate() error {
	if c.Slice.Quality < 0 || c.Slice.Quality > 51 {
		return fmt.Errorf("slice.quality must be between 0 and 51, got %d", c.Slice.Quality)
	}
	switch strings.ToLower(c.Slice.Container) {
	case "", "mp4", "mov", "m4v", "avi":
	default:
		return fmt.Errorf("slice.container %q is not supported", c.Slice.Container)
	}
	for i, job := range c.Slice.Jobs {
		if job.Sheet == "" || job.Video == "" {
			return fmt.Errorf("slice.jobs[%d] needs both sheet and video", i)
		}
	}
	switch strings.ToLower(c.Label.SnapshotFormat) {
	case "", "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("label.snapshot_format %q is not supported", c.Label.SnapshotFormat)
	}
	if c.Label.SnapshotWidth < 0 {
		return fmt.Errorf("label.snapshot_width must not be negative")
	}
	return nil
}

// SnapshotJPEG reports whether snapshots are saved as JPEG.
func (c LabelConfig) SnapshotJPEG() bool {
	f := strings.ToLower(c.SnapshotFormat)
	return f == "jpg" || f == "jpeg"
}

// ParseColor parses a "#rrggbb" string. Malformed values give black.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// ToOrchestratorConfig converts the slice section to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	oc := orchestrator.DefaultConfig()
	oc.Workbook = c.Slice.Workbook
	oc.VideoDir = c.Slice.VideoDir
	if c.Slice.OutputDir != "" {
		oc.OutputDir = c.Slice.OutputDir
	}
	oc.Container = strings.ToLower(c.Slice.Container)
	oc.Quality = c.Slice.Quality
	if len(c.Label.Extensions) > 0 {
		oc.Extensions = c.Label.Extensions
	}
	for _, job := range c.Slice.Jobs {
		oc.Jobs = append(oc.Jobs, orchestrator.Job{Sheet: job.Sheet, Video: job.Video})
	}
	return oc
}

// ToLabelerConfig converts the label section to labeler.Config.
func (c Config) ToLabelerConfig() labeler.Config {
	lc := labeler.DefaultConfig()
	if len(c.Label.Extensions) > 0 {
		lc.Extensions = c.Label.Extensions
	}
	if c.Label.LabelsPath != "" {
		lc.LabelsPath = c.Label.LabelsPath
	}
	return lc
}

// ToTUIConfig converts the label section to teaui.Config.
func (c Config) ToTUIConfig() teaui.Config {
	return teaui.Config{PreviewWidth: c.Label.PreviewWidth}
}

// SnapshotTheme converts the theme colors to labeler.SnapshotTheme.
// Empty entries keep the default.
func (c LabelConfig) SnapshotTheme() labeler.SnapshotTheme {
	theme := labeler.DefaultSnapshotTheme()
	if c.Theme.BackgroundColor != "" {
		theme.BackgroundColor = ParseColor(c.Theme.BackgroundColor)
	}
	if c.Theme.TextColor != "" {
		theme.TextColor = ParseColor(c.Theme.TextColor)
	}
	if c.Theme.BarColor != "" {
		theme.BarColor = ParseColor(c.Theme.BarColor)
	}
	if c.Theme.BarFillColor != "" {
		theme.BarFillColor = ParseColor(c.Theme.BarFillColor)
	}
	return theme
}
