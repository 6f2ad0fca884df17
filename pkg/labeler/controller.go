// Package labeler dispatches labeling commands onto a playback state and
// pushes the resulting view to a display.
package labeler

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/user/framelabel/pkg/playback"
	"github.com/user/framelabel/pkg/ports"
)

// ErrNoVideo is returned by commands that need an open video.
var ErrNoVideo = errors.New("labeler: no video loaded")

// View is everything a display needs to draw the labeler.
type View struct {
	Title           string // file name of the open video, empty when none
	Frame           image.Image
	Current         int
	FrameCount      int
	ScrubMax        int
	Readout         string
	Playing         bool
	ControlsEnabled bool

	Videos   []string // folder listing
	Selected int      // index into Videos, -1 when the open video is not listed

	PendingStart int // marked start frame, -1 when none
	Row          int // label book row receiving ranges
	Labeled      int // ranges recorded for the open video

	Status string
}

// Display draws a View. Render may dispatch commands back into the
// controller; a Seek arriving during Render is ignored.
type Display interface {
	Render(view View)
}

// Config contains the labeler settings.
type Config struct {
	Extensions []string // video extensions listed by OpenFolder, compared case-insensitively
	LabelsPath string   // workbook written by SaveLabels
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Extensions: []string{".mp4", ".avi", ".mov"},
		LabelsPath: "labels.xlsx",
	}
}

// Controller owns the playback state of the open video. It is driven from a
// single goroutine: the UI loop delivers both user commands and ticks.
type Controller struct {
	config      Config
	opener      ports.VideoOpener
	fs          ports.FileSystem
	scheduler   ports.Scheduler
	labels      ports.WorkbookWriter
	snapshotter *Snapshotter
	logger      ports.Logger

	display Display
	player  *playback.Player
	path    string

	folder   string
	videos   []string
	selected int

	book         *LabelBook
	pendingStart int
	status       string
	refreshing   bool
}

// New creates a Controller with no video loaded.
func New(
	config Config,
	opener ports.VideoOpener,
	fs ports.FileSystem,
	scheduler ports.Scheduler,
	labels ports.WorkbookWriter,
	snapshotter *Snapshotter,
	logger ports.Logger,
) *Controller {
	return &Controller{
		config:       config,
		opener:       opener,
		fs:           fs,
		scheduler:    scheduler,
		labels:       labels,
		snapshotter:  snapshotter,
		logger:       logger.WithComponent("labeler"),
		selected:     -1,
		book:         NewLabelBook(),
		pendingStart: -1,
	}
}

// SetDisplay attaches the display and draws the current state.
func (c *Controller) SetDisplay(d Display) {
	c.display = d
	c.refresh()
}

// Book returns the label book.
func (c *Controller) Book() *LabelBook {
	return c.book
}

// Player returns the playback state of the open video, or nil.
func (c *Controller) Player() *playback.Player {
	return c.player
}

// HandleCommand applies cmd and refreshes the display. Errors are also
// reported on the status line; commands needing a video are no-ops
// returning ErrNoVideo while none is loaded.
func (c *Controller) HandleCommand(ctx context.Context, cmd Command) error {
	if _, ok := cmd.(Seek); ok && c.refreshing {
		return nil
	}

	var err error
	switch cmd := cmd.(type) {
	case OpenFile:
		err = c.openFile(ctx, cmd.Path)
	case OpenFolder:
		err = c.openFolder(ctx, cmd.Path)
	case SelectVideo:
		err = c.selectVideo(ctx, cmd.ID)
	case Tick:
		c.tick()
		return nil
	default:
		if c.player == nil {
			return ErrNoVideo
		}
		err = c.handlePlayback(cmd)
	}

	if err != nil {
		c.status = err.Error()
	}
	c.refresh()
	return err
}

func (c *Controller) handlePlayback(cmd Command) error {
	switch cmd := cmd.(type) {
	case TogglePlay:
		if c.player.TogglePlay() {
			c.scheduler.Start(c.player.Period())
			c.status = l10n.T("Playing")
		} else {
			c.scheduler.Stop()
			c.status = l10n.T("Paused")
		}
	case StepForward:
		c.player.Step(1)
	case StepBackward:
		c.player.Step(-1)
	case Seek:
		c.player.Seek(cmd.Frame)
	case MarkStart:
		c.pendingStart = c.player.Current()
		c.status = l10n.F("Start marked at frame %d", c.pendingStart)
	case MarkEnd:
		return c.markEnd()
	case NewRow:
		row := c.book.NewRow(c.path)
		c.pendingStart = -1
		c.status = l10n.F("Labeling row %d", row)
	case SaveLabels:
		return c.saveLabels()
	case Snapshot:
		return c.snapshot()
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
	return nil
}

func (c *Controller) tick() {
	if c.player == nil || !c.player.Playing() {
		c.scheduler.Stop()
		return
	}
	if _, stopped := c.player.Tick(); stopped {
		c.scheduler.Stop()
		c.status = l10n.T("Reached the last frame")
	}
	c.refresh()
}

func (c *Controller) openFile(ctx context.Context, path string) error {
	c.selected = -1
	if c.folder != "" && filepath.Dir(path) == filepath.Clean(c.folder) {
		for i, name := range c.videos {
			if name == filepath.Base(path) {
				c.selected = i
			}
		}
	}
	return c.load(ctx, path)
}

func (c *Controller) openFolder(ctx context.Context, dir string) error {
	names, err := c.fs.ListFiles(dir)
	if err != nil {
		c.logger.Error(l10n.F("Failed to list %s: %s", dir, err))
		return fmt.Errorf("list %s: %w", dir, err)
	}

	var videos []string
	for _, name := range names {
		if c.isVideo(name) {
			videos = append(videos, name)
		}
	}
	if len(videos) == 0 {
		c.logger.Warn(l10n.F("No videos found in %s", dir))
		return fmt.Errorf("no videos found in %s", dir)
	}

	c.folder = dir
	c.videos = videos
	c.logger.Info(l10n.F("Found %d videos in %s", len(videos), dir))
	return c.selectVideo(ctx, 0)
}

func (c *Controller) selectVideo(ctx context.Context, id int) error {
	if id < 0 || id >= len(c.videos) {
		return fmt.Errorf("no video #%d in the folder listing", id)
	}
	c.selected = id
	return c.load(ctx, filepath.Join(c.folder, c.videos[id]))
}

func (c *Controller) isVideo(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.config.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// load releases the open video before opening path.
func (c *Controller) load(ctx context.Context, path string) error {
	c.release()

	player, err := playback.Open(ctx, c.opener, path)
	if err != nil {
		c.logger.Error(l10n.F("Failed to open %s: %s", path, err))
		return err
	}

	c.player = player
	c.path = path
	info := player.Info()
	c.logger.Info(l10n.F("Opened %s: %d frames at %.2f fps", filepath.Base(path), info.FrameCount, info.FrameRate))
	c.status = l10n.F("Loaded %s", filepath.Base(path))
	return nil
}

func (c *Controller) release() {
	c.scheduler.Stop()
	c.pendingStart = -1
	if c.player == nil {
		return
	}
	if err := c.player.Close(); err != nil {
		c.logger.Warn(l10n.F("Failed to close %s: %s", c.path, err))
	}
	c.player = nil
	c.path = ""
}

// Close releases the open video.
func (c *Controller) Close() {
	c.release()
}

func (c *Controller) markEnd() error {
	if c.pendingStart < 0 {
		return errors.New(l10n.T("mark a start frame first"))
	}
	end := c.player.Current()
	if end < c.pendingStart {
		return errors.New(l10n.F("end frame %d is before start frame %d", end, c.pendingStart))
	}
	row, rep := c.book.Add(c.path, Range{Start: c.pendingStart, End: end})
	c.logger.Info(l10n.F("Row %d repetition %d: frames %d..%d", row, rep, c.pendingStart, end))
	c.status = l10n.F("Recorded repetition %d: frames %d..%d", rep, c.pendingStart, end)
	c.pendingStart = -1
	return nil
}

func (c *Controller) saveLabels() error {
	sheets := c.book.Sheets()
	if len(sheets) == 0 {
		return errors.New(l10n.T("no labels to save"))
	}
	for _, sheet := range sheets {
		if err := c.labels.WriteSheet(c.config.LabelsPath, sheet); err != nil {
			c.logger.Error(l10n.F("Failed to save labels: %s", err))
			return fmt.Errorf("save labels: %w", err)
		}
	}
	c.logger.Info(l10n.F("Saved %d sheets to %s", len(sheets), c.config.LabelsPath))
	c.status = l10n.F("Labels saved to %s", c.config.LabelsPath)
	return nil
}

func (c *Controller) snapshot() error {
	if c.snapshotter == nil || !c.snapshotter.Enabled() {
		return errors.New(l10n.T("snapshots are disabled"))
	}
	frame, err := c.player.Frame()
	if err != nil {
		return err
	}
	img := c.snapshotter.Compose(frame, c.player.Readout(), c.player.Current(), c.player.Last())
	name := fmt.Sprintf("%s_frame_%06d", SheetName(c.path), c.player.Current())
	path, err := c.snapshotter.Save(name, img)
	if err != nil {
		c.logger.Error(l10n.F("Failed to save snapshot: %s", err))
		return fmt.Errorf("save snapshot: %w", err)
	}
	c.status = l10n.F("Snapshot saved to %s", path)
	return nil
}

// refresh pushes the current state to the display. Seek commands the
// display dispatches while rendering are dropped.
func (c *Controller) refresh() {
	if c.display == nil {
		return
	}
	prev := c.refreshing
	c.refreshing = true
	defer func() { c.refreshing = prev }()
	c.display.Render(c.view())
}

func (c *Controller) view() View {
	v := View{
		Videos:       c.videos,
		Selected:     c.selected,
		PendingStart: c.pendingStart,
		Status:       c.status,
	}
	if c.player == nil {
		v.Readout = playback.Readout(0, 0)
		return v
	}

	v.Title = filepath.Base(c.path)
	v.Current = c.player.Current()
	v.FrameCount = c.player.FrameCount()
	v.ScrubMax = c.player.Last()
	v.Readout = c.player.Readout()
	v.Playing = c.player.Playing()
	v.ControlsEnabled = true
	v.Row = len(c.book.Rows(c.path))
	if v.Row == 0 {
		v.Row = 1
	}
	v.Labeled = c.book.Count(c.path)

	frame, err := c.player.Frame()
	if err != nil {
		c.logger.Warn(l10n.F("Failed to decode frame %d: %s", v.Current, err))
		v.Status = err.Error()
	} else {
		v.Frame = frame
	}
	return v
}
