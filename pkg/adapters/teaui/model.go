// Package teaui is the terminal front-end of the labeler, built on bubbletea.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/framelabel/pkg/labeler"
	"github.com/user/framelabel/pkg/ports"
)

const (
	defaultPreviewWidth = 64
	defaultBarWidth     = 60
	helpLine            = "space play/pause  a/d step  [ ] mark  n new row  w save  p snapshot  ↑/↓ video  q quit"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Config contains the terminal front-end settings.
type Config struct {
	PreviewWidth int // columns used by the frame preview, 0 hides it
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{PreviewWidth: defaultPreviewWidth}
}

// scrubBar is where the scrub bar was last drawn.
type scrubBar struct {
	x, y, width int
}

// frameAt maps a click at column x on row y to a frame in [0, last].
func (b scrubBar) frameAt(x, y, last int) (int, bool) {
	if b.width <= 0 || y != b.y || x < b.x || x >= b.x+b.width {
		return 0, false
	}
	if b.width == 1 || last <= 0 {
		return 0, true
	}
	return ((x-b.x)*last + (b.width-1)/2) / (b.width - 1), true
}

// Model is the bubbletea model. It implements labeler.Display: the
// controller pushes a View after every command and Model draws the latest one.
type Model struct {
	ctx        context.Context
	controller *labeler.Controller
	scheduler  *Scheduler
	logger     ports.Logger
	config     Config

	view     labeler.View
	width    int
	bar      scrubBar
	quitting bool
}

// NewModel creates a Model and attaches it to controller as its display.
func NewModel(ctx context.Context, controller *labeler.Controller, scheduler *Scheduler, config Config, logger ports.Logger) *Model {
	m := &Model{
		ctx:        ctx,
		controller: controller,
		scheduler:  scheduler,
		logger:     logger.WithComponent("tui"),
		config:     config,
	}
	controller.SetDisplay(m)
	return m
}

// Render stores view for the next View call.
func (m *Model) Render(view labeler.View) {
	m.view = view
}

// Init returns the tick armed before the program started, if any.
func (m *Model) Init() tea.Cmd {
	return m.scheduler.take()
}

// Update translates terminal events into labeler commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		if !m.scheduler.current(msg.gen) {
			return m, nil
		}
		m.dispatch(labeler.Tick{})
		m.scheduler.rearm()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.controller.Close()
			return m, tea.Quit
		}
		if cmd, ok := keyCommand(msg.String(), m.view); ok {
			m.dispatch(cmd)
		}

	case tea.MouseMsg:
		if cmd, ok := m.mouseCommand(msg); ok {
			m.dispatch(cmd)
		}
	}

	return m, m.scheduler.take()
}

func (m *Model) dispatch(cmd labeler.Command) {
	if err := m.controller.HandleCommand(m.ctx, cmd); err != nil && !errors.Is(err, labeler.ErrNoVideo) {
		m.logger.Debug("Command %T failed: %s", cmd, err)
	}
}

func (m *Model) mouseCommand(msg tea.MouseMsg) (labeler.Command, bool) {
	if !m.view.ControlsEnabled || msg.Button != tea.MouseButtonLeft {
		return nil, false
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return nil, false
	}
	frame, ok := m.bar.frameAt(msg.X, msg.Y, m.view.ScrubMax)
	if !ok {
		return nil, false
	}
	return labeler.Seek{Frame: frame}, true
}

// keyCommand maps a key to a command. Playback keys are inert until a video
// is loaded.
func keyCommand(key string, v labeler.View) (labeler.Command, bool) {
	switch key {
	case "up", "k":
		if len(v.Videos) > 0 && v.Selected > 0 {
			return labeler.SelectVideo{ID: v.Selected - 1}, true
		}
		return nil, false
	case "down", "j":
		if len(v.Videos) > 0 && v.Selected < len(v.Videos)-1 {
			return labeler.SelectVideo{ID: v.Selected + 1}, true
		}
		return nil, false
	}

	if !v.ControlsEnabled {
		return nil, false
	}
	switch key {
	case " ", "space":
		return labeler.TogglePlay{}, true
	case "a", "left":
		return labeler.StepBackward{}, true
	case "d", "right":
		return labeler.StepForward{}, true
	case "home":
		return labeler.Seek{Frame: 0}, true
	case "end":
		return labeler.Seek{Frame: v.ScrubMax}, true
	case "[":
		return labeler.MarkStart{}, true
	case "]":
		return labeler.MarkEnd{}, true
	case "n":
		return labeler.NewRow{}, true
	case "w":
		return labeler.SaveLabels{}, true
	case "p":
		return labeler.Snapshot{}, true
	}
	return nil, false
}

// View draws the latest labeler state.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	title := m.view.Title
	if title == "" {
		title = mutedStyle.Render("no video loaded")
	}
	state := "paused"
	if m.view.Playing {
		state = "playing"
	}
	lines = append(lines, titleStyle.Render("framelabel")+"  "+title+"  "+mutedStyle.Render(state))

	if m.view.Frame != nil {
		lines = append(lines, Preview(m.view.Frame, m.previewWidth())...)
	}

	barWidth := m.barWidth()
	m.bar = scrubBar{x: 1, y: len(lines), width: barWidth}
	lines = append(lines, "["+renderBar(m.view.Current, m.view.ScrubMax, barWidth, m.view.ControlsEnabled)+"]")

	frame := ""
	if m.view.ControlsEnabled {
		frame = fmt.Sprintf("  frame %d/%d", m.view.Current, m.view.ScrubMax)
	}
	lines = append(lines, m.view.Readout+frame)

	if m.view.ControlsEnabled {
		labels := fmt.Sprintf("row %d  repetitions %d", m.view.Row, m.view.Labeled)
		if m.view.PendingStart >= 0 {
			labels += markStyle.Render(fmt.Sprintf("  start %d", m.view.PendingStart))
		}
		lines = append(lines, labels)
	}

	for i, name := range m.view.Videos {
		marker := "  "
		if i == m.view.Selected {
			marker = "> "
		}
		lines = append(lines, marker+name)
	}

	if m.view.Status != "" {
		lines = append(lines, statusStyle.Render(m.view.Status))
	}
	lines = append(lines, mutedStyle.Render(helpLine))

	return strings.Join(lines, "\n")
}

func (m *Model) previewWidth() int {
	w := m.config.PreviewWidth
	if m.width > 0 && w > m.width {
		w = m.width
	}
	return w
}

func (m *Model) barWidth() int {
	if m.width > 2 {
		return m.width - 2
	}
	return defaultBarWidth
}

// renderBar draws a bar width cells wide with the handle at current.
func renderBar(current, last, width int, enabled bool) string {
	if !enabled {
		return strings.Repeat("·", width)
	}
	pos := 0
	if last > 0 && width > 1 {
		pos = current * (width - 1) / last
	}
	return strings.Repeat("=", pos) + "|" + strings.Repeat("-", width-pos-1)
}

// Run opens the video or folder named by open, if any, and drives the
// labeler until the user quits or ctx is cancelled.
func Run(ctx context.Context, controller *labeler.Controller, scheduler *Scheduler, open labeler.Command, config Config, logger ports.Logger) error {
	m := NewModel(ctx, controller, scheduler, config, logger)
	if open != nil {
		// Failures stay on the status line; the user can pick another video.
		_ = controller.HandleCommand(ctx, open)
	}
	defer controller.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

var _ labeler.Display = (*Model)(nil)
