package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/stopsignal/internal/errors"
	"github.com/Iron-Ham/stopsignal/internal/experiment"
	"github.com/Iron-Ham/stopsignal/internal/logging"
	"github.com/Iron-Ham/stopsignal/internal/record"
	"github.com/Iron-Ham/stopsignal/internal/tui/keymap"
	"github.com/Iron-Ham/stopsignal/internal/tui/msg"
	"github.com/Iron-Ham/stopsignal/internal/tui/styles"
	"github.com/Iron-Ham/stopsignal/internal/util"
)

// Fallback terminal size until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24

	// footerHeight is the progress line plus the status line.
	footerHeight = 2

	errorStatusTTL = 5 * time.Second
)

// Options configures the task display.
type Options struct {
	// FrameInterval is the tick period. Zero means 60 frames per second.
	FrameInterval time.Duration
	Keymap        *keymap.Keymap
	Logger        *logging.Logger
	// Now stamps key and mouse events. Defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubbletea model driving one experiment session.
type Model struct {
	machine  *experiment.Machine
	sink     record.Sink
	keymap   *keymap.Keymap
	logger   *logging.Logger
	interval time.Duration
	now      func() time.Time

	width, height int
	progress      progress.Model

	status    string
	statusErr bool
	statusAt  time.Time

	quitting bool
}

// NewModel creates the model for machine, exporting into sink.
func NewModel(machine *experiment.Machine, sink record.Sink, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.Keymap == nil {
		opts.Keymap = keymap.DefaultKeymap()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return Model{
		machine:  machine,
		sink:     sink,
		keymap:   opts.Keymap,
		logger:   opts.Logger,
		interval: opts.FrameInterval,
		now:      opts.Now,
		width:    defaultWidth,
		height:   defaultHeight,
		progress: bar,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return msg.Tick(m.interval)
}

// Update handles one message.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.progress.Width = min(60, max(10, m.width-8))
		return m, nil

	case msg.TickMsg:
		return m.handleTick(time.Time(message))

	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.MouseMsg:
		return m.handleMouse(message)

	case msg.ClearStatusMsg:
		if message.SetAt.Equal(m.statusAt) {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	wasEnd := m.machine.State() == experiment.StateEnd
	m.machine.Tick(now)
	return m, tea.Batch(msg.Tick(m.interval), m.endedCmd(wasEnd))
}

// endedCmd rings the bell when the session has just reached the end screen.
func (m Model) endedCmd(wasEnd bool) tea.Cmd {
	if wasEnd || m.machine.State() != experiment.StateEnd {
		return nil
	}
	m.logger.Debug("end screen shown", "trials", m.machine.Completed())
	return msg.RingBell()
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now()
	mode := modeFor(m.machine.State())

	cmd, ok := m.keymap.GetBinding(key, mode)
	if !ok {
		return m, nil
	}
	if cmd == keymap.CmdQuit {
		m.quitting = true
		m.logger.Info("quit requested",
			"state", m.machine.State().String(),
			"completed", m.machine.Completed(),
			"exported", m.machine.Exported())
		return m, tea.Quit
	}

	wasEnd := m.machine.State() == experiment.StateEnd
	switch cmd {
	case keymap.CmdAdvance:
		m.machine.HandleInput(experiment.Input{Kind: experiment.InputAnyKey, At: now})
	case keymap.CmdRespondLeft:
		m.machine.HandleInput(experiment.Input{Kind: experiment.InputLeft, At: now})
	case keymap.CmdRespondRight:
		m.machine.HandleInput(experiment.Input{Kind: experiment.InputRight, At: now})
	case keymap.CmdExport:
		return m.export(now)
	}
	// Inputs catch the machine up to their timestamp, which can end the session.
	return m, m.endedCmd(wasEnd)
}

func (m Model) handleMouse(mouse tea.MouseMsg) (tea.Model, tea.Cmd) {
	if mouse.Action != tea.MouseActionPress || mouse.Button != tea.MouseButtonLeft {
		return m, nil
	}

	x, y := m.canvas().Logical(mouse.X, mouse.Y)
	now := m.now()
	if m.machine.HandleInput(experiment.Input{Kind: experiment.InputClick, At: now, X: x, Y: y}) == experiment.ActionExport {
		return m.export(now)
	}
	return m, nil
}

// pathSink is implemented by sinks that write to a file.
type pathSink interface {
	Path() string
}

func (m Model) export(now time.Time) (tea.Model, tea.Cmd) {
	err := m.machine.Export(m.sink, now)
	m.statusAt = now

	switch {
	case err == nil:
		m.status = fmt.Sprintf("Saved %d trials", m.machine.Completed())
		if ps, ok := m.sink.(pathSink); ok && ps.Path() != "" {
			m.status += " to "
			m.status += util.TruncateLeft(ps.Path(), m.statusWidth()-ansi.StringWidth(m.status))
		}
		m.statusErr = false
		return m, nil

	case errors.Is(err, errors.ErrAlreadyExported):
		m.status = "Data already exported"
		m.statusErr = false
		return m, msg.ClearStatusAfter(errorStatusTTL, now)

	default:
		// The participant sees a fixed message; the cause goes to the log.
		m.status = "Export failed" + m.retryHint()
		m.statusErr = true
		m.logger.Error("export failed", "error", err.Error(), "severity", errors.GetSeverity(err).String())
		return m, msg.ClearStatusAfter(errorStatusTTL, now)
	}
}

// retryHint names the first key bound to export, e.g. ", press e to retry".
func (m Model) retryHint() string {
	bindings := m.keymap.GetBindingsForCommand(keymap.CmdExport, keymap.ModeEnd)
	if len(bindings) == 0 {
		return ""
	}
	return ", press " + bindings[0].String() + " to retry"
}

func modeFor(s experiment.State) keymap.Mode {
	switch {
	case s.Gated():
		return keymap.ModeGate
	case s == experiment.StateEnd:
		return keymap.ModeEnd
	default:
		return keymap.ModeTrial
	}
}

// canvas returns an empty canvas sized to the area above the footer.
func (m Model) canvas() *Canvas {
	return NewCanvas(m.width, max(1, m.height-footerHeight))
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	c := m.canvas()
	c.ButtonDone = m.machine.Exported()
	m.machine.Render(c)

	return c.View() + "\n" + m.progressLine() + "\n" + m.statusLine()
}

// progressLine shows session progress on the break and end screens only;
// nothing distracts from the stimulus while a block runs.
func (m Model) progressLine() string {
	state := m.machine.State()
	if state != experiment.StateBreak && state != experiment.StateEnd {
		return ""
	}
	frac := float64(m.machine.Completed()) / float64(m.machine.TotalTrials())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.progress.ViewAs(frac))
}

// statusWidth is the room left inside the status bar's padding.
func (m Model) statusWidth() int {
	return m.width - styles.StatusBar.GetHorizontalPadding()
}

func (m Model) statusLine() string {
	if m.status != "" {
		status := util.Truncate(m.status, m.statusWidth())
		if m.statusErr {
			return styles.StatusBar.Foreground(styles.ErrorColor).Render(status)
		}
		return styles.StatusBar.Foreground(styles.SuccessColor).Render(status)
	}

	mode := modeFor(m.machine.State())
	if mode == keymap.ModeTrial {
		return ""
	}
	return styles.StatusBar.Render(m.keymap.Help(mode))
}
