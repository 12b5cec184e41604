package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/monight/internal/cli"
	"github.com/studiowebux/monight/internal/filter"
	"github.com/studiowebux/monight/internal/keybinds"
	"github.com/studiowebux/monight/internal/recents"
	"github.com/studiowebux/monight/internal/remote"
	"github.com/studiowebux/monight/internal/settings"
	"github.com/studiowebux/monight/internal/tabs"
	"github.com/studiowebux/monight/internal/viewer"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeGotoPage
	ModeOpenPath
	ModeRecents
	ModeHelp
)

// statusClearAfter is how long transient status messages stay visible
const statusClearAfter = 4 * time.Second

// frameInterval paces continuous-mode visibility recomputes. Scroll
// events between ticks coalesce into one recompute.
const frameInterval = 33 * time.Millisecond

// Model is the terminal host: it feeds key events and viewport sizes
// into the core components and reflects their state back on screen.
type Model struct {
	store       *settings.Store
	registry    *keybinds.Registry
	coordinator *tabs.Coordinator
	recentsMgr  *recents.Manager // nil when the database failed to open

	mode    Mode
	version string

	width  int
	height int

	statusMsg string
	errorMsg  string

	// filters holds each tab's filter settings; the expression string on
	// the tab is derived from these
	filters map[string]filter.Settings

	input    textinput.Model
	prevPage int // last-known-good page while the goto input is open
	helpView viewport.Model

	recentsAll      []recents.Entry
	recentsFiltered []recents.Entry
	recentsIndex    int

	printEnabled bool
	fullscreen   bool
	quitting     bool

	dpr float64

	updateAvailable bool
	latestVersion   string

	// cmds collects commands produced by action handlers during one
	// dispatch
	cmds []tea.Cmd

	// initialCmds run once from Init: the startup batch open and the
	// version check
	initialCmds []tea.Cmd

	ticking bool
}

// Messages

type batchOpenedMsg struct {
	batch cli.OpenBatch
}

type reopenFileMsg struct {
	file cli.OpenFile
	page int
	err  error
}

type renderDoneMsg struct {
	session *viewer.Session
	op      *viewer.RenderOp
	err     error
}

type frameTickMsg time.Time

type clearStatusMsg struct{}

type remoteOpenMsg remote.OpenRequest

type versionCheckMsg struct {
	available bool
	latest    string
	err       error
}

// Init schedules the startup work: the initial file batch and the
// version check
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.initialCmds...)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKeyPress(msg)
		if m.quitting {
			return m, tea.Quit
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = max(20, msg.Width-8)
		m.helpView.Height = max(5, msg.Height-6)
		return m, m.applyContainerSize()

	case batchOpenedMsg:
		return m, m.handleBatchOpened(msg.batch)

	case reopenFileMsg:
		if msg.err != nil {
			return m, m.setError(msg.err.Error())
		}
		return m, m.openFile(msg.file, msg.page)

	case remoteOpenMsg:
		// A second launch handed its arguments over; open them with the
		// same batch semantics as a direct launch.
		stop := m.store.Current().General.StopOnOpenError
		return m, openPathsCmd(msg.Paths, msg.Page, stop)

	case renderDoneMsg:
		if err := msg.session.CompleteRender(msg.op, msg.err); err != nil {
			return m, m.setError(fmt.Sprintf("Render failed: %v", err))
		}
		return m, nil

	case frameTickMsg:
		m.ticking = false
		var cmds []tea.Cmd
		if sess := m.coordinator.ActiveSession(); sess != nil {
			cmds = append(cmds, m.startOps(sess, sess.FrameTick()))
		}
		if cmd := m.scheduleFrameTick(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case clearStatusMsg:
		m.statusMsg = ""
		m.errorMsg = ""
		return m, nil

	case versionCheckMsg:
		if msg.err == nil && msg.available {
			m.updateAvailable = true
			m.latestVersion = msg.latest
		}
		return m, nil
	}

	return m, nil
}

// setStatus shows a transient status message
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.errorMsg = ""
	return tea.Tick(statusClearAfter, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// setError shows a transient error message
func (m *Model) setError(msg string) tea.Cmd {
	m.errorMsg = msg
	m.statusMsg = ""
	return tea.Tick(statusClearAfter, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// report adapts setStatus to the reporter signature the core components
// take, so their diagnostics land on the status line instead of stderr
func (m *Model) report(format string, v ...any) {
	m.statusMsg = fmt.Sprintf(format, v...)
}

// startOps launches render ops off the event loop and routes their
// completions back as messages
func (m *Model) startOps(sess *viewer.Session, ops []*viewer.RenderOp) tea.Cmd {
	if len(ops) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, len(ops))
	for i, op := range ops {
		cmds[i] = func() tea.Msg {
			err := op.Render()
			return renderDoneMsg{session: sess, op: op, err: err}
		}
	}
	return tea.Batch(cmds...)
}

// scheduleFrameTick keeps the frame clock running while the active
// session is in continuous mode
func (m *Model) scheduleFrameTick() tea.Cmd {
	sess := m.coordinator.ActiveSession()
	if sess == nil || sess.ViewMode() != viewer.ModeContinuous {
		return nil
	}
	if m.ticking {
		return nil
	}

	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// previewSize returns the page area in raster pixels. Every text row
// holds two vertical pixels, so the pixel height is twice the cell rows
// left after the tab bar and status line.
func (m *Model) previewSize() (int, int) {
	w := m.width
	h := m.height - 2
	if m.fullscreen {
		h = m.height
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h * 2
}

// applyContainerSize pushes the current preview size into every session
func (m *Model) applyContainerSize() tea.Cmd {
	w, h := m.previewSize()

	var cmds []tea.Cmd
	for _, tab := range m.coordinator.Tabs() {
		ops := tab.Session.SetContainerSize(w, h)
		if cmd := m.startOps(tab.Session, ops); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Cleanup releases host-owned resources on shutdown
func (m *Model) Cleanup() {
	m.coordinator.DestroyAll()
	if m.recentsMgr != nil {
		if err := m.recentsMgr.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing recents database: %v\n", err)
		}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
