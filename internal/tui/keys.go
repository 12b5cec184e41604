package tui

import (
	"strconv"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/monight/internal/keybinds"
	"github.com/studiowebux/monight/internal/recents"
)

// chordFromKey normalizes a terminal key event into the same chord shape
// parsed accelerators use. Terminals report an uppercase rune instead of
// a shift flag, so single uppercase letters fold to shift+lowercase.
func chordFromKey(msg tea.KeyMsg) keybinds.Chord {
	s := msg.String()

	var c keybinds.Chord

	// A literal '+' key leaves a trailing separator ("+" or "ctrl++")
	// that plain splitting would lose.
	if strings.HasSuffix(s, "+") {
		c.Key = "plus"
		s = strings.TrimSuffix(strings.TrimSuffix(s, "+"), "+")
	}

	for _, tok := range strings.Split(s, "+") {
		if tok == "" {
			continue
		}

		switch strings.ToLower(tok) {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "option":
			c.Alt = true
		case "shift":
			c.Shift = true
		case "meta", "cmd", "super":
			c.Meta = true
		default:
			key := tok
			runes := []rune(key)
			if len(runes) == 1 && unicode.IsUpper(runes[0]) {
				c.Shift = true
				key = string(unicode.ToLower(runes[0]))
			}
			c.Key = keybinds.NormalizeKey(key)
		}
	}

	return c
}

// handleKeyPress routes a key event according to the current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Always reachable, whatever the bindings say.
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return nil
	}

	switch m.mode {
	case ModeGotoPage:
		return m.handleGotoPageKey(msg)
	case ModeOpenPath:
		return m.handleOpenPathKey(msg)
	case ModeRecents:
		return m.handleRecentsKey(msg)
	case ModeHelp:
		return m.handleHelpKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

// handleNormalKey dispatches through the keybind registry
func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	m.cmds = nil
	m.registry.Dispatch(chordFromKey(msg))
	if len(m.cmds) == 0 {
		return nil
	}
	return tea.Batch(m.cmds...)
}

// handleGotoPageKey runs the page number input. Enter commits; an
// unparseable or out-of-range number reverts to the last good page
// without an error dialog.
func (m *Model) handleGotoPageKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return nil

	case "enter":
		m.mode = ModeNormal
		m.input.Blur()

		text := strings.TrimSpace(m.input.Value())
		sess := m.coordinator.ActiveSession()
		if sess == nil {
			return nil
		}

		page, err := strconv.Atoi(text)
		if err != nil || page < 1 || page > sess.PageCount() {
			m.input.SetValue(strconv.Itoa(m.prevPage))
			return m.setStatus("Page must be between 1 and " + strconv.Itoa(sess.PageCount()))
		}

		ops, err := sess.GoToPage(page)
		if err != nil {
			return m.setError(err.Error())
		}
		return tea.Batch(m.startOps(sess, ops), m.scheduleFrameTick())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// handleOpenPathKey runs the open-by-path input
func (m *Model) handleOpenPathKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return nil

	case "enter":
		m.mode = ModeNormal
		m.input.Blur()

		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return nil
		}
		stop := m.store.Current().General.StopOnOpenError
		return openPathsCmd([]string{path}, 0, stop)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// handleRecentsKey runs the recents picker: typing narrows the list
// with a fuzzy filter, enter opens the selected entry
func (m *Model) handleRecentsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return nil

	case "up", "ctrl+p":
		if m.recentsIndex > 0 {
			m.recentsIndex--
		}
		return nil

	case "down", "ctrl+n":
		if m.recentsIndex < len(m.recentsFiltered)-1 {
			m.recentsIndex++
		}
		return nil

	case "enter":
		if m.recentsIndex < 0 || m.recentsIndex >= len(m.recentsFiltered) {
			return nil
		}
		entry := m.recentsFiltered[m.recentsIndex]

		m.mode = ModeNormal
		m.input.Blur()
		return reopenCmd(entry.Path, entry.LastPage)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	m.recentsFiltered = recents.Filter(m.recentsAll, strings.TrimSpace(m.input.Value()))
	if m.recentsIndex >= len(m.recentsFiltered) {
		m.recentsIndex = len(m.recentsFiltered) - 1
	}
	if m.recentsIndex < 0 {
		m.recentsIndex = 0
	}
	return cmd
}

// handleHelpKey scrolls the keybind help
func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "f1", "?":
		m.mode = ModeNormal
		return nil
	}

	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}
