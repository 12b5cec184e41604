package tui

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/monight/internal/cli"
	"github.com/studiowebux/monight/internal/filter"
	"github.com/studiowebux/monight/internal/keybinds"
	"github.com/studiowebux/monight/internal/tabs"
	"github.com/studiowebux/monight/internal/viewer"
)

// scrollStep is the continuous-mode scroll distance per key press, in
// raster pixels (three text rows)
const scrollStep = 6

// registerHandlers wires every action to its handler. The action set is
// fixed here; the settings file only changes which chords reach them.
func (m *Model) registerHandlers() {
	r := m.registry

	r.SetHandler(keybinds.ActionOpenFile, func(keybinds.Chord, string) {
		m.enterOpenPath()
	})
	r.SetHandler(keybinds.ActionOpenRecents, func(keybinds.Chord, string) {
		m.enterRecents()
	})
	r.SetHandler(keybinds.ActionPrint, func(keybinds.Chord, string) {
		m.doPrint()
	})
	r.SetHandler(keybinds.ActionCopyPath, func(keybinds.Chord, string) {
		m.doCopyPath()
	})
	r.SetHandler(keybinds.ActionExportPage, func(keybinds.Chord, string) {
		m.doExportPage()
	})

	r.SetHandler(keybinds.ActionCloseTab, func(keybinds.Chord, string) {
		m.doCloseTab()
	})
	r.SetHandler(keybinds.ActionNextTab, func(keybinds.Chord, string) {
		m.coordinator.SwitchToNext()
		m.queue(m.scheduleFrameTick())
	})
	r.SetHandler(keybinds.ActionPreviousTab, func(keybinds.Chord, string) {
		m.coordinator.SwitchToPrevious()
		m.queue(m.scheduleFrameTick())
	})
	r.SetHandler(keybinds.ActionSwitchTab, func(_ keybinds.Chord, payload string) {
		if n, err := strconv.Atoi(payload); err == nil {
			m.coordinator.SwitchToPosition(n)
			m.queue(m.scheduleFrameTick())
		}
	})
	r.SetHandler(keybinds.ActionReopenTab, func(keybinds.Chord, string) {
		m.doReopenClosed()
	})

	r.SetHandler(keybinds.ActionNextPage, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).NextPage)
	})
	r.SetHandler(keybinds.ActionPreviousPage, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).PreviousPage)
	})
	r.SetHandler(keybinds.ActionFirstPage, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).FirstPage)
	})
	r.SetHandler(keybinds.ActionLastPage, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).LastPage)
	})
	r.SetHandler(keybinds.ActionGotoPage, func(keybinds.Chord, string) {
		m.enterGotoPage()
	})
	r.SetHandler(keybinds.ActionScrollUp, func(keybinds.Chord, string) {
		m.doScroll(-scrollStep)
	})
	r.SetHandler(keybinds.ActionScrollDown, func(keybinds.Chord, string) {
		m.doScroll(scrollStep)
	})

	r.SetHandler(keybinds.ActionZoomIn, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).ZoomIn)
	})
	r.SetHandler(keybinds.ActionZoomOut, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).ZoomOut)
	})
	r.SetHandler(keybinds.ActionResetZoom, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).ResetZoom)
	})
	r.SetHandler(keybinds.ActionFitWidth, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).FitToWidth)
	})
	r.SetHandler(keybinds.ActionFitPage, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).FitToPage)
	})
	r.SetHandler(keybinds.ActionRotateClockwise, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).RotateClockwise)
	})
	r.SetHandler(keybinds.ActionRotateCounterclockwise, func(keybinds.Chord, string) {
		m.sessionOps((*viewer.Session).RotateCounterclockwise)
	})
	r.SetHandler(keybinds.ActionToggleViewMode, func(keybinds.Chord, string) {
		m.doToggleViewMode()
	})
	r.SetHandler(keybinds.ActionToggleFullscreen, func(keybinds.Chord, string) {
		m.fullscreen = !m.fullscreen
		m.queue(m.applyContainerSize())
	})
	r.SetHandler(keybinds.ActionApplyPreset, func(_ keybinds.Chord, payload string) {
		m.doApplyPreset(payload)
	})

	r.SetHandler(keybinds.ActionOpenSettings, func(keybinds.Chord, string) {
		m.doReloadSettings()
	})
	r.SetHandler(keybinds.ActionOpenHelp, func(keybinds.Chord, string) {
		m.enterHelp()
	})
	r.SetHandler(keybinds.ActionQuit, func(keybinds.Chord, string) {
		m.quitting = true
	})
}

// queue collects a command produced inside an action handler
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

// sessionOps runs a render-producing session method on the active
// session and queues the resulting work. With no document open the
// action is silently ignored.
func (m *Model) sessionOps(fn func(*viewer.Session) ([]*viewer.RenderOp, error)) {
	sess := m.coordinator.ActiveSession()
	if sess == nil {
		return
	}

	ops, err := fn(sess)
	if err != nil {
		m.queue(m.setError(err.Error()))
		return
	}
	m.queue(m.startOps(sess, ops))
	m.queue(m.scheduleFrameTick())
}

// handleBatchOpened opens every file a batch read produced, reports the
// failures, then applies the batch's page jump to the active tab only
func (m *Model) handleBatchOpened(batch cli.OpenBatch) tea.Cmd {
	var cmds []tea.Cmd

	for _, file := range batch.Files {
		if cmd := m.openFile(file, 0); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if batch.Page > 0 {
		if sess := m.coordinator.ActiveSession(); sess != nil {
			page := batch.Page
			if page > sess.PageCount() {
				page = sess.PageCount()
			}
			ops, err := sess.GoToPage(page)
			if err == nil {
				cmds = append(cmds, m.startOps(sess, ops))
			}
		}
	}

	switch {
	case len(batch.Errors) == 1 && len(batch.Files) == 0:
		cmds = append(cmds, m.setError(batch.Errors[0].Error()))
	case len(batch.Errors) > 0:
		cmds = append(cmds, m.setError(fmt.Sprintf("%s: %v", batch.Summary(), batch.Errors[0])))
	case len(batch.Files) > 1:
		cmds = append(cmds, m.setStatus(batch.Summary()))
	}

	cmds = append(cmds, m.scheduleFrameTick())
	return tea.Batch(cmds...)
}

// openFile creates (or refocuses) the tab for one read document and
// schedules its first render
func (m *Model) openFile(file cli.OpenFile, page int) tea.Cmd {
	existing := m.coordinator.Count()

	initial := m.initialFilter()
	tab, err := m.coordinator.CreateTab(file.Path, file.Title, file.Data, tabs.CreateOptions{
		Filter:   initial.Expression(),
		ViewMode: m.initialViewMode(),
	})
	if err != nil {
		return m.setError(err.Error())
	}

	if m.coordinator.Count() == existing {
		// Duplicate open folded into a focus change.
		return m.scheduleFrameTick()
	}

	if _, ok := m.filters[tab.ID]; !ok {
		m.filters[tab.ID] = initial
	}

	sess := tab.Session
	w, h := m.previewSize()

	// Sizing a continuous-mode session already schedules its first window
	// of renders; those ops must run like any other.
	var cmds []tea.Cmd
	if cmd := m.startOps(sess, sess.SetContainerSize(w, h)); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if ops, err := sess.SetDevicePixelRatio(m.dpr); err != nil {
		m.report("viewer: %v", err)
	} else if cmd := m.startOps(sess, ops); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if m.recentsMgr != nil {
		if err := m.recentsMgr.RecordOpen(tab.Path, tab.Title, sess.PageCount()); err != nil {
			m.report("recents: %v", err)
		}
	}

	rendered := false
	if page > 1 && page <= sess.PageCount() {
		ops, err := sess.GoToPage(page)
		if err == nil {
			rendered = true
			if cmd := m.startOps(sess, ops); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if !rendered {
		ops, err := sess.InitialRender()
		if err != nil {
			return m.setError(err.Error())
		}
		if cmd := m.startOps(sess, ops); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, m.scheduleFrameTick())
	return tea.Batch(cmds...)
}

// doCloseTab closes the active tab, remembering its page for resume
func (m *Model) doCloseTab() {
	tab := m.coordinator.Active()
	if tab == nil {
		return
	}

	if m.recentsMgr != nil && tab.Path != "" {
		if err := m.recentsMgr.SetLastPage(tab.Path, tab.Session.CurrentPage()); err != nil {
			m.report("recents: %v", err)
		}
	}

	delete(m.filters, tab.ID)
	title := tab.Title
	if err := m.coordinator.CloseTab(tab.ID); err != nil {
		m.queue(m.setError(err.Error()))
		return
	}
	m.queue(m.setStatus("Closed " + title))
	m.queue(m.scheduleFrameTick())
}

// doReopenClosed pops the closed-tab history and re-reads the file from
// disk; the coordinator keeps paths only, never stale bytes
func (m *Model) doReopenClosed() {
	path, ok := m.coordinator.ReopenLastClosed()
	if !ok {
		m.queue(m.setStatus("No recently closed tabs"))
		return
	}

	page := 1
	if m.recentsMgr != nil {
		page = m.recentsMgr.LastPage(path)
	}
	m.queue(reopenCmd(path, page))
}

// doScroll moves the continuous view; in single mode the keys fall back
// to page turns
func (m *Model) doScroll(delta int) {
	sess := m.coordinator.ActiveSession()
	if sess == nil {
		return
	}

	if sess.ViewMode() != viewer.ModeContinuous {
		if delta > 0 {
			m.sessionOps((*viewer.Session).NextPage)
		} else {
			m.sessionOps((*viewer.Session).PreviousPage)
		}
		return
	}

	sess.OnScroll(sess.ScrollTop() + delta)
	m.queue(m.scheduleFrameTick())
}

// doToggleViewMode flips between single and continuous
func (m *Model) doToggleViewMode() {
	sess := m.coordinator.ActiveSession()
	if sess == nil {
		return
	}

	mode := viewer.ModeContinuous
	if sess.ViewMode() == viewer.ModeContinuous {
		mode = viewer.ModeSingle
	}

	ops, err := sess.SetViewMode(mode)
	if err != nil {
		m.queue(m.setError(err.Error()))
		return
	}
	m.queue(m.startOps(sess, ops))
	m.queue(m.setStatus("View mode: " + string(mode)))
	m.queue(m.scheduleFrameTick())
}

// doApplyPreset applies a named filter preset to the active tab. The
// filter is per-tab state: switching tabs and back keeps it.
func (m *Model) doApplyPreset(name string) {
	tab := m.coordinator.Active()
	if tab == nil {
		return
	}

	preset, ok := filter.Preset(name)
	if !ok {
		m.queue(m.setError(fmt.Sprintf("Unknown preset %q", name)))
		return
	}

	m.filters[tab.ID] = preset
	tab.SetFilter(preset.Expression())

	if m.store.Current().General.RememberLastFilter {
		if err := m.store.SetLastFilter(&preset); err != nil {
			m.report("settings: %v", err)
		}
	}
	m.queue(m.setStatus("Applied preset: " + name))
}

// doPrint surfaces the print request state; spooling itself belongs to
// the platform shell
func (m *Model) doPrint() {
	tab := m.coordinator.Active()
	if tab == nil || !m.printEnabled {
		m.queue(m.setError("No document to print"))
		return
	}
	m.queue(m.setStatus(fmt.Sprintf("Print requested: %s (%d pages)",
		tab.Title, tab.Session.PageCount())))
}

// doCopyPath copies the active document's path to the clipboard
func (m *Model) doCopyPath() {
	tab := m.coordinator.Active()
	if tab == nil || tab.Path == "" {
		m.queue(m.setError("No document open"))
		return
	}

	if err := clipboard.WriteAll(tab.Path); err != nil {
		m.queue(m.setError(fmt.Sprintf("Clipboard unavailable: %v", err)))
		return
	}
	m.queue(m.setStatus("Copied " + tab.Path))
}

// doReloadSettings re-reads the settings file and reinstalls the
// keybinds, serving as the settings-changed broadcast for file edits
func (m *Model) doReloadSettings() {
	loaded := m.store.Load()
	m.registry.LoadFromSettings(loaded.Keybinds)
	m.queue(m.setStatus("Settings reloaded from " + m.store.Path()))
}

// enterGotoPage opens the page number input primed with the current page
func (m *Model) enterGotoPage() {
	sess := m.coordinator.ActiveSession()
	if sess == nil {
		return
	}

	m.prevPage = sess.CurrentPage()
	m.input.SetValue(strconv.Itoa(m.prevPage))
	m.input.CursorEnd()
	m.input.Placeholder = fmt.Sprintf("1-%d", sess.PageCount())
	m.input.Focus()
	m.mode = ModeGotoPage
}

// enterOpenPath opens the path input
func (m *Model) enterOpenPath() {
	m.input.SetValue("")
	m.input.Placeholder = "path/to/document.pdf"
	m.input.Focus()
	m.mode = ModeOpenPath
}

// enterRecents loads the recents list and opens the picker
func (m *Model) enterRecents() {
	if m.recentsMgr == nil {
		m.queue(m.setError("Recent files unavailable"))
		return
	}

	limit := m.store.Current().General.RecentsLimit
	entries, err := m.recentsMgr.List(limit)
	if err != nil {
		m.queue(m.setError(err.Error()))
		return
	}
	if len(entries) == 0 {
		m.queue(m.setStatus("No recent files"))
		return
	}

	m.recentsAll = entries
	m.recentsFiltered = entries
	m.recentsIndex = 0
	m.input.SetValue("")
	m.input.Placeholder = "filter"
	m.input.Focus()
	m.mode = ModeRecents
}

// enterHelp builds the keybind help and opens it
func (m *Model) enterHelp() {
	m.helpView.SetContent(m.renderHelpContent())
	m.helpView.GotoTop()
	m.mode = ModeHelp
}
