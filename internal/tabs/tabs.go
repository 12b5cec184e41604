// Package tabs coordinates the open documents: tab order, activation,
// closed-tab history and the lifecycle of each tab's render session.
package tabs

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/studiowebux/monight/internal/document"
	"github.com/studiowebux/monight/internal/viewer"
)

// Tab binds one open document to its render session and its place in
// the tab strip
type Tab struct {
	ID      string
	Path    string
	Title   string
	Filter  string
	Session *viewer.Session
}

// SetFilter records the filter on the tab and pushes it to the session.
// This is the one place tab fields are written from outside the
// coordinator.
func (t *Tab) SetFilter(expr string) {
	t.Filter = expr
	t.Session.ApplyFilter(expr)
}

// ActivateFunc receives the newly active tab, or nil when the last tab
// closed
type ActivateFunc func(tab *Tab)

// CreateOptions carries the optional initial state for a new tab
type CreateOptions struct {
	// Filter is the initial filter expression, usually the default preset
	Filter string

	// ViewMode preselects single or continuous before the first render
	ViewMode viewer.Mode
}

// Coordinator owns the ordered tab collection, the active tab pointer
// and the closed-tab history. It is the single point of truth for which
// session is foregrounded.
type Coordinator struct {
	dec      document.Decoder
	tabs     []*Tab
	activeID string
	closed   []string
	onActive ActivateFunc
	report   func(format string, v ...any)
}

// NewCoordinator creates an empty tab coordinator. New sessions decode
// through dec.
func NewCoordinator(dec document.Decoder) *Coordinator {
	return &Coordinator{
		dec:    dec,
		report: log.Printf,
	}
}

// SetReporter replaces the log function used for diagnostics
func (c *Coordinator) SetReporter(fn func(format string, v ...any)) {
	if fn != nil {
		c.report = fn
	}
}

// SetOnActivate registers the activation-changed notification
func (c *Coordinator) SetOnActivate(fn ActivateFunc) {
	c.onActive = fn
}

func (c *Coordinator) indexOf(id string) int {
	for i, t := range c.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c *Coordinator) findByPath(path string) *Tab {
	for _, t := range c.tabs {
		if t.Path == path {
			return t
		}
	}
	return nil
}

// activate makes tab the single active tab (or none when nil), hides
// every other session's surfaces and fires the notification
func (c *Coordinator) activate(tab *Tab) {
	c.activeID = ""
	if tab != nil {
		c.activeID = tab.ID
	}
	for _, t := range c.tabs {
		t.Session.SetVisible(t == tab)
	}
	if c.onActive != nil {
		c.onActive(tab)
	}
}

// CreateTab opens a document in a new tab and activates it. Opening a
// path that is already open activates the existing tab instead, so
// "open" stays idempotent across dialogs, drag-drop and CLI arguments.
// A document that fails to load produces no tab; other tabs are
// unaffected.
func (c *Coordinator) CreateTab(path, title string, data []byte, opts CreateOptions) (*Tab, error) {
	if path != "" {
		if existing := c.findByPath(path); existing != nil {
			c.activate(existing)
			return existing, nil
		}
	}

	if title == "" {
		title = document.DisplayName(path)
	}

	sess := viewer.NewSession(c.dec, uuid.NewString())
	sess.SetReporter(c.report)

	if opts.ViewMode != "" {
		if _, err := sess.SetViewMode(opts.ViewMode); err != nil {
			sess.Destroy()
			return nil, err
		}
	}

	if err := sess.Load(data, title, path); err != nil {
		sess.Destroy()
		return nil, err
	}

	tab := &Tab{
		ID:      sess.ID(),
		Path:    path,
		Title:   title,
		Session: sess,
	}
	if opts.Filter != "" {
		tab.SetFilter(opts.Filter)
	}

	c.tabs = append(c.tabs, tab)
	c.activate(tab)
	return tab, nil
}

// CloseTab pushes the tab's path onto the closed history, destroys its
// session and removes it. Closing the active tab activates the first
// remaining one; closing the last fires the notification with nil.
func (c *Coordinator) CloseTab(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("tab not found: %s", id)
	}

	tab := c.tabs[idx]
	if tab.Path != "" {
		c.closed = append(c.closed, tab.Path)
	}

	tab.Session.Destroy()
	c.tabs = append(c.tabs[:idx], c.tabs[idx+1:]...)

	if c.activeID == id {
		if len(c.tabs) > 0 {
			c.activate(c.tabs[0])
		} else {
			c.activate(nil)
		}
	}
	return nil
}

// CloseActive closes the currently active tab
func (c *Coordinator) CloseActive() error {
	if c.activeID == "" {
		return fmt.Errorf("no active tab")
	}
	return c.CloseTab(c.activeID)
}

// ActivateTab makes the given tab the active one. Inactive sessions keep
// their state with hidden surfaces for instant switch-back.
func (c *Coordinator) ActivateTab(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("tab not found: %s", id)
	}
	c.activate(c.tabs[idx])
	return nil
}

// SwitchToNext cycles forward through the tab order. With one tab or
// none it is a no-op.
func (c *Coordinator) SwitchToNext() {
	if len(c.tabs) <= 1 {
		return
	}
	idx := c.indexOf(c.activeID)
	c.activate(c.tabs[(idx+1)%len(c.tabs)])
}

// SwitchToPrevious cycles backward through the tab order
func (c *Coordinator) SwitchToPrevious() {
	if len(c.tabs) <= 1 {
		return
	}
	idx := c.indexOf(c.activeID)
	if idx < 0 {
		idx = 0
	}
	c.activate(c.tabs[(idx-1+len(c.tabs))%len(c.tabs)])
}

// SwitchToPosition activates the tab at a 1-based position. Position 9
// always means the last tab regardless of count; other out-of-range
// positions are ignored.
func (c *Coordinator) SwitchToPosition(n int) bool {
	if len(c.tabs) == 0 {
		return false
	}
	if n == 9 {
		c.activate(c.tabs[len(c.tabs)-1])
		return true
	}
	if n < 1 || n > len(c.tabs) {
		return false
	}
	c.activate(c.tabs[n-1])
	return true
}

// ReopenLastClosed pops the most recently closed path. The caller
// re-reads the file and calls CreateTab; closed tabs keep no byte
// buffers.
func (c *Coordinator) ReopenLastClosed() (string, bool) {
	if len(c.closed) == 0 {
		return "", false
	}
	path := c.closed[len(c.closed)-1]
	c.closed = c.closed[:len(c.closed)-1]
	return path, true
}

// IsFileOpen reports whether a path is already open, activating the
// matching tab on a hit so duplicate opens fold into a focus change
func (c *Coordinator) IsFileOpen(path string) bool {
	if path == "" {
		return false
	}
	tab := c.findByPath(path)
	if tab == nil {
		return false
	}
	c.activate(tab)
	return true
}

// Active returns the active tab, or nil when no tabs are open
func (c *Coordinator) Active() *Tab {
	idx := c.indexOf(c.activeID)
	if idx < 0 {
		return nil
	}
	return c.tabs[idx]
}

// ActiveSession returns the active tab's session, or nil
func (c *Coordinator) ActiveSession() *viewer.Session {
	tab := c.Active()
	if tab == nil {
		return nil
	}
	return tab.Session
}

// ActiveIndex returns the active tab's position in the strip, or -1
func (c *Coordinator) ActiveIndex() int {
	return c.indexOf(c.activeID)
}

// Get returns a tab by id
func (c *Coordinator) Get(id string) (*Tab, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return c.tabs[idx], true
}

// Tabs returns the tabs in strip order
func (c *Coordinator) Tabs() []*Tab {
	out := make([]*Tab, len(c.tabs))
	copy(out, c.tabs)
	return out
}

// Count returns the number of open tabs
func (c *Coordinator) Count() int {
	return len(c.tabs)
}

// DestroyAll tears down every session on shutdown. No notification
// fires.
func (c *Coordinator) DestroyAll() {
	for _, t := range c.tabs {
		t.Session.Destroy()
	}
	c.tabs = nil
	c.activeID = ""
}
