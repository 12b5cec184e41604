package keybinds

import (
	"log"
	"sort"
	"strings"
)

// Handler executes an action. The chord that triggered the dispatch and the
// binding's payload (tab position, preset name) are passed through.
type Handler func(ev Chord, payload string)

// Binding is one installed keybinding: a settings entry id, the action it
// triggers, an optional payload and the chords that activate it
type Binding struct {
	ID      string
	Display string
	Action  Action
	Payload string
	Chords  []Chord
}

// Registry manages keybinding mappings and matching. Bindings are held in a
// stable order so that when two entries install the same chord, the earlier
// one wins every lookup.
type Registry struct {
	mac      bool
	bindings []Binding
	index    map[string]int
	handlers map[Action]Handler
	report   func(format string, v ...any)
}

// NewRegistry creates an empty keybinding registry. mac selects how the
// CmdOrCtrl pseudo-modifier resolves.
func NewRegistry(mac bool) *Registry {
	return &Registry{
		mac:      mac,
		index:    make(map[string]int),
		handlers: make(map[Action]Handler),
		report:   log.Printf,
	}
}

// SetReporter replaces the log function used for dispatch diagnostics
func (r *Registry) SetReporter(fn func(format string, v ...any)) {
	if fn != nil {
		r.report = fn
	}
}

// SetHandler registers the handler for an action. Handlers are wired once at
// startup; rebinding chords in settings never changes this mapping.
func (r *Registry) SetHandler(action Action, h Handler) {
	r.handlers[action] = h
}

// Register installs a binding. Accelerator strings are parsed tolerantly; an
// entry with no accelerators is installed unbound and matches nothing.
func (r *Registry) Register(id, display string, action Action, payload string, accelerators []string) {
	chords := make([]Chord, 0, len(accelerators))
	for _, accel := range accelerators {
		chords = append(chords, ParseAccelerator(accel, r.mac))
	}

	b := Binding{
		ID:      id,
		Display: display,
		Action:  action,
		Payload: payload,
		Chords:  chords,
	}

	if pos, ok := r.index[id]; ok {
		r.bindings[pos] = b
		return
	}

	r.index[id] = len(r.bindings)
	r.bindings = append(r.bindings, b)
}

// LoadFromSettings replaces every installed binding with the entries from
// the settings file. Defaults are not re-added afterwards: an entry whose
// bind list is empty stays unbound on purpose. Entries are installed in
// default-table order first so chord conflicts resolve the same way on
// every start; ids unknown to the default table follow in sorted order.
func (r *Registry) LoadFromSettings(entries map[string]Keybind) {
	r.bindings = r.bindings[:0]
	r.index = make(map[string]int)

	for _, id := range orderedIDs(entries) {
		entry := entries[id]
		action := Action(entry.Action)
		if action == "" {
			action = Action(id)
		}
		r.Register(id, entry.DisplayName, action, entry.Payload, entry.Binds)
	}
}

// orderedIDs returns the entry ids in default-table order, then any ids the
// default table does not know in sorted order
func orderedIDs(entries map[string]Keybind) []string {
	ids := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, id := range DefaultOrder() {
		if _, ok := entries[id]; ok {
			ids = append(ids, id)
			seen[id] = true
		}
	}

	var extra []string
	for id := range entries {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)

	return append(ids, extra...)
}

// Match resolves a key event to an action. A bare modifier press matches
// nothing. When several bindings share a chord, the first installed wins.
func (r *Registry) Match(ev Chord) (Action, bool) {
	b, ok := r.matchBinding(ev)
	if !ok {
		return "", false
	}
	return b.Action, true
}

func (r *Registry) matchBinding(ev Chord) (Binding, bool) {
	if ev.IsModifierOnly() {
		return Binding{}, false
	}

	for _, b := range r.bindings {
		for _, c := range b.Chords {
			if c == ev {
				return b, true
			}
		}
	}

	return Binding{}, false
}

// Dispatch matches a key event and invokes the bound action's handler.
// Returns true when the event was consumed. A matched action without a
// registered handler is logged and swallowed so stale settings entries
// cannot take the application down.
func (r *Registry) Dispatch(ev Chord) bool {
	b, ok := r.matchBinding(ev)
	if !ok {
		return false
	}

	h, ok := r.handlers[b.Action]
	if !ok {
		r.report("keybinds: no handler registered for action %q (binding %q)", b.Action, b.ID)
		return false
	}

	h(ev, b.Payload)
	return true
}

// FindConflict reports the id of the first binding already using the given
// accelerator, ignoring excludeID. Meant for edit-time feedback; nothing
// stops a settings file from containing duplicates.
func (r *Registry) FindConflict(accelerator, excludeID string) (string, bool) {
	chord := ParseAccelerator(accelerator, r.mac)
	if chord.IsModifierOnly() {
		return "", false
	}

	for _, b := range r.bindings {
		if b.ID == excludeID {
			continue
		}
		for _, c := range b.Chords {
			if c == chord {
				return b.ID, true
			}
		}
	}

	return "", false
}

// GetBinding returns the installed binding for an entry id
func (r *Registry) GetBinding(id string) (Binding, bool) {
	pos, ok := r.index[id]
	if !ok {
		return Binding{}, false
	}
	return r.bindings[pos], true
}

// GetBindingString returns a human-readable string of the chords installed
// for an entry id
func (r *Registry) GetBindingString(id string) string {
	b, ok := r.GetBinding(id)
	if !ok || len(b.Chords) == 0 {
		return "unbound"
	}

	parts := make([]string, len(b.Chords))
	for i, c := range b.Chords {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// ListBindings returns all installed bindings in match order
func (r *Registry) ListBindings() []Binding {
	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// HasBinding checks if a chord is bound to anything
func (r *Registry) HasBinding(ev Chord) bool {
	_, ok := r.matchBinding(ev)
	return ok
}

// Mac reports which platform the registry resolves CmdOrCtrl for
func (r *Registry) Mac() bool {
	return r.mac
}
