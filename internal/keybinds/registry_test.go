package keybinds

import (
	"fmt"
	"strings"
	"testing"
)

func TestRegistryMatch_Defaults(t *testing.T) {
	r := NewDefaultRegistry(false)

	tests := []struct {
		name       string
		ev         Chord
		wantAction Action
		wantMatch  bool
	}{
		{
			name:       "open file",
			ev:         Chord{Key: "o", Ctrl: true},
			wantAction: ActionOpenFile,
			wantMatch:  true,
		},
		{
			name:       "reopen closed tab",
			ev:         Chord{Key: "t", Ctrl: true, Shift: true},
			wantAction: ActionReopenTab,
			wantMatch:  true,
		},
		{
			name:       "fullscreen",
			ev:         Chord{Key: "f11"},
			wantAction: ActionToggleFullscreen,
			wantMatch:  true,
		},
		{
			name:       "next page via arrow",
			ev:         Chord{Key: "right"},
			wantAction: ActionNextPage,
			wantMatch:  true,
		},
		{
			name:       "previous page via shift space",
			ev:         Chord{Key: "space", Shift: true},
			wantAction: ActionPreviousPage,
			wantMatch:  true,
		},
		{
			name:       "zoom in via equals",
			ev:         Chord{Key: "=", Ctrl: true},
			wantAction: ActionZoomIn,
			wantMatch:  true,
		},
		{
			name:      "unbound chord",
			ev:        Chord{Key: "f9", Ctrl: true, Alt: true},
			wantMatch: false,
		},
		{
			name:      "bare modifier never matches",
			ev:        Chord{Key: "ctrl", Ctrl: true},
			wantMatch: false,
		},
		{
			name:      "modifier flags change the chord",
			ev:        Chord{Key: "o", Ctrl: true, Alt: true},
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := r.Match(tt.ev)
			if ok != tt.wantMatch {
				t.Fatalf("Match(%+v) matched=%v, want %v", tt.ev, ok, tt.wantMatch)
			}
			if ok && action != tt.wantAction {
				t.Errorf("Match(%+v) = %q, want %q", tt.ev, action, tt.wantAction)
			}
		})
	}
}

func TestRegistryMatch_MacResolution(t *testing.T) {
	r := NewDefaultRegistry(true)

	if _, ok := r.Match(Chord{Key: "o", Ctrl: true}); ok {
		t.Error("Expected ctrl+o to be unbound on mac")
	}

	action, ok := r.Match(Chord{Key: "o", Meta: true})
	if !ok {
		t.Fatal("Expected cmd+o to match on mac")
	}
	if action != ActionOpenFile {
		t.Errorf("Expected %q, got %q", ActionOpenFile, action)
	}
}

func TestRegistryMatch_FirstInstalledWins(t *testing.T) {
	r := NewRegistry(false)
	r.LoadFromSettings(map[string]Keybind{
		"alpha": {Binds: []string{"Ctrl+X"}, Action: string(ActionZoomIn)},
		"beta":  {Binds: []string{"Ctrl+X"}, Action: string(ActionZoomOut)},
	})

	// Neither id is in the default table, so install order is sorted:
	// alpha before beta.
	action, ok := r.Match(Chord{Key: "x", Ctrl: true})
	if !ok {
		t.Fatal("Expected ctrl+x to match")
	}
	if action != ActionZoomIn {
		t.Errorf("Expected first installed binding to win, got %q", action)
	}
}

func TestRegistryLoadFromSettings_ReplacesAll(t *testing.T) {
	r := NewDefaultRegistry(false)

	if _, ok := r.Match(Chord{Key: "o", Ctrl: true}); !ok {
		t.Fatal("Expected defaults to bind ctrl+o")
	}

	r.LoadFromSettings(map[string]Keybind{
		"quit": {Binds: []string{"Q"}},
	})

	if _, ok := r.Match(Chord{Key: "o", Ctrl: true}); ok {
		t.Error("Expected ctrl+o to be gone after reload")
	}

	action, ok := r.Match(Chord{Key: "q"})
	if !ok {
		t.Fatal("Expected q to match after reload")
	}
	if action != ActionQuit {
		t.Errorf("Expected %q via id fallback, got %q", ActionQuit, action)
	}
}

func TestRegistryLoadFromSettings_EmptyBindsUnbound(t *testing.T) {
	entries := DefaultKeybinds()
	entry := entries["close_tab"]
	entry.Binds = []string{}
	entries["close_tab"] = entry

	r := NewRegistry(false)
	r.LoadFromSettings(entries)

	if _, ok := r.Match(Chord{Key: "w", Ctrl: true}); ok {
		t.Error("Expected cleared entry to match nothing")
	}

	if got := r.GetBindingString("close_tab"); got != "unbound" {
		t.Errorf("GetBindingString() = %q, want %q", got, "unbound")
	}
}

func TestRegistryDispatch(t *testing.T) {
	r := NewDefaultRegistry(false)

	var gotPayload string
	calls := 0
	r.SetHandler(ActionSwitchTab, func(ev Chord, payload string) {
		calls++
		gotPayload = payload
	})

	if !r.Dispatch(Chord{Key: "3", Ctrl: true}) {
		t.Fatal("Expected dispatch to consume ctrl+3")
	}
	if calls != 1 {
		t.Fatalf("Expected 1 handler call, got %d", calls)
	}
	if gotPayload != "3" {
		t.Errorf("Expected payload %q, got %q", "3", gotPayload)
	}

	if r.Dispatch(Chord{Key: "f9", Ctrl: true, Alt: true}) {
		t.Error("Expected unbound chord to not be consumed")
	}
}

func TestRegistryDispatch_MissingHandler(t *testing.T) {
	r := NewDefaultRegistry(false)

	var logged []string
	r.SetReporter(func(format string, v ...any) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})

	// No handler registered for anything: a matched chord is swallowed
	// with a diagnostic instead of panicking.
	if r.Dispatch(Chord{Key: "w", Ctrl: true}) {
		t.Error("Expected dispatch without handler to report not-consumed")
	}

	if len(logged) != 1 {
		t.Fatalf("Expected 1 log line, got %d", len(logged))
	}
	if !strings.Contains(logged[0], "close_tab") {
		t.Errorf("Expected diagnostic to name the binding, got %q", logged[0])
	}
}

func TestRegistryFindConflict(t *testing.T) {
	r := NewDefaultRegistry(false)

	tests := []struct {
		name        string
		accelerator string
		excludeID   string
		wantID      string
		wantFound   bool
	}{
		{
			name:        "taken chord",
			accelerator: "CmdOrCtrl+W",
			wantID:      "close_tab",
			wantFound:   true,
		},
		{
			name:        "own entry excluded",
			accelerator: "CmdOrCtrl+W",
			excludeID:   "close_tab",
			wantFound:   false,
		},
		{
			name:        "free chord",
			accelerator: "Ctrl+Alt+F9",
			wantFound:   false,
		},
		{
			name:        "spelling variants collide",
			accelerator: "Control+Shift+T",
			wantID:      "reopen_closed_tab",
			wantFound:   true,
		},
		{
			name:        "keyless accelerator conflicts with nothing",
			accelerator: "Ctrl+",
			wantFound:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, found := r.FindConflict(tt.accelerator, tt.excludeID)
			if found != tt.wantFound {
				t.Fatalf("FindConflict(%q) found=%v, want %v", tt.accelerator, found, tt.wantFound)
			}
			if found && id != tt.wantID {
				t.Errorf("FindConflict(%q) = %q, want %q", tt.accelerator, id, tt.wantID)
			}
		})
	}
}

func TestRegistryGetBindingString(t *testing.T) {
	r := NewDefaultRegistry(false)

	got := r.GetBindingString("next_tab")
	if !strings.Contains(got, "ctrl+tab") {
		t.Errorf("Expected next_tab binding string to contain ctrl+tab, got %q", got)
	}

	if got := r.GetBindingString("no_such_entry"); got != "unbound" {
		t.Errorf("Expected unknown id to read unbound, got %q", got)
	}
}

func TestDefaultKeybindsComplete(t *testing.T) {
	entries := DefaultKeybinds()
	order := DefaultOrder()

	if len(entries) != len(order) {
		t.Errorf("Expected %d ordered ids, got %d entries", len(order), len(entries))
	}

	seen := make(map[string]bool)
	for _, id := range order {
		if seen[id] {
			t.Errorf("Duplicate id %q in default order", id)
		}
		seen[id] = true

		entry, ok := entries[id]
		if !ok {
			t.Errorf("Ordered id %q missing from default table", id)
			continue
		}

		if entry.DisplayName == "" {
			t.Errorf("Default %q has no display name", id)
		}
		if len(entry.Binds) == 0 {
			t.Errorf("Default %q ships unbound", id)
		}

		action := Action(entry.Action)
		if action == "" {
			action = Action(id)
		}
		if !IsKnownAction(action) {
			t.Errorf("Default %q resolves to unknown action %q", id, action)
		}
	}

	for id := range entries {
		if !seen[id] {
			t.Errorf("Default table id %q missing from default order", id)
		}
	}
}

func TestDefaultKeybindsNoConflicts(t *testing.T) {
	r := NewDefaultRegistry(false)

	owner := make(map[Chord]string)
	for _, b := range r.ListBindings() {
		for _, c := range b.Chords {
			if prev, taken := owner[c]; taken {
				t.Errorf("Chord %s bound to both %q and %q", c, prev, b.ID)
				continue
			}
			owner[c] = b.ID
		}
	}
}
