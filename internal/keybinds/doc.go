/*
Package keybinds provides customizable keyboard binding management.

# Overview

The keybinds package maps key chords to a fixed set of application actions.
Users rebind freely through the settings file; the action set itself is
closed at compile time, so a config can change which keys trigger an action
but never invent new behavior.

# Key Concepts

Chord:
  - Normalized form of one key combination
  - Lowercase key name plus exact ctrl/meta/shift/alt flags
  - Parsed accelerators and host key events share this shape, so
    matching is plain field equality

Accelerator strings:
  - Human-written forms like "CmdOrCtrl+Shift+T"
  - Tokens split on '+', trimmed, lowercased
  - CmdOrCtrl resolves to cmd on macOS and ctrl elsewhere
  - Parsing is tolerant: junk never fails, it just never matches

Actions and payloads:
  - Actions are constants (ActionZoomIn, ActionCloseTab, ...)
  - An entry may carry a payload ("switch_tab" entries carry the tab
    position, "apply_preset" entries carry the preset name)
  - Handlers are wired once at startup and never change at runtime

# Components

Registry (registry.go):
  - Ordered binding storage, first installed wins on chord conflicts
  - Match resolves a chord to an action
  - Dispatch invokes the wired handler, logging when none is registered
  - FindConflict gives edit-time feedback for settings screens

Parser (parser.go):
  - ParseAccelerator turns accelerator strings into chords
  - NormalizeKey folds host key name variants into canonical names

Validator (validator.go):
  - Flags unknown actions with did-you-mean suggestions
  - Warns about duplicate chords and keyless accelerators
  - Advisory only, never blocks a load

Defaults (defaults.go):
  - Factory keybind table and its canonical order
  - The settings layer merges the stored file over this table

# Configuration File Format

Keybind entries are stored as a JSON object keyed by entry id:

	{
	  "keybinds": {
	    "zoom_in": {
	      "displayName": "Zoom In",
	      "binds": ["CmdOrCtrl+Plus", "CmdOrCtrl+="]
	    },
	    "switch_tab_9": {
	      "displayName": "Switch to Last Tab",
	      "binds": ["CmdOrCtrl+9"],
	      "action": "switch_tab",
	      "payload": "9"
	    }
	  }
	}

An entry with an empty binds list is explicitly unbound. Loading a config
replaces all bindings; defaults are not re-added afterwards.

# Example Usage

	registry := keybinds.NewRegistry(keybinds.IsMacPlatform())
	registry.SetHandler(keybinds.ActionZoomIn, func(ev keybinds.Chord, payload string) {
		// zoom
	})
	registry.LoadFromSettings(store.Current().Keybinds)

	// Match keys during runtime
	if registry.Dispatch(chord) {
		// event consumed
	}

# Thread Safety

The Registry is not synchronized. All methods are expected to run on the
host event loop, matching how key events arrive.
*/
package keybinds
