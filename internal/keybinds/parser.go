package keybinds

import (
	"runtime"
	"strings"
)

// Chord is the normalized form of one key combination: a lowercase key name
// plus exact modifier flags. Input events and parsed accelerator strings
// share this shape so matching is plain field equality.
type Chord struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
}

// keyAliases folds the different spellings hosts and config files use for
// the same key into one canonical name
var keyAliases = map[string]string{
	"esc":      "escape",
	"return":   "enter",
	"del":      "delete",
	"pgup":     "pageup",
	"pgdown":   "pagedown",
	"pgdn":     "pagedown",
	"spacebar": "space",
	" ":        "space",
	"+":        "plus",
}

// modifierNames are tokens that set a flag instead of the key. A key press
// consisting of only one of these never matches a binding.
var modifierNames = map[string]bool{
	"ctrl": true, "control": true,
	"meta": true, "cmd": true, "command": true, "super": true,
	"shift": true,
	"alt":   true, "option": true,
	"cmdorctrl": true, "commandorcontrol": true,
}

// IsMacPlatform reports whether the CmdOrCtrl pseudo-modifier should
// resolve to the meta key
func IsMacPlatform() bool {
	return runtime.GOOS == "darwin"
}

// ParseAccelerator turns an accelerator string like "CmdOrCtrl+Shift+T"
// into a Chord. Tokens are split on '+', trimmed and lowercased. Modifier
// tokens set flags; the last non-modifier token becomes the key. The parser
// is tolerant, not validating: junk input yields a chord that simply never
// matches anything.
func ParseAccelerator(text string, mac bool) Chord {
	var c Chord

	for _, tok := range strings.Split(text, "+") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}

		switch tok {
		case "ctrl", "control":
			c.Ctrl = true
		case "meta", "cmd", "command", "super":
			c.Meta = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		case "cmdorctrl", "commandorcontrol":
			if mac {
				c.Meta = true
			} else {
				c.Ctrl = true
			}
		default:
			c.Key = NormalizeKey(tok)
		}
	}

	return c
}

// NormalizeKey lowercases a key name and folds known aliases
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

// IsModifierOnly reports whether the chord is a bare modifier press
// (ctrl, shift, alt or meta alone, or no key at all)
func (c Chord) IsModifierOnly() bool {
	return c.Key == "" || modifierNames[c.Key]
}

// String renders the chord in canonical ctrl+meta+shift+alt+key order
func (c Chord) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Meta {
		parts = append(parts, "cmd")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}
