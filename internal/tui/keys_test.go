package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/monight/internal/keybinds"
)

func TestChordFromKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want keybinds.Chord
	}{
		{
			"plain letter",
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")},
			keybinds.Chord{Key: "a"},
		},
		{
			"uppercase letter folds to shift",
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")},
			keybinds.Chord{Shift: true, Key: "g"},
		},
		{
			"ctrl combination",
			tea.KeyMsg{Type: tea.KeyCtrlA},
			keybinds.Chord{Ctrl: true, Key: "a"},
		},
		{
			"alt combination",
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g"), Alt: true},
			keybinds.Chord{Alt: true, Key: "g"},
		},
		{
			"escape normalizes",
			tea.KeyMsg{Type: tea.KeyEsc},
			keybinds.Chord{Key: "escape"},
		},
		{
			"space normalizes",
			tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")},
			keybinds.Chord{Key: "space"},
		},
		{
			"literal plus key",
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")},
			keybinds.Chord{Key: "plus"},
		},
		{
			"arrow key",
			tea.KeyMsg{Type: tea.KeyRight},
			keybinds.Chord{Key: "right"},
		},
		{
			"function key",
			tea.KeyMsg{Type: tea.KeyF1},
			keybinds.Chord{Key: "f1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chordFromKey(tt.msg); got != tt.want {
				t.Errorf("chordFromKey(%q) = %+v, want %+v", tt.msg.String(), got, tt.want)
			}
		})
	}
}
