package settings

import (
	"strings"

	"github.com/studiowebux/monight/internal/filter"
	"github.com/studiowebux/monight/internal/keybinds"
)

// CurrentVersion is written to every saved settings file
const CurrentVersion = "1.1.0"

// Settings is the full persisted settings document. Saves always write the
// whole object; there is no per-key persistence.
type Settings struct {
	Version    string                      `json:"version"`
	General    General                     `json:"general"`
	Keybinds   map[string]keybinds.Keybind `json:"keybinds"`
	LastFilter *filter.Settings            `json:"lastFilter,omitempty"`
}

// General holds application-level preferences
type General struct {
	DefaultViewMode    string `json:"defaultViewMode"`
	DefaultPreset      string `json:"defaultPreset"`
	RememberLastFilter bool   `json:"rememberLastFilter"`
	StopOnOpenError    bool   `json:"stopOnOpenError"`
	RecentsLimit       int    `json:"recentsLimit"`
}

// Defaults returns the factory settings
func Defaults() Settings {
	return Settings{
		Version: CurrentVersion,
		General: General{
			DefaultViewMode:    "single",
			DefaultPreset:      filter.PresetDefault,
			RememberLastFilter: true,
			StopOnOpenError:    false,
			RecentsLimit:       10,
		},
		Keybinds: keybinds.DefaultKeybinds(),
	}
}

// recognizedVersion reports whether a stored version marker belongs to a
// format this build can merge. Unknown markers mean the whole file is
// ignored in favor of defaults.
func recognizedVersion(v string) bool {
	return strings.HasPrefix(v, "1.")
}

// normalize repairs values a hand-edited file can break without making the
// load fail
func normalize(s Settings) Settings {
	if s.General.DefaultViewMode != "single" && s.General.DefaultViewMode != "continuous" {
		s.General.DefaultViewMode = "single"
	}
	if _, ok := filter.Preset(s.General.DefaultPreset); !ok {
		s.General.DefaultPreset = filter.PresetDefault
	}
	if s.General.RecentsLimit <= 0 {
		s.General.RecentsLimit = 10
	}
	if s.Keybinds == nil {
		s.Keybinds = keybinds.DefaultKeybinds()
	}
	if s.LastFilter != nil {
		clamped := s.LastFilter.Clamp()
		s.LastFilter = &clamped
	}
	s.Version = CurrentVersion
	return s
}
