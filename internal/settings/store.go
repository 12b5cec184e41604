package settings

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/studiowebux/monight/internal/filter"
	"github.com/studiowebux/monight/internal/keybinds"
)

// Store handles loading and saving the settings file. Loading never fails:
// a missing, unparseable or unrecognized file yields the defaults and a
// report, so the application always starts.
type Store struct {
	path    string
	report  func(format string, v ...any)
	current Settings
}

// NewStore creates a settings store for the given file path
func NewStore(path string) *Store {
	return &Store{
		path:    path,
		report:  log.Printf,
		current: Defaults(),
	}
}

// SetReporter replaces the log function used for load diagnostics
func (s *Store) SetReporter(fn func(format string, v ...any)) {
	if fn != nil {
		s.report = fn
	}
}

// Path returns the settings file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file and merges it over the defaults. The result
// becomes the current settings and is returned.
func (s *Store) Load() Settings {
	s.current = s.loadFromDisk()
	return s.current
}

func (s *Store) loadFromDisk() Settings {
	defaults := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.report("settings: cannot read %s, using defaults: %v", s.path, err)
		}
		return defaults
	}

	data = jsonc.ToJSON(data)

	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		s.report("settings: cannot parse %s, using defaults: %v", s.path, err)
		return defaults
	}
	if !recognizedVersion(probe.Version) {
		s.report("settings: unrecognized version %q in %s, using defaults", probe.Version, s.path)
		return defaults
	}

	merged, err := Merge(defaults, data)
	if err != nil {
		s.report("settings: cannot merge %s, using defaults: %v", s.path, err)
		return defaults
	}

	return normalize(merged)
}

// Current returns the in-memory settings
func (s *Store) Current() Settings {
	return s.current
}

// Save writes the full settings object to disk
func (s *Store) Save() error {
	s.current.Version = CurrentVersion

	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Update applies a mutation to the current settings and saves
func (s *Store) Update(fn func(*Settings)) error {
	fn(&s.current)
	s.current = normalize(s.current)
	return s.Save()
}

// SetGeneral replaces the general preferences
func (s *Store) SetGeneral(g General) error {
	return s.Update(func(st *Settings) {
		st.General = g
	})
}

// SetKeybind replaces one keybind entry
func (s *Store) SetKeybind(id string, kb keybinds.Keybind) error {
	return s.Update(func(st *Settings) {
		if st.Keybinds == nil {
			st.Keybinds = make(map[string]keybinds.Keybind)
		}
		st.Keybinds[id] = kb
	})
}

// RemoveKeybind drops a keybind entry entirely. Clearing an entry's binds
// is the usual way to unbind; removing restores the default on next load.
func (s *Store) RemoveKeybind(id string) error {
	return s.Update(func(st *Settings) {
		delete(st.Keybinds, id)
	})
}

// SetLastFilter remembers the active filter for the next start
func (s *Store) SetLastFilter(f *filter.Settings) error {
	return s.Update(func(st *Settings) {
		st.LastFilter = f
	})
}

// Reset restores factory settings and saves them
func (s *Store) Reset() error {
	s.current = Defaults()
	return s.Save()
}
