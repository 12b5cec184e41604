package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiowebux/monight/internal/filter"
	"github.com/studiowebux/monight/internal/keybinds"
)

func newTestStore(t *testing.T) (*Store, *[]string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewStore(path)

	var logged []string
	store.SetReporter(func(format string, v ...any) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})

	return store, &logged
}

func TestStoreLoad_MissingFile(t *testing.T) {
	store, logged := newTestStore(t)

	got := store.Load()

	if got.General.DefaultViewMode != "single" {
		t.Errorf("Expected defaults, got view mode %q", got.General.DefaultViewMode)
	}
	if len(*logged) != 0 {
		t.Errorf("Expected missing file to load silently, got %d reports", len(*logged))
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("Expected load to not create the settings file")
	}
}

func TestStoreLoad_InvalidJSON(t *testing.T) {
	store, logged := newTestStore(t)

	if err := os.WriteFile(store.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := store.Load()

	if got.General.RecentsLimit != Defaults().General.RecentsLimit {
		t.Error("Expected defaults after parse failure")
	}
	if len(*logged) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(*logged))
	}
	if !strings.Contains((*logged)[0], "cannot parse") {
		t.Errorf("Unexpected report: %s", (*logged)[0])
	}
}

func TestStoreLoad_UnrecognizedVersion(t *testing.T) {
	store, logged := newTestStore(t)

	content := `{"version": "9.0.0", "general": {"defaultViewMode": "continuous"}}`
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := store.Load()

	if got.General.DefaultViewMode != "single" {
		t.Error("Expected unrecognized version to be ignored entirely")
	}
	if len(*logged) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(*logged))
	}
	if !strings.Contains((*logged)[0], "unrecognized version") {
		t.Errorf("Unexpected report: %s", (*logged)[0])
	}
}

func TestStoreLoad_MergesStoredFile(t *testing.T) {
	store, logged := newTestStore(t)

	content := `{
		"version": "1.0.0",
		"general": {"defaultViewMode": "continuous"},
		"keybinds": {
			"close_tab": {"binds": ["CmdOrCtrl+X"]}
		},
		"lastFilter": {"brightness": 30, "invert": 90}
	}`
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := store.Load()

	if len(*logged) != 0 {
		t.Fatalf("Expected clean load, got reports: %v", *logged)
	}
	if got.General.DefaultViewMode != "continuous" {
		t.Errorf("Expected stored view mode, got %q", got.General.DefaultViewMode)
	}
	if got.General.RecentsLimit != 10 {
		t.Errorf("Expected default recents limit, got %d", got.General.RecentsLimit)
	}

	closeTab := got.Keybinds["close_tab"]
	if len(closeTab.Binds) != 1 || closeTab.Binds[0] != "CmdOrCtrl+X" {
		t.Errorf("Expected rebound close_tab, got %v", closeTab.Binds)
	}
	if openFile := got.Keybinds["open_file"]; len(openFile.Binds) == 0 {
		t.Error("Expected untouched entries to keep defaults")
	}

	if got.LastFilter == nil {
		t.Fatal("Expected lastFilter to load")
	}
	if got.LastFilter.Brightness != 30 || got.LastFilter.Invert != 90 {
		t.Errorf("Unexpected lastFilter %+v", got.LastFilter)
	}
	if got.Version != CurrentVersion {
		t.Errorf("Expected version stamped to %q, got %q", CurrentVersion, got.Version)
	}
}

func TestStoreLoad_ToleratesComments(t *testing.T) {
	store, logged := newTestStore(t)

	content := `{
		// hand-edited
		"version": "1.1.0",
		"general": {"recentsLimit": 25,},
	}`
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := store.Load()

	if len(*logged) != 0 {
		t.Fatalf("Expected commented file to load, got reports: %v", *logged)
	}
	if got.General.RecentsLimit != 25 {
		t.Errorf("Expected recents limit 25, got %d", got.General.RecentsLimit)
	}
}

func TestStoreSave_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	store.Load()

	general := store.Current().General
	general.DefaultViewMode = "continuous"
	general.RecentsLimit = 42
	if err := store.SetGeneral(general); err != nil {
		t.Fatalf("SetGeneral() error = %v", err)
	}

	reopened := NewStore(store.Path())
	got := reopened.Load()

	if got.General.DefaultViewMode != "continuous" {
		t.Errorf("Expected saved view mode to survive reload, got %q", got.General.DefaultViewMode)
	}
	if got.General.RecentsLimit != 42 {
		t.Errorf("Expected saved recents limit to survive reload, got %d", got.General.RecentsLimit)
	}
}

func TestStoreSetKeybind_WritesThrough(t *testing.T) {
	store, _ := newTestStore(t)
	store.Load()

	err := store.SetKeybind("close_tab", keybinds.Keybind{
		DisplayName: "Close Tab",
		Binds:       []string{"CmdOrCtrl+D"},
		Action:      string(keybinds.ActionCloseTab),
	})
	if err != nil {
		t.Fatalf("SetKeybind() error = %v", err)
	}

	// The file must reflect the change immediately, not on shutdown.
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "CmdOrCtrl+D") {
		t.Error("Expected settings file to contain the new bind")
	}
}

func TestStoreSetLastFilter(t *testing.T) {
	store, _ := newTestStore(t)
	store.Load()

	f := filter.Settings{Brightness: 20, Invert: 90, Sepia: 10, Hue: 180}
	if err := store.SetLastFilter(&f); err != nil {
		t.Fatalf("SetLastFilter() error = %v", err)
	}

	got := NewStore(store.Path()).Load()
	if got.LastFilter == nil {
		t.Fatal("Expected lastFilter to persist")
	}
	if *got.LastFilter != f {
		t.Errorf("Expected %+v, got %+v", f, *got.LastFilter)
	}

	if err := store.SetLastFilter(nil); err != nil {
		t.Fatalf("SetLastFilter(nil) error = %v", err)
	}
	got = NewStore(store.Path()).Load()
	if got.LastFilter != nil {
		t.Error("Expected cleared lastFilter to persist as absent")
	}
}

func TestStoreReset(t *testing.T) {
	store, _ := newTestStore(t)
	store.Load()

	general := store.Current().General
	general.RecentsLimit = 42
	if err := store.SetGeneral(general); err != nil {
		t.Fatalf("SetGeneral() error = %v", err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	got := NewStore(store.Path()).Load()
	if got.General.RecentsLimit != Defaults().General.RecentsLimit {
		t.Errorf("Expected factory recents limit after reset, got %d", got.General.RecentsLimit)
	}
}
