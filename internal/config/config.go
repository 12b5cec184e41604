package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.monight)
	ConfigDir string

	// SettingsFile is the persisted settings blob (general preferences, keybinds, last filter)
	SettingsFile string

	// DatabasePath is the SQLite database file for recently opened documents
	DatabasePath string

	// PortFile records the websocket port of a running instance so a second
	// launch can hand its file arguments over instead of starting a new UI
	PortFile string

	// ExportDir is the default destination for exported page images
	ExportDir string
)

// Initialize sets up the configuration directories and files
// It creates ~/.monight/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".monight")
	SettingsFile = filepath.Join(ConfigDir, "settings.json")
	DatabasePath = filepath.Join(ConfigDir, "monight.db")
	PortFile = filepath.Join(ConfigDir, ".port")
	ExportDir = filepath.Join(ConfigDir, "exports")

	dirs := []string{ConfigDir, ExportDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetSettingsFilePath returns the settings file path (local or global)
// A settings.json in the working directory takes precedence, which makes
// per-project setups and tests straightforward
func GetSettingsFilePath() string {
	if _, err := os.Stat("settings.json"); err == nil {
		return "settings.json"
	}
	return SettingsFile
}

// WritePortFile records the running instance's hand-off port
func WritePortFile(port int) error {
	return os.WriteFile(PortFile, []byte(strconv.Itoa(port)), FilePermissions)
}

// ReadPortFile returns the recorded hand-off port, or 0 when no instance
// has registered one
func ReadPortFile() int {
	data, err := os.ReadFile(PortFile)
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || port <= 0 || port > 65535 {
		return 0
	}
	return port
}

// RemovePortFile clears the hand-off registration on shutdown
func RemovePortFile() {
	_ = os.Remove(PortFile)
}
