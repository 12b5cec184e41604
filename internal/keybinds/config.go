package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Keybind is one configurable entry as stored in the settings file, keyed
// by entry id. Action selects the handler; when empty the entry id itself
// is used, which keeps files from older versions working for entries whose
// id matches an action name.
type Keybind struct {
	DisplayName string   `json:"displayName"`
	Binds       []string `json:"binds"`
	Action      string   `json:"action,omitempty"`
	Payload     string   `json:"payload,omitempty"`
}

// Config is a standalone keybind export file, the same shape the keybinds
// section takes inside settings.json
type Config struct {
	Version  string             `json:"version"`
	Keybinds map[string]Keybind `json:"keybinds"`
}

// LoadConfig loads a keybind configuration from a JSON file. Comments and
// trailing commas are tolerated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a keybind configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ExportDefaults exports the factory keybind table as a config, useful for
// users to see what can be customized
func ExportDefaults() *Config {
	return &Config{
		Version:  "1.0",
		Keybinds: DefaultKeybinds(),
	}
}

// GetDefaultConfigPath returns the default path for a keybinds export
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".monight", "keybinds.json"), nil
}

// CreateExampleConfig writes a keybinds.json populated with the defaults so
// users have a complete file to edit
func CreateExampleConfig(path string) error {
	return SaveConfig(ExportDefaults(), path)
}
