package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Hotkeys are the global shortcuts registered with the OS.
type Hotkeys struct {
	ToggleOverlay string `json:"toggleOverlay"`
	NewNote       string `json:"newNote"`
	Search        string `json:"search"`
	Archive       string `json:"archive"`
}

// Config is the user-editable application configuration, persisted as
// <home>/PhasePad/config.json.
type Config struct {
	DataPath        string  `json:"dataPath"`
	Hotkeys         Hotkeys `json:"hotkeys"`
	ConfirmDelete   bool    `json:"confirmDelete"`
	CheckForUpdates bool    `json:"checkForUpdates"`
	Theme           string  `json:"theme"`
	FontFamily      string  `json:"fontFamily"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataPath: filepath.Join(home, "PhasePad", "data"),
		Hotkeys: Hotkeys{
			ToggleOverlay: "Alt+Q",
			NewNote:       "Ctrl+Shift+N",
			Search:        "Ctrl+F",
			Archive:       "Ctrl+Shift+A",
		},
		ConfirmDelete:   true,
		CheckForUpdates: true,
		Theme:           "default",
		FontFamily:      "system",
	}
}

// Path returns the config file location.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "PhasePad", "config.json")
}

// Load reads the config file and merges it over the defaults. Missing or
// corrupt files just yield the defaults.
func Load() Config {
	return LoadFile(Path())
}

// LoadFile is Load against an explicit path.
func LoadFile(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("config: parse %s: %v", path, err)
		return Default()
	}
	if cfg.DataPath == "" {
		cfg.DataPath = Default().DataPath
	}
	return cfg
}

// Save writes the config file, creating its directory first.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile is Save against an explicit path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
