package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"phasepad/internal/config"
)

func TestLoadFile_MissingYieldsDefaults(t *testing.T) {
	cfg := config.LoadFile(filepath.Join(t.TempDir(), "config.json"))
	def := config.Default()
	if cfg.DataPath != def.DataPath || cfg.Hotkeys.ToggleOverlay != "Alt+Q" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if !cfg.ConfirmDelete {
		t.Error("confirmDelete should default on")
	}
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"theme":"dark","hotkeys":{"toggleOverlay":"Alt+Space"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.LoadFile(path)
	if cfg.Theme != "dark" {
		t.Errorf("theme override lost: %s", cfg.Theme)
	}
	if cfg.Hotkeys.ToggleOverlay != "Alt+Space" {
		t.Errorf("hotkey override lost: %s", cfg.Hotkeys.ToggleOverlay)
	}
	if cfg.Hotkeys.NewNote != "Ctrl+Shift+N" {
		t.Errorf("unset hotkey should keep its default: %s", cfg.Hotkeys.NewNote)
	}
	if cfg.DataPath == "" {
		t.Error("dataPath must never come back empty")
	}
}

func TestLoadFile_CorruptYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.LoadFile(path)
	if cfg.Theme != config.Default().Theme {
		t.Errorf("expected defaults for corrupt file, got %+v", cfg)
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := config.Default()
	cfg.Theme = "dark"
	cfg.FontFamily = "monospace"

	if err := config.SaveFile(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded := config.LoadFile(path)
	if loaded.Theme != "dark" || loaded.FontFamily != "monospace" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}
