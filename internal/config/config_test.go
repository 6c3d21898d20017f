package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.DBPath != DefaultDBName {
		t.Errorf("db path = %q, want %q", cfg.DBPath, DefaultDBName)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// Second load reads the written file back.
	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.Keys.Quit != cfg.Keys.Quit {
		t.Errorf("keymap did not round-trip: %q vs %q", again.Keys.Quit, cfg.Keys.Quit)
	}
}

func TestLoadOrCreateFillsMissingPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_filter = \"active\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.DBPath != DefaultDBName {
		t.Errorf("empty db_path not defaulted: %q", cfg.DBPath)
	}
	if cfg.ExportPath != DefaultExportName {
		t.Errorf("empty export_path not defaulted: %q", cfg.ExportPath)
	}
	if cfg.DefaultFilter != "active" {
		t.Errorf("default_filter = %q, want active", cfg.DefaultFilter)
	}
}
