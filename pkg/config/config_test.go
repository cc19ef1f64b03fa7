package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[grid]
rows = 4
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Grid.Rows != 4 {
		t.Errorf("expected rows 4 from file, got %d", cfg.Grid.Rows)
	}
	// Fields the file leaves unset keep the defaults.
	if cfg.Grid.Cols != Default().Grid.Cols {
		t.Errorf("expected default cols, got %d", cfg.Grid.Cols)
	}
	if cfg.Room.InteriorWidth != Default().Room.InteriorWidth {
		t.Errorf("expected default interior width, got %d", cfg.Room.InteriorWidth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
[grid]
rows = 5
cols = 7

[room]
interior_width = 12
interior_height = 8
spacing_x = 14
spacing_y = 10

[generation]
target_fight_rooms = 9
seed = 42

[storage]
backend = "postgres"
dsn = "postgres://localhost/darkdepths"

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := cfg.LayoutParams()
	if p.Rows != 5 || p.Cols != 7 {
		t.Errorf("expected 5x7 grid params, got %dx%d", p.Rows, p.Cols)
	}
	if p.InteriorWidth != 12 || p.InteriorHeight != 8 {
		t.Errorf("expected 12x8 interior, got %dx%d", p.InteriorWidth, p.InteriorHeight)
	}
	if p.TargetFightRooms != 9 {
		t.Errorf("expected 9 fight rooms, got %d", p.TargetFightRooms)
	}
	if cfg.Generation.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Generation.Seed)
	}
	if cfg.Storage.Backend != "postgres" {
		t.Errorf("expected postgres backend, got %q", cfg.Storage.Backend)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, `rows = [`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}
