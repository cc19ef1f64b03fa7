// Package config loads the TOML configuration for the dungeon service.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"darkdepths/pkg/game/layout"
)

type Config struct {
	Grid       GridConfig       `toml:"grid"`
	Room       RoomConfig       `toml:"room"`
	Generation GenerationConfig `toml:"generation"`
	Storage    StorageConfig    `toml:"storage"`
	Debug      DebugConfig      `toml:"debug"`
	Logging    LoggingConfig    `toml:"logging"`
}

type GridConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

type RoomConfig struct {
	InteriorWidth  int `toml:"interior_width"`
	InteriorHeight int `toml:"interior_height"`
	SpacingX       int `toml:"spacing_x"`
	SpacingY       int `toml:"spacing_y"`
}

type GenerationConfig struct {
	TargetFightRooms int `toml:"target_fight_rooms"`
	// Seed used when none is given on the command line. 0 means derive
	// one from the clock.
	Seed int64 `toml:"seed"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // "json" or "postgres"
	Path    string `toml:"path"`    // json backend
	DSN     string `toml:"dsn"`     // postgres backend
}

type DebugConfig struct {
	// Address for the debug websocket server; empty disables it.
	ListenAddress string `toml:"listen_address"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML config from path, applying defaults for any field the
// file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration, used when no config file is
// supplied.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	p := layout.DefaultParams()
	return &Config{
		Grid: GridConfig{
			Rows: p.Rows,
			Cols: p.Cols,
		},
		Room: RoomConfig{
			InteriorWidth:  p.InteriorWidth,
			InteriorHeight: p.InteriorHeight,
			SpacingX:       p.SpacingX,
			SpacingY:       p.SpacingY,
		},
		Generation: GenerationConfig{
			TargetFightRooms: p.TargetFightRooms,
		},
		Storage: StorageConfig{
			Backend: "json",
			Path:    "darkdepths.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LayoutParams maps the config onto generation parameters.
func (c *Config) LayoutParams() layout.Params {
	return layout.Params{
		Rows:             c.Grid.Rows,
		Cols:             c.Grid.Cols,
		InteriorWidth:    c.Room.InteriorWidth,
		InteriorHeight:   c.Room.InteriorHeight,
		SpacingX:         c.Room.SpacingX,
		SpacingY:         c.Room.SpacingY,
		TargetFightRooms: c.Generation.TargetFightRooms,
	}
}
