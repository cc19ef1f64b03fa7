package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"darkdepths/pkg/config"
	"darkdepths/pkg/engine/dungeon"
	"darkdepths/pkg/engine/tiles"
	"darkdepths/pkg/game/debugserver"
	"darkdepths/pkg/game/devtools"
	"darkdepths/pkg/game/floors"
	"darkdepths/pkg/game/lifecycle"
	"darkdepths/pkg/persistence"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	seedFlag := flag.Int64("seed", 0, "generation seed (0 = config seed, then clock)")
	dump := flag.Bool("dump", false, "write a layout dump to layout.txt")
	yamlOut := flag.Bool("yaml", false, "print the layout as YAML")
	printGrid := flag.Bool("print", false, "print the layout grid to the terminal")
	floorCount := flag.Int("floors", 1, "number of floor transitions to walk")
	serve := flag.String("serve", "", "debug server listen address (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store := openStorage(cfg.Storage, log)
	if store != nil {
		defer store.Close()
	}

	layer := tiles.NewLayer(log)
	manager := floors.NewManager(cfg.LayoutParams(), layer, store, log)

	seed := *seedFlag
	if seed == 0 {
		seed = cfg.Generation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	current, err := manager.Generate(seed)
	if err != nil {
		log.Fatal("generation failed", zap.Error(err))
	}
	for floor := 1; floor < *floorCount; floor++ {
		current, err = manager.Advance(seed + int64(floor))
		if err != nil {
			log.Fatal("floor transition failed", zap.Error(err))
		}
	}

	// Collaborator glue: room lifecycle events feed the log until real
	// encounter and camera systems attach here.
	supervisor := lifecycle.NewSupervisor(current, log)
	supervisor.OnSpawnWave(func(r *dungeon.Room) {
		log.Info("wave requested", zap.Int("row", r.Coord.Row), zap.Int("col", r.Coord.Col))
	})
	supervisor.OnRoomCleared(func(r *dungeon.Room) {
		log.Info("room cleared", zap.Int("row", r.Coord.Row), zap.Int("col", r.Coord.Col))
	})

	if *printGrid {
		devtools.PrintLayout(current)
	}
	if *yamlOut {
		if err := devtools.WriteLayoutYAML(os.Stdout, current); err != nil {
			log.Warn("yaml dump failed", zap.Error(err))
		}
	}
	if *dump {
		path, err := devtools.DumpLayoutToFile(current)
		if err != nil {
			log.Warn("layout dump failed", zap.Error(err))
		} else {
			log.Info("layout dumped", zap.String("path", path))
		}
	}

	addr := *serve
	if addr == "" {
		addr = cfg.Debug.ListenAddress
	}
	if addr != "" {
		if err := debugserver.New(manager, log).Run(addr); err != nil {
			log.Fatal("debug server failed", zap.Error(err))
		}
	}
}

// openStorage builds the configured progress store. Storage trouble is never
// fatal; the run just loses persistence.
func openStorage(cfg config.StorageConfig, log *zap.Logger) persistence.Storage {
	switch cfg.Backend {
	case "json":
		store, err := persistence.NewJSONStore(cfg.Path)
		if err != nil {
			log.Warn("json store unavailable, progress will not persist", zap.Error(err))
			return nil
		}
		return store
	case "postgres":
		store, err := persistence.NewPostgresStore(cfg.DSN)
		if err != nil {
			log.Warn("postgres store unavailable, progress will not persist", zap.Error(err))
			return nil
		}
		return store
	case "", "none":
		return nil
	default:
		log.Warn("unknown storage backend", zap.String("backend", cfg.Backend))
		return nil
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
