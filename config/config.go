// Package config loads luxengine's tunables from TOML, following the
// teacher's own hand-rolled toml package and the load pattern of
// input.LoadKeyConfig and engine/fsm.LoadConfigFromPath: parse with
// toml.NewParser, then decode the resulting map[string]any by hand
// rather than via reflection tags, since the config shape here is
// small and flat enough not to need decodeStruct's generality.
package config

import (
	"fmt"
	"os"

	"github.com/lixenwraith/luxengine/toml"
)

// World holds the tile/cell grid and active-window tunables of
// spec.md §4.2 (worldgeom.TileDims, worldgeom.ActiveWindow).
type World struct {
	TileWidth    int64
	TileHeight   int64
	CellWidth    int64 // in tiles
	CellHeight   int64 // in tiles
	HalfSize     int64 // active window half-size k, spec.md §4.2
	HashCellSize int64 // spatial hash cell size, spec.md §4.1 (C2)
}

// Yang holds tunables for the compiler pipeline (spec.md §4.5-§4.7).
type Yang struct {
	// ScriptDir is where cmd/luxview looks up named light-rig scripts.
	ScriptDir string
}

// Config is the top-level tunable set, loaded from a single TOML file
// (game.toml by the teacher's own convention in engine/fsm).
type Config struct {
	World World
	Yang  Yang
}

// Default returns production-safe defaults, matching the teacher's
// network.DefaultConfig() convention of a constructor function rather
// than a package-level var.
func Default() *Config {
	return &Config{
		World: World{
			TileWidth:    16,
			TileHeight:   16,
			CellWidth:    8,
			CellHeight:   8,
			HalfSize:     2,
			HashCellSize: 128,
		},
		Yang: Yang{
			ScriptDir: "scripts",
		},
	}
}

// Load reads and parses a TOML config file at path, overlaying it on
// Default(). A missing or malformed file is an error; missing
// individual fields simply keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	p := toml.NewParser(data)
	raw, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := Default()
	if err := applyWorld(cfg, raw); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := applyYang(cfg, raw); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func applyWorld(cfg *Config, raw map[string]any) error {
	section, ok := raw["world"]
	if !ok {
		return nil
	}
	table, ok := section.(map[string]any)
	if !ok {
		return fmt.Errorf("[world]: expected table, got %T", section)
	}

	fields := []struct {
		key string
		dst *int64
	}{
		{"tile_width", &cfg.World.TileWidth},
		{"tile_height", &cfg.World.TileHeight},
		{"cell_width", &cfg.World.CellWidth},
		{"cell_height", &cfg.World.CellHeight},
		{"half_size", &cfg.World.HalfSize},
		{"hash_cell_size", &cfg.World.HashCellSize},
	}
	for _, f := range fields {
		v, ok := table[f.key]
		if !ok {
			continue
		}
		n, err := toInt64(v)
		if err != nil {
			return fmt.Errorf("[world] %s: %w", f.key, err)
		}
		*f.dst = n
	}
	return nil
}

func applyYang(cfg *Config, raw map[string]any) error {
	section, ok := raw["yang"]
	if !ok {
		return nil
	}
	table, ok := section.(map[string]any)
	if !ok {
		return fmt.Errorf("[yang]: expected table, got %T", section)
	}
	if v, ok := table["script_dir"]; ok {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("[yang] script_dir: expected string, got %T", v)
		}
		cfg.Yang.ScriptDir = s
	}
	return nil
}

// toInt64 accepts either of the integer/float shapes the teacher's
// toml parser produces for a bare number literal (parseValue casts
// TokenInteger to plain int, not int64).
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
