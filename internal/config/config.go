package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Config holds the application configuration.
type Config struct {
	WorldWidth  int    `json:"world_width"`  // chunks along X
	WorldHeight int    `json:"world_height"` // chunks along Y
	WorldDepth  int    `json:"world_depth"`  // chunks along Z, 0 = derived from the base height
	Generator   string `json:"generator"`    // "placeholder", "flat" or "terrain"
	FillBlock   string `json:"fill_block"`   // block name used by the placeholder generator
	FlatHeight  int    `json:"flat_height"`
	Seed        int64  `json:"seed"`

	NeighborCulling       bool `json:"neighbor_culling"`
	InitialBufferElements int  `json:"initial_buffer_elements"`

	Backend    string `json:"backend"`     // "gl" or "gltf"
	ExportPath string `json:"export_path"` // gltf backend output
	Ticks      int    `json:"ticks"`       // gltf backend frame count

	WindowWidth  int  `json:"window_width"`
	WindowHeight int  `json:"window_height"`
	FPSLimit     int  `json:"fps_limit"`
	ShowStats    bool `json:"show_stats"`

	LogLevel string `json:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:            4,
		WorldHeight:           4,
		Generator:             "placeholder",
		FillBlock:             "solid",
		FlatHeight:            24,
		InitialBufferElements: 16,
		Backend:               "gl",
		ExportPath:            "world.gltf",
		Ticks:                 1,
		WindowWidth:           900,
		WindowHeight:          600,
		FPSLimit:              120,
		ShowStats:             true,
		LogLevel:              "info",
	}
}

// Load reads a JSON config file. Fields absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.WorldWidth = fromFile.WorldWidth
	}
	if !explicitFlags["height"] {
		cfg.WorldHeight = fromFile.WorldHeight
	}
	if !explicitFlags["depth"] {
		cfg.WorldDepth = fromFile.WorldDepth
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["fill"] {
		cfg.FillBlock = fromFile.FillBlock
	}
	if !explicitFlags["flat-height"] {
		cfg.FlatHeight = fromFile.FlatHeight
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["neighbor-culling"] {
		cfg.NeighborCulling = fromFile.NeighborCulling
	}
	if !explicitFlags["initial-buffer"] {
		cfg.InitialBufferElements = fromFile.InitialBufferElements
	}
	if !explicitFlags["backend"] {
		cfg.Backend = fromFile.Backend
	}
	if !explicitFlags["out"] {
		cfg.ExportPath = fromFile.ExportPath
	}
	if !explicitFlags["ticks"] {
		cfg.Ticks = fromFile.Ticks
	}
	if !explicitFlags["window-width"] {
		cfg.WindowWidth = fromFile.WindowWidth
	}
	if !explicitFlags["window-height"] {
		cfg.WindowHeight = fromFile.WindowHeight
	}
	if !explicitFlags["fps"] {
		cfg.FPSLimit = fromFile.FPSLimit
	}
	if !explicitFlags["stats"] {
		cfg.ShowStats = fromFile.ShowStats
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}

// Validate rejects configurations the world or the host can not run with.
func (c *Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 || c.WorldDepth < 0 {
		return errors.Errorf("invalid world size %dx%dx%d", c.WorldWidth, c.WorldHeight, c.WorldDepth)
	}
	switch c.Generator {
	case "placeholder", "flat", "terrain":
	default:
		return errors.Errorf("unknown generator %q", c.Generator)
	}
	switch c.Backend {
	case "gl", "gltf":
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	if c.InitialBufferElements <= 0 {
		return errors.Errorf("initial buffer size must be positive, got %d", c.InitialBufferElements)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
