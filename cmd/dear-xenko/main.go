// Command dear-xenko builds a chunked voxel world and keeps its meshes on
// screen, or exports them to glTF without a window.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/profan/dear-xenko/internal/config"
	"github.com/profan/dear-xenko/internal/profiling"
	"github.com/profan/dear-xenko/internal/registry"

	"github.com/faiface/mainthread"
	"github.com/xlab/closer"
	"golang.org/x/term"
)

func main() {
	cfg := config.DefaultConfig()
	configPath := flag.String("config", "", "path to a JSON config file")
	flag.IntVar(&cfg.WorldWidth, "width", cfg.WorldWidth, "world width in chunks")
	flag.IntVar(&cfg.WorldHeight, "height", cfg.WorldHeight, "world height in chunks")
	flag.IntVar(&cfg.WorldDepth, "depth", cfg.WorldDepth, "world depth in chunks (0 = derived)")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "placeholder, flat or terrain")
	flag.StringVar(&cfg.FillBlock, "fill", cfg.FillBlock, "block used by the placeholder generator")
	flag.IntVar(&cfg.FlatHeight, "flat-height", cfg.FlatHeight, "surface height for the flat generator")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "terrain seed")
	flag.BoolVar(&cfg.NeighborCulling, "neighbor-culling", cfg.NeighborCulling, "cull faces against adjacent chunks")
	flag.IntVar(&cfg.InitialBufferElements, "initial-buffer", cfg.InitialBufferElements, "initial elements per chunk buffer")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "gl or gltf")
	flag.StringVar(&cfg.ExportPath, "out", cfg.ExportPath, "glTF output path (.gltf or .glb)")
	flag.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "frames to run before exporting (gltf backend)")
	flag.IntVar(&cfg.WindowWidth, "window-width", cfg.WindowWidth, "window width in pixels")
	flag.IntVar(&cfg.WindowHeight, "window-height", cfg.WindowHeight, "window height in pixels")
	flag.IntVar(&cfg.FPSLimit, "fps", cfg.FPSLimit, "frame rate cap, 0 for none")
	flag.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "show the stats overlay")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			slog.Error("load config", "err", err)
			os.Exit(2)
		}
		config.Merge(cfg, fromFile, explicit)
	}

	log := newLogger(cfg.SlogLevel())
	slog.SetDefault(log)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(2)
	}
	config.ApplyRenderSettings(cfg)

	closer.Bind(func() {
		log.Info("shutdown", "faces_meshed", profiling.Counter("meshing.faces"))
	})

	w, err := buildWorld(cfg)
	if err != nil {
		log.Error("build world", "err", err)
		os.Exit(2)
	}
	width, height, depth := w.Dims()
	log.Info("world ready", "width", width, "height", height, "depth", depth,
		"generator", cfg.Generator, "backend", cfg.Backend, "blocks", registry.Census(w))

	switch cfg.Backend {
	case "gltf":
		err = runHeadless(cfg, w, log)
	default:
		mainthread.Run(func() { err = runWindowed(cfg, w, log) })
	}
	if err != nil {
		log.Error("fatal", "err", err)
		closer.Exit(1)
	}
	closer.Close()
}

// newLogger writes text to a terminal and JSON lines otherwise.
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
