package main

import (
	"log/slog"

	"github.com/profan/dear-xenko/internal/config"
	"github.com/profan/dear-xenko/internal/game"
	"github.com/profan/dear-xenko/internal/graphics/gltfscene"
	"github.com/profan/dear-xenko/internal/graphics/renderables/blocks"
	"github.com/profan/dear-xenko/internal/profiling"
	"github.com/profan/dear-xenko/internal/world"

	"github.com/pkg/errors"
)

// runHeadless meshes the world into in-memory buffers for cfg.Ticks frames
// and writes the resulting scene to cfg.ExportPath.
func runHeadless(cfg *config.Config, w *world.World, log *slog.Logger) error {
	device := gltfscene.NewDevice()
	scene := gltfscene.NewScene(device)
	chunks := blocks.NewChunkRenderer(device, scene,
		blocks.WithLogger(log),
		blocks.WithInitialCapacity(cfg.InitialBufferElements),
	)
	driver := game.NewDriver(w, chunks,
		game.WithLogger(log),
		game.WithNeighborCulling(cfg.NeighborCulling),
		game.WithReporter(game.LogReporter{Log: log}),
	)

	for i := 0; i < max(cfg.Ticks, 1); i++ {
		profiling.ResetFrame()
		if err := driver.Tick(0); err != nil {
			return errors.Wrapf(err, "tick %d", i)
		}
	}

	if err := scene.Save(cfg.ExportPath); err != nil {
		return err
	}
	st := chunks.Stats()
	log.Info("scene exported",
		"path", cfg.ExportPath,
		"chunks", st.Records,
		"indices", st.Indices,
		"buffer_bytes", device.Stats().LiveBytes,
	)
	return chunks.Dispose()
}
