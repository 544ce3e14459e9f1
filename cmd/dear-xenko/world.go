package main

import (
	"strings"

	"github.com/profan/dear-xenko/internal/config"
	"github.com/profan/dear-xenko/internal/registry"
	"github.com/profan/dear-xenko/internal/world"

	"github.com/pkg/errors"
)

// buildWorld allocates the chunk grid and fills it with the configured
// generator. The result is fully dirty.
func buildWorld(cfg *config.Config) (*world.World, error) {
	depth := cfg.WorldDepth
	if depth == 0 {
		depth = world.DefaultDepth
	}

	var gen world.TerrainGenerator
	switch cfg.Generator {
	case "placeholder":
		block, ok := registry.ByName(cfg.FillBlock)
		if !ok {
			return nil, errors.Errorf("unknown block %q, known: %s", cfg.FillBlock, strings.Join(registry.Names(), ", "))
		}
		gen = world.PlaceholderGenerator{Block: block}
	case "flat":
		gen = world.NewFlatGenerator(cfg.FlatHeight)
	case "terrain":
		gen = world.NewSimplexGenerator(cfg.Seed, cfg.WorldHeight*world.ChunkSize)
	default:
		return nil, errors.Errorf("unknown generator %q", cfg.Generator)
	}

	w := world.NewEmpty(cfg.WorldWidth, cfg.WorldHeight, depth, world.WithNeighborDirtying(cfg.NeighborCulling))
	world.Generate(w, gen)
	return w, nil
}
