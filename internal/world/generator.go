package world

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// TerrainGenerator fills chunks with content.
type TerrainGenerator interface {
	PopulateChunk(coord ChunkCoord, c *Chunk)
}

// Generate populates every chunk of w and flags the whole world for meshing.
func Generate(w *World, gen TerrainGenerator) {
	w.ForEachChunk(gen.PopulateChunk)
	w.MarkAllDirty()
}

// PlaceholderGenerator fills every cell with a single block type.
type PlaceholderGenerator struct {
	Block BlockType
}

func (g PlaceholderGenerator) PopulateChunk(_ ChunkCoord, c *Chunk) {
	c.Fill(g.Block)
}

// FlatGenerator produces a flat surface at a fixed height.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a generator whose surface sits at y = height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

// HeightAt always returns the configured height.
func (g *FlatGenerator) HeightAt(_, _ int) int {
	return g.height
}

func (g *FlatGenerator) PopulateChunk(coord ChunkCoord, c *Chunk) {
	populateColumns(coord, c, g.HeightAt)
}

// SimplexGenerator builds rolling terrain from 2D simplex noise.
type SimplexGenerator struct {
	noise       opensimplex.Noise
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
	maxHeight   int
}

// NewSimplexGenerator creates a terrain generator. maxHeight caps the surface
// so it stays inside a world of that many voxels.
func NewSimplexGenerator(seed int64, maxHeight int) *SimplexGenerator {
	return &SimplexGenerator{
		noise:       opensimplex.New(seed),
		scale:       1.0 / 48.0,
		baseHeight:  maxHeight / 2,
		amp:         float64(maxHeight) / 4,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
		maxHeight:   maxHeight,
	}
}

// HeightAt computes the surface height (block Y) at world X,Z.
func (g *SimplexGenerator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale

	var sum, norm float64
	amp, freq := 1.0, 1.0
	for o := 0; o < g.octaves; o++ {
		sum += g.noise.Eval2(x*freq, z*freq) * amp
		norm += amp
		amp *= g.persistence
		freq *= g.lacunarity
	}
	height := float64(g.baseHeight) + sum/norm*g.amp
	if height < 1 {
		height = 1
	}
	if top := float64(g.maxHeight - 1); height > top {
		height = top
	}
	return int(math.Floor(height))
}

func (g *SimplexGenerator) PopulateChunk(coord ChunkCoord, c *Chunk) {
	populateColumns(coord, c, g.HeightAt)
}

// populateColumns fills each column of the chunk up to the surface height:
// grass on top, a few layers of dirt, stone below.
func populateColumns(coord ChunkCoord, c *Chunk, heightAt func(x, z int) int) {
	baseX, baseY, baseZ := coord.Origin()
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			height := heightAt(baseX+lx, baseZ+lz)
			for ly := 0; ly < ChunkSize; ly++ {
				wy := baseY + ly
				var bt BlockType
				switch {
				case wy > height:
					bt = BlockTypeAir
				case wy == height:
					bt = BlockTypeGrass
				case wy >= height-3:
					bt = BlockTypeDirt
				default:
					bt = BlockTypeStone
				}
				c.blocks[indexInChunk(lx, ly, lz)] = bt
			}
		}
	}
}
