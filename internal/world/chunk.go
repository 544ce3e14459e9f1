package world

import (
	"github.com/pkg/errors"
)

const (
	// ChunkSize is the edge length of a chunk in blocks
	ChunkSize   = 16
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ErrOutOfBounds is returned for writes outside the addressed volume.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// Chunk is a dense 16x16x16 block of voxels. The zero value is all air.
type Chunk struct {
	blocks [ChunkVolume]BlockType
}

// indexInChunk converts local coordinates (x, y, z) → flat index
func indexInChunk(x, y, z int) int {
	return x*ChunkSize*ChunkSize + y*ChunkSize + z
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlock returns the block type at the specified local coordinates.
// Anything outside the chunk reads as air.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if !inChunk(x, y, z) {
		return BlockTypeAir
	}
	return c.blocks[indexInChunk(x, y, z)]
}

// SetBlock sets the block type at the specified local coordinates.
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) error {
	if !inChunk(x, y, z) {
		return errors.Wrapf(ErrOutOfBounds, "chunk write at (%d, %d, %d)", x, y, z)
	}
	c.blocks[indexInChunk(x, y, z)] = blockType
	return nil
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z).IsAir()
}

// Fill sets every cell of the chunk to blockType.
func (c *Chunk) Fill(blockType BlockType) {
	for i := range c.blocks {
		c.blocks[i] = blockType
	}
}

// Count returns how many cells hold blockType.
func (c *Chunk) Count(blockType BlockType) int {
	n := 0
	for _, b := range c.blocks {
		if b == blockType {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the chunk contains only air.
func (c *Chunk) IsEmpty() bool {
	return c.Count(BlockTypeAir) == ChunkVolume
}
