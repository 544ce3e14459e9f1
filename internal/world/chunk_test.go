package world

import (
	"testing"

	"github.com/pkg/errors"
)

func TestChunkZeroValueIsAir(t *testing.T) {
	var c Chunk
	if !c.IsEmpty() {
		t.Fatalf("zero chunk: got %d air cells, want %d", c.Count(BlockTypeAir), ChunkVolume)
	}
}

func TestChunkSetGet(t *testing.T) {
	var c Chunk
	if err := c.SetBlock(1, 2, 3, BlockTypeSolid); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	if b := c.GetBlock(1, 2, 3); b != BlockTypeSolid {
		t.Fatalf("GetBlock(1,2,3): got %d, want %d", b, BlockTypeSolid)
	}
	// x-major layout: (1,2,3) and (3,2,1) are different cells
	if b := c.GetBlock(3, 2, 1); b != BlockTypeAir {
		t.Fatalf("GetBlock(3,2,1): got %d, want air", b)
	}
	if got, want := indexInChunk(1, 2, 3), 1*256+2*16+3; got != want {
		t.Fatalf("indexInChunk(1,2,3): got %d, want %d", got, want)
	}
}

func TestChunkOutOfRangeReadsAir(t *testing.T) {
	var c Chunk
	c.Fill(BlockTypeSolid)

	cases := [][3]int{
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{ChunkSize, 0, 0}, {0, ChunkSize, 0}, {0, 0, ChunkSize},
		{100, -100, 7},
	}
	for _, p := range cases {
		if b := c.GetBlock(p[0], p[1], p[2]); b != BlockTypeAir {
			t.Errorf("GetBlock(%d,%d,%d): got %d, want air", p[0], p[1], p[2], b)
		}
	}
}

func TestChunkOutOfRangeWriteFails(t *testing.T) {
	var c Chunk
	err := c.SetBlock(ChunkSize, 0, 0, BlockTypeSolid)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetBlock out of range: got %v, want ErrOutOfBounds", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("out of range write modified the chunk")
	}
}

func TestChunkFillAndCount(t *testing.T) {
	var c Chunk
	c.Fill(BlockTypeStone)
	if n := c.Count(BlockTypeStone); n != ChunkVolume {
		t.Fatalf("Count after Fill: got %d, want %d", n, ChunkVolume)
	}
	_ = c.SetBlock(0, 0, 0, BlockTypeAir)
	if n := c.Count(BlockTypeStone); n != ChunkVolume-1 {
		t.Fatalf("Count after clearing one cell: got %d, want %d", n, ChunkVolume-1)
	}
}
