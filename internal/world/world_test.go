package world

import (
	"testing"

	"github.com/pkg/errors"
)

func TestNewWorldDimensions(t *testing.T) {
	w := New(4, 2)
	width, height, depth := w.Dims()
	if width != 4 || height != 2 || depth != DefaultDepth {
		t.Fatalf("Dims: got %dx%dx%d, want 4x2x%d", width, height, depth, DefaultDepth)
	}
	if DefaultDepth != 8 {
		t.Fatalf("DefaultDepth: got %d, want 8", DefaultDepth)
	}
	if n := w.NumChunks(); n != 4*2*8 {
		t.Fatalf("NumChunks: got %d, want %d", n, 4*2*8)
	}
}

func TestNewWorldIsSolidAndDirty(t *testing.T) {
	w := NewWithDepth(2, 2, 2)
	if !w.Dirty() {
		t.Fatalf("new world should be globally dirty")
	}
	w.ForEachChunk(func(coord ChunkCoord, c *Chunk) {
		if n := c.Count(BlockTypeSolid); n != ChunkVolume {
			t.Errorf("chunk %v: got %d solid cells, want %d", coord, n, ChunkVolume)
		}
		if !w.IsDirty(coord.X, coord.Y, coord.Z) {
			t.Errorf("chunk %v should start dirty", coord)
		}
	})
}

// Non-square grids must not alias: every slot is a distinct chunk.
func TestChunkAtDistinctSlots(t *testing.T) {
	w := NewEmpty(3, 2, 5)
	seen := make(map[*Chunk]ChunkCoord)
	for x := 0; x < 3; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 5; z++ {
				c := w.ChunkAt(x, y, z)
				if prev, ok := seen[c]; ok {
					t.Fatalf("chunk (%d,%d,%d) aliases %v", x, y, z, prev)
				}
				seen[c] = ChunkCoord{x, y, z}
			}
		}
	}
	if len(seen) != w.NumChunks() {
		t.Fatalf("distinct chunks: got %d, want %d", len(seen), w.NumChunks())
	}
}

func TestChunkAtMutatesInPlace(t *testing.T) {
	w := NewEmpty(1, 1, 1)
	_ = w.ChunkAt(0, 0, 0).SetBlock(5, 5, 5, BlockTypeSolid)
	if b := w.ChunkAt(0, 0, 0).GetBlock(5, 5, 5); b != BlockTypeSolid {
		t.Fatalf("write through ChunkAt was lost: got %d", b)
	}
}

func TestChunkAtOutOfRangePanics(t *testing.T) {
	w := NewEmpty(2, 2, 2)
	defer func() {
		if recover() == nil {
			t.Fatalf("ChunkAt(2,0,0) did not panic")
		}
	}()
	w.ChunkAt(2, 0, 0)
}

func TestSetDirtyRaisesGlobalFlag(t *testing.T) {
	w := NewEmpty(2, 2, 2)
	if w.Dirty() {
		t.Fatalf("empty world should start clean")
	}
	w.SetDirty(1, 0, 1, true)
	if !w.IsDirty(1, 0, 1) || !w.Dirty() {
		t.Fatalf("SetDirty(true) did not set chunk and global flags")
	}
	w.SetDirty(1, 0, 1, false)
	if w.IsDirty(1, 0, 1) {
		t.Fatalf("SetDirty(false) did not clear the chunk flag")
	}
	if !w.Dirty() {
		t.Fatalf("clearing a chunk flag must not lower the global flag")
	}
}

func TestDirtyChunksOrder(t *testing.T) {
	w := NewEmpty(4, 1, 1)
	w.SetDirty(2, 0, 0, true)
	w.SetDirty(0, 0, 0, true)
	w.SetDirty(2, 0, 0, true) // already queued
	w.SetDirty(3, 0, 0, true)
	w.SetDirty(0, 0, 0, false)

	got := w.DirtyChunks()
	want := []ChunkCoord{{2, 0, 0}, {3, 0, 0}}
	if len(got) != len(want) {
		t.Fatalf("DirtyChunks: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DirtyChunks[%d]: got %v, want %v", i, got[i], want[i])
		}
	}

	// A cleared chunk re-enters the queue at the back.
	w.SetDirty(0, 0, 0, true)
	got = w.DirtyChunks()
	if len(got) != 3 || got[2] != (ChunkCoord{0, 0, 0}) {
		t.Fatalf("DirtyChunks after re-dirty: got %v", got)
	}
}

func TestClearDirtyRequeuesInNewOrder(t *testing.T) {
	w := NewEmpty(3, 1, 1)
	w.SetDirty(0, 0, 0, true)
	w.SetDirty(1, 0, 0, true)
	for _, c := range w.DirtyChunks() {
		w.SetDirty(c.X, c.Y, c.Z, false)
	}
	w.ClearDirty()

	w.SetDirty(1, 0, 0, true)
	w.SetDirty(0, 0, 0, true)
	got := w.DirtyChunks()
	want := []ChunkCoord{{1, 0, 0}, {0, 0, 0}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("DirtyChunks after sweep: got %v, want %v", got, want)
	}
}

func TestSetBlockWorldCoords(t *testing.T) {
	w := NewEmpty(2, 2, 2)
	if err := w.SetBlock(17, 3, 31, BlockTypeStone); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	if b := w.BlockAt(17, 3, 31); b != BlockTypeStone {
		t.Fatalf("BlockAt: got %d, want %d", b, BlockTypeStone)
	}
	if b := w.ChunkAt(1, 0, 1).GetBlock(1, 3, 15); b != BlockTypeStone {
		t.Fatalf("chunk-local read: got %d, want %d", b, BlockTypeStone)
	}
	if !w.IsDirty(1, 0, 1) || !w.Dirty() {
		t.Fatalf("SetBlock did not mark chunk (1,0,1) dirty")
	}
	if w.IsDirty(0, 0, 1) {
		t.Fatalf("neighbour dirtied without WithNeighborDirtying")
	}
}

func TestSetBlockNoChangeKeepsClean(t *testing.T) {
	w := NewEmpty(1, 1, 1)
	if err := w.SetBlock(0, 0, 0, BlockTypeAir); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	if w.Dirty() {
		t.Fatalf("writing the same value should not dirty the world")
	}
}

func TestSetBlockOutsideWorld(t *testing.T) {
	w := NewEmpty(1, 1, 1)
	if err := w.SetBlock(-1, 0, 0, BlockTypeSolid); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetBlock(-1,0,0): got %v, want ErrOutOfBounds", err)
	}
	if b := w.BlockAt(-1, 0, 0); b != BlockTypeAir {
		t.Fatalf("BlockAt outside world: got %d, want air", b)
	}
}

func TestSetBlockMarksNeighbors(t *testing.T) {
	w := NewEmpty(3, 1, 1, WithNeighborDirtying(true))
	// local x = 0 in chunk (1,0,0)
	if err := w.SetBlock(ChunkSize, 0, 0, BlockTypeSolid); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	if !w.IsDirty(1, 0, 0) || !w.IsDirty(0, 0, 0) {
		t.Fatalf("border write should dirty owner and -X neighbour")
	}
	if w.IsDirty(2, 0, 0) {
		t.Fatalf("+X neighbour should stay clean")
	}
}

func TestFloorDivMod(t *testing.T) {
	cases := []struct{ a, q, m int }{
		{0, 0, 0}, {15, 0, 15}, {16, 1, 0}, {-1, -1, 15}, {-16, -1, 0}, {-17, -2, 15},
	}
	for _, c := range cases {
		if q := floorDiv(c.a, ChunkSize); q != c.q {
			t.Errorf("floorDiv(%d): got %d, want %d", c.a, q, c.q)
		}
		if m := mod(c.a, ChunkSize); m != c.m {
			t.Errorf("mod(%d): got %d, want %d", c.a, m, c.m)
		}
	}
}

func BenchmarkNewWorld(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = New(8, 8)
	}
}
