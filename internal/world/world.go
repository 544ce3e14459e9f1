package world

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// BaseHeight is the baseline world height in blocks.
	BaseHeight = 128
	// DefaultDepth is the number of chunk layers along the world's third axis.
	DefaultDepth = BaseHeight / ChunkSize
)

// ChunkCoord addresses a chunk in the world grid.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Origin returns the world-voxel position of the chunk's (0,0,0) cell.
func (c ChunkCoord) Origin() (x, y, z int) {
	return c.X * ChunkSize, c.Y * ChunkSize, c.Z * ChunkSize
}

// World is a fixed-size grid of chunks with per-chunk dirty tracking.
// Chunks live in one backing slice and are only ever handed out by pointer.
type World struct {
	width, height, depth int

	chunks []Chunk
	dirty  []bool

	// Global flag: true while at least one chunk needs re-meshing.
	anyDirty bool

	queue   dirtyQueue
	options Options
}

// Options tunes how mutations propagate dirtiness.
type Options struct {
	// MarkNeighbors also dirties the adjacent chunk when a border voxel
	// changes, for meshers that look across chunk borders.
	MarkNeighbors bool
}

// Option mutates Options.
type Option func(*Options)

// WithNeighborDirtying enables border propagation of dirty flags.
func WithNeighborDirtying(enabled bool) Option {
	return func(o *Options) { o.MarkNeighbors = enabled }
}

// New creates a world of width × height × DefaultDepth chunks filled with
// placeholder solid voxels. Every chunk starts dirty.
func New(width, height int, opts ...Option) *World {
	return NewWithDepth(width, height, DefaultDepth, opts...)
}

// NewWithDepth is New with an explicit depth.
func NewWithDepth(width, height, depth int, opts ...Option) *World {
	w := NewEmpty(width, height, depth, opts...)
	Generate(w, PlaceholderGenerator{Block: BlockTypeSolid})
	return w
}

// NewEmpty creates an all-air world with every flag clear.
func NewEmpty(width, height, depth int, opts ...Option) *World {
	if width <= 0 || height <= 0 || depth <= 0 {
		panic(fmt.Sprintf("world: invalid dimensions %dx%dx%d", width, height, depth))
	}
	w := &World{
		width:  width,
		height: height,
		depth:  depth,
		chunks: make([]Chunk, width*height*depth),
		dirty:  make([]bool, width*height*depth),
	}
	w.queue.init(len(w.chunks))
	for _, opt := range opts {
		opt(&w.options)
	}
	return w
}

// Dims returns the grid size in chunks.
func (w *World) Dims() (width, height, depth int) {
	return w.width, w.height, w.depth
}

func (w *World) Width() int  { return w.width }
func (w *World) Height() int { return w.height }
func (w *World) Depth() int  { return w.depth }

// NumChunks returns width*height*depth.
func (w *World) NumChunks() int {
	return len(w.chunks)
}

// Contains reports whether the chunk coordinate lies inside the grid.
func (w *World) Contains(x, y, z int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height && z >= 0 && z < w.depth
}

// index maps a chunk coordinate to its slot. Both backing slices use it.
func (w *World) index(x, y, z int) int {
	return x*w.height*w.depth + y*w.depth + z
}

func (w *World) coordOf(i int) ChunkCoord {
	z := i % w.depth
	y := (i / w.depth) % w.height
	x := i / (w.depth * w.height)
	return ChunkCoord{X: x, Y: y, Z: z}
}

func (w *World) mustIndex(x, y, z int) int {
	if !w.Contains(x, y, z) {
		panic(fmt.Sprintf("world: chunk (%d, %d, %d) outside %dx%dx%d grid", x, y, z, w.width, w.height, w.depth))
	}
	return w.index(x, y, z)
}

// ChunkAt returns the chunk at (x, y, z). Mutations through the pointer are
// visible to the world but do not touch dirty flags; call SetDirty after.
func (w *World) ChunkAt(x, y, z int) *Chunk {
	return &w.chunks[w.mustIndex(x, y, z)]
}

// IsDirty reports whether the chunk's mesh is stale.
func (w *World) IsDirty(x, y, z int) bool {
	return w.dirty[w.mustIndex(x, y, z)]
}

// SetDirty sets the chunk's dirty flag. Setting it raises the global flag;
// clearing it never lowers the global flag.
func (w *World) SetDirty(x, y, z int, dirty bool) {
	i := w.mustIndex(x, y, z)
	w.dirty[i] = dirty
	if dirty {
		w.anyDirty = true
		w.queue.push(i)
	}
}

// Dirty returns the global dirty flag.
func (w *World) Dirty() bool {
	return w.anyDirty
}

// ClearDirty lowers the global flag and forgets queued chunks that are
// clean again. Only a completed sweep should call it.
func (w *World) ClearDirty() {
	w.anyDirty = false
	w.queue.compact(w.dirty)
}

// MarkAllDirty flags every chunk, e.g. before the first generation pass.
func (w *World) MarkAllDirty() {
	for i := range w.dirty {
		w.dirty[i] = true
		w.queue.push(i)
	}
	w.anyDirty = true
}

// DirtyChunks returns the coordinates of dirty chunks in the order they
// first became dirty.
func (w *World) DirtyChunks() []ChunkCoord {
	idx := w.queue.compact(w.dirty)
	out := make([]ChunkCoord, len(idx))
	for n, i := range idx {
		out[n] = w.coordOf(i)
	}
	return out
}

// DirtyCount returns the number of chunks currently flagged.
func (w *World) DirtyCount() int {
	n := 0
	for _, d := range w.dirty {
		if d {
			n++
		}
	}
	return n
}

// ForEachChunk visits every chunk in index order.
func (w *World) ForEachChunk(fn func(coord ChunkCoord, c *Chunk)) {
	for i := range w.chunks {
		fn(w.coordOf(i), &w.chunks[i])
	}
}

// Bounds returns the world's extent in voxels.
func (w *World) Bounds() (x, y, z int) {
	return w.width * ChunkSize, w.height * ChunkSize, w.depth * ChunkSize
}

// BlockAt returns the block at world-voxel coordinates. Outside the world is air.
func (w *World) BlockAt(x, y, z int) BlockType {
	cx, cy, cz := floorDiv(x, ChunkSize), floorDiv(y, ChunkSize), floorDiv(z, ChunkSize)
	if !w.Contains(cx, cy, cz) {
		return BlockTypeAir
	}
	return w.chunks[w.index(cx, cy, cz)].GetBlock(mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize))
}

// IsAir checks if the block at the specified world coordinates is air.
func (w *World) IsAir(x, y, z int) bool {
	return w.BlockAt(x, y, z).IsAir()
}

// SetBlock writes a block at world-voxel coordinates and marks the owning
// chunk dirty. Writes that do not change the cell leave flags untouched.
func (w *World) SetBlock(x, y, z int, val BlockType) error {
	cx, cy, cz := floorDiv(x, ChunkSize), floorDiv(y, ChunkSize), floorDiv(z, ChunkSize)
	if !w.Contains(cx, cy, cz) {
		return errors.Wrapf(ErrOutOfBounds, "world write at (%d, %d, %d)", x, y, z)
	}
	lx, ly, lz := mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize)
	c := &w.chunks[w.index(cx, cy, cz)]
	if c.GetBlock(lx, ly, lz) == val {
		return nil
	}
	if err := c.SetBlock(lx, ly, lz, val); err != nil {
		return err
	}
	w.SetDirty(cx, cy, cz, true)

	if !w.options.MarkNeighbors {
		return nil
	}
	// Mark neighbor chunks dirty if we touched a border block
	if lx == 0 {
		w.markIfPresent(cx-1, cy, cz)
	} else if lx == ChunkSize-1 {
		w.markIfPresent(cx+1, cy, cz)
	}
	if ly == 0 {
		w.markIfPresent(cx, cy-1, cz)
	} else if ly == ChunkSize-1 {
		w.markIfPresent(cx, cy+1, cz)
	}
	if lz == 0 {
		w.markIfPresent(cx, cy, cz-1)
	} else if lz == ChunkSize-1 {
		w.markIfPresent(cx, cy, cz+1)
	}
	return nil
}

func (w *World) markIfPresent(x, y, z int) {
	if w.Contains(x, y, z) {
		w.SetDirty(x, y, z, true)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
