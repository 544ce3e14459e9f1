package blocks

import (
	"fmt"
	"log/slog"

	"github.com/profan/dear-xenko/internal/graphics"
	"github.com/profan/dear-xenko/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkRenderer owns one ChunkRecord per chunk and keeps its device buffers
// and scene node in step with the chunk's latest mesh.
type ChunkRenderer struct {
	device graphics.Device
	scene  graphics.Scene
	log    *slog.Logger

	initialCapacity int
	records         map[world.ChunkCoord]*ChunkRecord

	// scratch encode buffers, reused across uploads
	vertexBytes []byte
	indexBytes  []byte

	uploads       int
	reallocations int
}

// Option configures a ChunkRenderer.
type Option func(*ChunkRenderer)

// WithLogger sets the logger used for allocation events.
func WithLogger(log *slog.Logger) Option {
	return func(r *ChunkRenderer) { r.log = log }
}

// WithInitialCapacity overrides InitialCapacity.
func WithInitialCapacity(elements int) Option {
	return func(r *ChunkRenderer) {
		if elements > 0 {
			r.initialCapacity = elements
		}
	}
}

// NewChunkRenderer creates a renderer that uploads through device and
// places nodes in scene.
func NewChunkRenderer(device graphics.Device, scene graphics.Scene, opts ...Option) *ChunkRenderer {
	r := &ChunkRenderer{
		device:          device,
		scene:           scene,
		log:             slog.Default(),
		initialCapacity: InitialCapacity,
		records:         make(map[world.ChunkCoord]*ChunkRecord),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record returns the record for coord, if one exists.
func (r *ChunkRenderer) Record(coord world.ChunkCoord) (*ChunkRecord, bool) {
	rec, ok := r.records[coord]
	return rec, ok
}

// Stats totals every record.
func (r *ChunkRenderer) Stats() RendererStats {
	s := RendererStats{
		Records:       len(r.records),
		Uploads:       r.uploads,
		Reallocations: r.reallocations,
	}
	for _, rec := range r.records {
		s.VertexBytes += rec.VertexCapacity
		s.IndexBytes += rec.IndexCapacity
		s.Vertices += rec.VertexCount
		s.Indices += rec.IndexCount
	}
	return s
}

// Dispose releases every buffer and forgets all records.
func (r *ChunkRenderer) Dispose() error {
	var first error
	for coord, rec := range r.records {
		for _, h := range []graphics.BufferHandle{rec.VertexBuffer, rec.IndexBuffer} {
			if err := r.device.Release(h); err != nil && first == nil {
				first = err
			}
		}
		delete(r.records, coord)
	}
	return first
}

// NodeName is the scene node name used for a chunk.
func NodeName(coord world.ChunkCoord) string {
	return fmt.Sprintf("chunk_%d_%d_%d", coord.X, coord.Y, coord.Z)
}

// NodePosition places a chunk's node at its voxel origin.
func NodePosition(coord world.ChunkCoord) mgl32.Vec3 {
	x, y, z := coord.Origin()
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}
